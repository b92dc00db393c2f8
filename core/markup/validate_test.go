package markup

import (
	"reflect"
	"testing"

	"tender-markup/core/types"
)

// mul returns a minimal valid multiply sub-operation
func mul(operand *types.Operand) types.SubOperation {
	return types.SubOperation{Action: types.ActionMultiply, Operand: operand}
}

// TestValidateSequence covers every structural rule and that violations
// accumulate instead of short-circuiting
func TestValidateSequence(t *testing.T) {
	valid := func() types.MarkupStep {
		step := types.MarkupStep{BaseIndex: types.BaseAmountIndex}
		step.Operations[0] = mul(types.Literal(1.1))
		return step
	}

	tests := []struct {
		name     string
		sequence func() []types.MarkupStep
		want     []string
	}{
		{
			name:     "nil sequence is valid",
			sequence: func() []types.MarkupStep { return nil },
			want:     nil,
		},
		{
			name: "well-formed sequence",
			sequence: func() []types.MarkupStep {
				first := valid()
				second := types.MarkupStep{BaseIndex: 0}
				second.Operations[0] = mul(types.StepRef(types.BaseAmountIndex))
				second.Operations[1] = mul(types.StepRef(0))
				return []types.MarkupStep{first, second}
			},
			want: nil,
		},
		{
			name: "self-referencing baseIndex",
			sequence: func() []types.MarkupStep {
				step := valid()
				step.BaseIndex = 0
				return []types.MarkupStep{step}
			},
			want: []string{"step 1: invalid baseIndex (0)"},
		},
		{
			name: "forward baseIndex",
			sequence: func() []types.MarkupStep {
				first := valid()
				second := valid()
				second.BaseIndex = 5
				return []types.MarkupStep{first, second}
			},
			want: []string{"step 2: invalid baseIndex (5)"},
		},
		{
			name: "baseIndex below sentinel",
			sequence: func() []types.MarkupStep {
				step := valid()
				step.BaseIndex = -2
				return []types.MarkupStep{step}
			},
			want: []string{"step 1: invalid baseIndex (-2)"},
		},
		{
			name: "missing first operation",
			sequence: func() []types.MarkupStep {
				return []types.MarkupStep{{BaseIndex: types.BaseAmountIndex}}
			},
			want: []string{"step 1: missing mandatory first operation"},
		},
		{
			name: "first operation without operand",
			sequence: func() []types.MarkupStep {
				step := types.MarkupStep{BaseIndex: types.BaseAmountIndex}
				step.Operations[0] = types.SubOperation{Action: types.ActionMultiply}
				return []types.MarkupStep{step}
			},
			want: []string{"step 1: missing mandatory first operation"},
		},
		{
			name: "step operand referencing itself",
			sequence: func() []types.MarkupStep {
				step := valid()
				step.Operations[1] = mul(types.StepRef(0))
				return []types.MarkupStep{step}
			},
			want: []string{"step 1: invalid operand2Index for kind 'step'"},
		},
		{
			name: "step operand in a later slot",
			sequence: func() []types.MarkupStep {
				first := valid()
				second := valid()
				second.Operations[4] = mul(types.StepRef(3))
				return []types.MarkupStep{first, second}
			},
			want: []string{"step 2: invalid operand5Index for kind 'step'"},
		},
		{
			name: "multiple independent violations",
			sequence: func() []types.MarkupStep {
				first := types.MarkupStep{BaseIndex: 7}
				second := valid()
				second.Operations[1] = mul(types.StepRef(1))
				return []types.MarkupStep{first, second}
			},
			want: []string{
				"step 1: invalid baseIndex (7)",
				"step 1: missing mandatory first operation",
				"step 2: invalid operand2Index for kind 'step'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateSequence(tt.sequence())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("violations = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestValidatedSequenceEvaluates verifies that a sequence passing
// validation never hits the evaluator's reference errors
func TestValidatedSequenceEvaluates(t *testing.T) {
	sequence := chain("growth", "vat")
	if problems := ValidateSequence(sequence); len(problems) != 0 {
		t.Fatalf("expected valid sequence, got %v", problems)
	}

	result := Calculate(&types.CalculationContext{
		BaseAmount: 10000,
		Sequence:   sequence,
		Parameters: types.ParameterTable{"growth": 10, "vat": 22},
	})
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}
