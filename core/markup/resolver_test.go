package markup

import (
	"math"
	"testing"

	"tender-markup/core/types"
	"tender-markup/internal/errors"
)

// TestResolveOperand covers all three operand kinds and their failures
func TestResolveOperand(t *testing.T) {
	parameters := types.ParameterTable{"overhead": 10, "zero": 0}
	stepResults := []float64{11000, 12100}
	const base = 10000.0

	tests := []struct {
		name    string
		operand *types.Operand
		want    float64
		wantErr errors.Type
	}{
		{
			name:    "parameter add_one",
			operand: types.Parameter("overhead", types.FormatAddOne),
			want:    1.1,
		},
		{
			name:    "parameter direct",
			operand: types.Parameter("overhead", types.FormatDirect),
			want:    0.1,
		},
		{
			name:    "parameter empty format defaults to direct",
			operand: &types.Operand{Kind: types.OperandParameter, Key: "overhead"},
			want:    0.1,
		},
		{
			name:    "parameter zero value add_one",
			operand: types.Parameter("zero", types.FormatAddOne),
			want:    1,
		},
		{
			name:    "parameter missing",
			operand: types.Parameter("profit", types.FormatAddOne),
			wantErr: errors.TypeUnresolvedOperand,
		},
		{
			name:    "step sentinel yields base amount",
			operand: types.StepRef(types.BaseAmountIndex),
			want:    base,
		},
		{
			name:    "step valid index",
			operand: types.StepRef(1),
			want:    12100,
		},
		{
			name:    "step index beyond computed results",
			operand: types.StepRef(2),
			wantErr: errors.TypeInvalidReference,
		},
		{
			name:    "step negative non-sentinel index",
			operand: types.StepRef(-2),
			wantErr: errors.TypeInvalidReference,
		},
		{
			name:    "literal",
			operand: types.Literal(42.5),
			want:    42.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveOperand(tt.operand, parameters, stepResults, base)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected %s error, got value %v", tt.wantErr, got)
				}
				if !errors.IsType(err, tt.wantErr) {
					t.Errorf("error type = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestApply covers the four actions including NaN/Inf transparency
func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		action  types.Action
		operand float64
		want    float64
		wantErr bool
	}{
		{name: "multiply", current: 10000, action: types.ActionMultiply, operand: 1.1, want: 11000},
		{name: "divide", current: 11000, action: types.ActionDivide, operand: 1.1, want: 10000},
		{name: "add", current: 10000, action: types.ActionAdd, operand: 250, want: 10250},
		{name: "subtract", current: 10000, action: types.ActionSubtract, operand: 250, want: 9750},
		{name: "divide by zero", current: 10000, action: types.ActionDivide, operand: 0, wantErr: true},
		{name: "multiply by zero", current: 10000, action: types.ActionMultiply, operand: 0, want: 0},
		{name: "infinity propagates", current: math.Inf(1), action: types.ActionAdd, operand: 1, want: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.current, tt.action, tt.operand)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				if !errors.IsType(err, errors.TypeDivisionByZero) {
					t.Errorf("error = %v, want division by zero", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("apply = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestApplyNaN verifies NaN flows through untouched
func TestApplyNaN(t *testing.T) {
	got, err := Apply(math.NaN(), types.ActionMultiply, 1.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("expected NaN, got %v", got)
	}
}

// TestApplyUnknownAction verifies unknown actions are rejected
func TestApplyUnknownAction(t *testing.T) {
	if _, err := Apply(1, types.Action("modulo"), 2); err == nil {
		t.Error("expected error for unknown action")
	}
}
