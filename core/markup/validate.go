// Package markup - Static sequence validation
package markup

import (
	"fmt"

	"tender-markup/core/types"
)

// ValidateSequence statically checks a step sequence for structural
// well-formedness and returns every violation found, as human-readable
// messages. An empty result means the sequence is valid.
//
// Checked per step at position i: BaseIndex must satisfy
// -1 <= BaseIndex < i, the first sub-operation must carry both an action
// and an operand, and every present step-kind operand index must satisfy
// -1 <= index < i. References are strictly backward, so a sequence that
// passes here can never cycle.
func ValidateSequence(sequence []types.MarkupStep) []string {
	var problems []string

	for i := range sequence {
		step := &sequence[i]

		if step.BaseIndex < types.BaseAmountIndex || step.BaseIndex >= i {
			problems = append(problems, fmt.Sprintf("step %d: invalid baseIndex (%d)", i+1, step.BaseIndex))
		}

		if !step.Operations[0].Present() {
			problems = append(problems, fmt.Sprintf("step %d: missing mandatory first operation", i+1))
		}

		for slot := 0; slot < types.MaxSubOperations; slot++ {
			op := step.Operations[slot]
			if !op.Present() || op.Operand.Kind != types.OperandStep {
				continue
			}
			if op.Operand.Index < types.BaseAmountIndex || op.Operand.Index >= i {
				problems = append(problems, fmt.Sprintf("step %d: invalid operand%dIndex for kind 'step'", i+1, slot+1))
			}
		}
	}

	return problems
}
