// Package markup implements the markup calculation engine: operand
// resolution, arithmetic application, step evaluation, sequence validation,
// exclusion filtering and per-item orchestration.
//
// The engine is purely computational and stateless between calls. All
// arithmetic is IEEE float64; NaN and infinities propagate untouched, and
// no rounding happens here. Precision is a presentation concern, handled
// at the output boundary.
package markup

import (
	"tender-markup/core/types"
	"tender-markup/internal/errors"
)

// ResolveOperand turns an operand into a numeric value.
//
// Parameter operands look their key up in the table and convert the
// percentage according to the operand's format: FormatAddOne yields
// 1 + value/100, anything else yields value/100. Step operands index into
// the results computed so far, with types.BaseAmountIndex resolving to the
// original base amount - never to an override seed. Literal operands return
// their value as is.
func ResolveOperand(op *types.Operand, parameters types.ParameterTable, stepResults []float64, baseAmount float64) (float64, error) {
	switch op.Kind {
	case types.OperandParameter:
		value, ok := parameters[op.Key]
		if !ok {
			return 0, errors.UnresolvedOperand(op.Key)
		}
		if op.Format == types.FormatAddOne {
			return 1 + value/100, nil
		}
		return value / 100, nil

	case types.OperandStep:
		if op.Index == types.BaseAmountIndex {
			return baseAmount, nil
		}
		if op.Index < 0 || op.Index >= len(stepResults) {
			return 0, errors.InvalidReference(op.Index)
		}
		return stepResults[op.Index], nil

	case types.OperandLiteral:
		return op.Value, nil

	default:
		return 0, errors.Newf(errors.TypeInternal, "unknown operand kind %q", op.Kind)
	}
}
