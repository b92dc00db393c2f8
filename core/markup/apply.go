// Package markup - Arithmetic action application
package markup

import (
	"tender-markup/core/types"
	"tender-markup/internal/errors"
)

// Apply applies one arithmetic action to the running value. Divide fails
// on a zero operand; the other three actions are total over the reals,
// including NaN and infinities.
func Apply(current float64, action types.Action, operand float64) (float64, error) {
	switch action {
	case types.ActionMultiply:
		return current * operand, nil
	case types.ActionDivide:
		if operand == 0 {
			return 0, errors.DivisionByZero()
		}
		return current / operand, nil
	case types.ActionAdd:
		return current + operand, nil
	case types.ActionSubtract:
		return current - operand, nil
	default:
		return 0, errors.Newf(errors.TypeInternal, "unknown action %q", action)
	}
}
