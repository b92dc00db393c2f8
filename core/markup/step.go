// Package markup - Single step evaluation
package markup

import (
	"tender-markup/core/types"
	"tender-markup/internal/errors"
)

// EvaluateStep evaluates one sequence step at position index. The step's
// base value comes from BaseIndex (types.BaseAmountIndex means the base
// amount, n >= 0 means stepResults[n]); sub-operation 1 is then applied,
// followed by sub-operations 2-5 when present, each feeding the next.
//
// The returned StepDetail records the step's input, output, markup delta
// and every parameter key consumed, in encounter order with duplicates
// preserved. Reaching an invalid BaseIndex or a missing first operation
// here means the sequence was never validated.
func EvaluateStep(index int, step *types.MarkupStep, baseAmount float64, stepResults []float64, parameters types.ParameterTable) (float64, types.StepDetail, error) {
	detail := types.StepDetail{Index: index, Name: step.Name}

	baseValue, err := resolveStepBase(step.BaseIndex, baseAmount, stepResults)
	if err != nil {
		return 0, detail, err
	}
	detail.Input = baseValue

	if !step.Operations[0].Present() {
		return 0, detail, errors.New(errors.TypeValidation, "missing mandatory first operation")
	}

	value := baseValue
	for slot := 0; slot < types.MaxSubOperations; slot++ {
		op := step.Operations[slot]
		if !op.Present() {
			continue
		}
		if op.Operand.Kind == types.OperandParameter {
			detail.ParameterKeys = append(detail.ParameterKeys, op.Operand.Key)
		}
		operand, err := ResolveOperand(op.Operand, parameters, stepResults, baseAmount)
		if err != nil {
			return 0, detail, err
		}
		value, err = Apply(value, op.Action, operand)
		if err != nil {
			return 0, detail, err
		}
	}

	detail.Output = value
	detail.MarkupAmount = value - baseValue
	return value, detail, nil
}

// resolveStepBase resolves a step's BaseIndex against the results so far
func resolveStepBase(baseIndex int, baseAmount float64, stepResults []float64) (float64, error) {
	if baseIndex == types.BaseAmountIndex {
		return baseAmount, nil
	}
	if baseIndex < 0 || baseIndex >= len(stepResults) {
		return 0, errors.InvalidReference(baseIndex)
	}
	return stepResults[baseIndex], nil
}
