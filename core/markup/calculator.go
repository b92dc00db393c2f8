// Package markup - Per-item calculation orchestration
package markup

import (
	"fmt"

	"tender-markup/core/types"
)

// Calculate evaluates a full step sequence for one line item.
//
// Step failures (unresolved parameter, invalid reference, division by
// zero) do not abort the calculation: the step keeps the previous running
// value, a human-readable message is recorded, and evaluation continues.
// A single missing parameter must not block an entire tender's
// recalculation; callers see the degradation through the Errors list.
//
// The override seed, when present, is what the running value starts from
// and what a non-positive guard returns - but the BaseAmountIndex sentinel
// inside steps still resolves to the unmodified base amount. That
// asymmetry is contractual; sequences in production depend on it.
func Calculate(c *types.CalculationContext) *types.CalculationResult {
	result := &types.CalculationResult{MarkupCoefficient: 1}

	if c.Sequence == nil {
		result.CommercialCost = c.BaseAmount
		result.Errors = append(result.Errors, "sequence not defined")
		return result
	}
	if len(c.Sequence) == 0 {
		result.CommercialCost = c.BaseAmount
		result.Errors = append(result.Errors, "sequence is empty")
		return result
	}

	seed := c.Seed()
	if seed <= 0 {
		// Never mark up a non-positive base: compounding multiplicative
		// chains over a negative value flip signs.
		result.CommercialCost = seed
		if seed < 0 {
			result.Errors = append(result.Errors, "base amount is negative")
		}
		return result
	}

	running := seed
	for i := range c.Sequence {
		step := &c.Sequence[i]
		value, detail, err := EvaluateStep(i, step, c.BaseAmount, result.StepResults, c.Parameters)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("error in step %d: %v", i+1, err))
			value = running
			detail = types.StepDetail{Index: i, Name: step.Name, Input: running, Output: running}
		}
		result.StepResults = append(result.StepResults, value)
		result.Steps = append(result.Steps, detail)
		running = value
	}

	result.CommercialCost = running
	if c.BaseAmount > 0 {
		result.MarkupCoefficient = result.CommercialCost / c.BaseAmount
	}
	return result
}
