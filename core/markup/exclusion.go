// Package markup - Growth-exemption sequence filtering
package markup

import (
	"tender-markup/core/types"
)

// Parameter keys carrying the subcontract cost-growth markup, one per
// direction. Items exempt from growth get the matching steps removed.
const (
	WorkGrowthKey     = "subcontract_work_growth"
	MaterialGrowthKey = "subcontract_material_growth"
)

// GrowthKeyFor selects which growth parameter an exempt item of the given
// type is excluded from
func GrowthKeyFor(itemType types.ItemType) string {
	if itemType.IsMaterial() {
		return MaterialGrowthKey
	}
	return WorkGrowthKey
}

// FilterSequence rewrites a step sequence for a growth-exempt item. When
// excluded is false the sequence is returned unchanged. Otherwise every
// step whose sub-operations reference the item direction's growth
// parameter is removed, and the survivors' BaseIndex values are rewritten:
// a reference to a removed step falls back to the base amount sentinel, a
// reference to a kept step is decremented by the number of removed steps
// before it. The result keeps the strictly-backward-reference invariant.
//
// Step-kind operand indices in slots 1-5 are deliberately left untouched,
// even when they point at removed positions. Matching the long-standing
// behavior matters more here than symmetry; see FilterSequence tests.
func FilterSequence(sequence []types.MarkupStep, excluded bool, itemType types.ItemType) []types.MarkupStep {
	if !excluded || len(sequence) == 0 {
		return sequence
	}

	target := GrowthKeyFor(itemType)

	removed := make([]bool, len(sequence))
	for i := range sequence {
		removed[i] = referencesParameter(&sequence[i], target)
	}

	// removedBefore[i] counts removed steps at positions < i
	removedBefore := make([]int, len(sequence))
	count := 0
	for i := range sequence {
		removedBefore[i] = count
		if removed[i] {
			count++
		}
	}
	if count == 0 {
		return sequence
	}

	kept := make([]types.MarkupStep, 0, len(sequence)-count)
	for i := range sequence {
		if removed[i] {
			continue
		}
		step := sequence[i]
		if step.BaseIndex >= 0 {
			if removed[step.BaseIndex] {
				step.BaseIndex = types.BaseAmountIndex
			} else {
				step.BaseIndex -= removedBefore[step.BaseIndex]
			}
		}
		kept = append(kept, step)
	}
	return kept
}

// referencesParameter reports whether any sub-operation operand of the
// step is a parameter operand with the given key
func referencesParameter(step *types.MarkupStep, key string) bool {
	for slot := 0; slot < types.MaxSubOperations; slot++ {
		op := step.Operations[slot]
		if op.Operand != nil && op.Operand.Kind == types.OperandParameter && op.Operand.Key == key {
			return true
		}
	}
	return false
}
