// Package distribution routes item costs between the material and work
// reporting buckets. Base and markup amounts travel independently, so the
// two buckets always sum back to the commercial cost exactly.
package distribution

import (
	"tender-markup/core/types"
)

// Split divides one item's cost pair into material and work amounts.
//
// Without a table the legacy all-or-nothing rule applies: material-family
// items route their entire commercial cost to the material bucket,
// everything else to the work bucket. With a table, the item's
// distribution sub-category selects a rule that routes the base amount and
// the markup amount (possibly negative) into buckets separately.
// materialCost + workCost == commercialCost holds by construction either
// way.
func Split(baseAmount, commercialCost float64, itemType types.ItemType, subtype types.MaterialSubtype, table types.DistributionTable) (materialCost, workCost float64) {
	if table == nil {
		return legacySplit(commercialCost, itemType)
	}

	rule, ok := lookupRule(table, itemType, subtype)
	if !ok {
		return legacySplit(commercialCost, itemType)
	}

	markup := commercialCost - baseAmount
	if rule.Base == types.BucketMaterial {
		materialCost += baseAmount
	} else {
		workCost += baseAmount
	}
	if rule.Markup == types.BucketMaterial {
		materialCost += markup
	} else {
		workCost += markup
	}
	return materialCost, workCost
}

// legacySplit is the all-or-nothing routing used when no table applies
func legacySplit(commercialCost float64, itemType types.ItemType) (materialCost, workCost float64) {
	if itemType.IsMaterial() {
		return commercialCost, 0
	}
	return 0, commercialCost
}

// KeyFor maps an item's classification to its distribution sub-category
func KeyFor(itemType types.ItemType, subtype types.MaterialSubtype) types.DistributionKey {
	switch itemType {
	case types.ItemTypeMaterial:
		if subtype == types.MaterialSubtypeAuxiliary {
			return types.DistAuxiliaryMaterial
		}
		return types.DistBasicMaterial
	case types.ItemTypeComponentMaterial:
		return types.DistComponentMaterial
	case types.ItemTypeSubcontractMaterial:
		if subtype == types.MaterialSubtypeAuxiliary {
			return types.DistSubcontractAuxiliaryMaterial
		}
		return types.DistSubcontractBasicMaterial
	case types.ItemTypeComponentWork:
		return types.DistComponentWork
	default:
		return types.DistWork
	}
}

// fallbackKey returns the sub-category a missing table entry defers to.
// Component and subcontracted sub-categories defer to the generic
// material/work or auxiliary-material rule; the generic rules themselves
// have no fallback.
func fallbackKey(key types.DistributionKey) (types.DistributionKey, bool) {
	switch key {
	case types.DistComponentMaterial, types.DistSubcontractBasicMaterial:
		return types.DistBasicMaterial, true
	case types.DistSubcontractAuxiliaryMaterial:
		return types.DistAuxiliaryMaterial, true
	case types.DistComponentWork:
		return types.DistWork, true
	default:
		return key, false
	}
}

// lookupRule finds the routing rule for an item, following the fallback
// chain when the dedicated entry is absent
func lookupRule(table types.DistributionTable, itemType types.ItemType, subtype types.MaterialSubtype) (types.DistributionRule, bool) {
	key := KeyFor(itemType, subtype)
	if rule, ok := table[key]; ok {
		return rule, true
	}
	if fb, ok := fallbackKey(key); ok {
		if rule, ok := table[fb]; ok {
			return rule, true
		}
	}
	return types.DistributionRule{}, false
}
