package distribution

import (
	"testing"

	"tender-markup/core/types"
)

// TestSplitLegacy covers the all-or-nothing routing without a table
func TestSplitLegacy(t *testing.T) {
	tests := []struct {
		name         string
		itemType     types.ItemType
		wantMaterial float64
		wantWork     float64
	}{
		{"work", types.ItemTypeWork, 0, 13420},
		{"component work", types.ItemTypeComponentWork, 0, 13420},
		{"subcontract work", types.ItemTypeSubcontractWork, 0, 13420},
		{"material", types.ItemTypeMaterial, 13420, 0},
		{"component material", types.ItemTypeComponentMaterial, 13420, 0},
		{"subcontract material", types.ItemTypeSubcontractMaterial, 13420, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			material, work := Split(10000, 13420, tt.itemType, types.MaterialSubtypeBasic, nil)
			if material != tt.wantMaterial || work != tt.wantWork {
				t.Errorf("split = (%v, %v), want (%v, %v)", material, work, tt.wantMaterial, tt.wantWork)
			}
		})
	}
}

// TestSplitWithTable verifies base and markup route independently
func TestSplitWithTable(t *testing.T) {
	table := types.DistributionTable{
		types.DistBasicMaterial:     {Base: types.BucketMaterial, Markup: types.BucketWork},
		types.DistAuxiliaryMaterial: {Base: types.BucketMaterial, Markup: types.BucketMaterial},
		types.DistWork:              {Base: types.BucketWork, Markup: types.BucketWork},
	}

	tests := []struct {
		name         string
		itemType     types.ItemType
		subtype      types.MaterialSubtype
		base         float64
		commercial   float64
		wantMaterial float64
		wantWork     float64
	}{
		{
			name:     "basic material splits markup to work",
			itemType: types.ItemTypeMaterial, subtype: types.MaterialSubtypeBasic,
			base: 10000, commercial: 13420,
			wantMaterial: 10000, wantWork: 3420,
		},
		{
			name:     "auxiliary material keeps everything",
			itemType: types.ItemTypeMaterial, subtype: types.MaterialSubtypeAuxiliary,
			base: 10000, commercial: 13420,
			wantMaterial: 13420, wantWork: 0,
		},
		{
			name:     "work routes everything to work",
			itemType: types.ItemTypeWork, subtype: "",
			base: 10000, commercial: 13420,
			wantMaterial: 0, wantWork: 13420,
		},
		{
			name:     "negative markup routes as-is",
			itemType: types.ItemTypeMaterial, subtype: types.MaterialSubtypeBasic,
			base: 10000, commercial: 9000,
			wantMaterial: 10000, wantWork: -1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			material, work := Split(tt.base, tt.commercial, tt.itemType, tt.subtype, table)
			if material != tt.wantMaterial || work != tt.wantWork {
				t.Errorf("split = (%v, %v), want (%v, %v)", material, work, tt.wantMaterial, tt.wantWork)
			}
		})
	}
}

// TestSplitFallbacks verifies component and subcontract sub-categories
// defer to the generic rules when their entries are absent
func TestSplitFallbacks(t *testing.T) {
	table := types.DistributionTable{
		types.DistBasicMaterial:     {Base: types.BucketMaterial, Markup: types.BucketWork},
		types.DistAuxiliaryMaterial: {Base: types.BucketMaterial, Markup: types.BucketMaterial},
		types.DistWork:              {Base: types.BucketWork, Markup: types.BucketWork},
	}

	tests := []struct {
		name         string
		itemType     types.ItemType
		subtype      types.MaterialSubtype
		wantMaterial float64
		wantWork     float64
	}{
		{"component material uses basic material rule", types.ItemTypeComponentMaterial, "", 10000, 3420},
		{"subcontract basic material uses basic material rule", types.ItemTypeSubcontractMaterial, types.MaterialSubtypeBasic, 10000, 3420},
		{"subcontract auxiliary material uses auxiliary rule", types.ItemTypeSubcontractMaterial, types.MaterialSubtypeAuxiliary, 13420, 0},
		{"component work uses work rule", types.ItemTypeComponentWork, "", 0, 13420},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			material, work := Split(10000, 13420, tt.itemType, tt.subtype, table)
			if material != tt.wantMaterial || work != tt.wantWork {
				t.Errorf("split = (%v, %v), want (%v, %v)", material, work, tt.wantMaterial, tt.wantWork)
			}
		})
	}
}

// TestSplitDedicatedEntryWins verifies a dedicated entry overrides the
// fallback chain
func TestSplitDedicatedEntryWins(t *testing.T) {
	table := types.DistributionTable{
		types.DistBasicMaterial:     {Base: types.BucketMaterial, Markup: types.BucketMaterial},
		types.DistComponentMaterial: {Base: types.BucketWork, Markup: types.BucketWork},
	}

	material, work := Split(10000, 13420, types.ItemTypeComponentMaterial, "", table)
	if material != 0 || work != 13420 {
		t.Errorf("split = (%v, %v), want (0, 13420)", material, work)
	}
}

// TestSplitMissingRuleFallsBackToLegacy verifies unresolvable lookups use
// the legacy routing
func TestSplitMissingRuleFallsBackToLegacy(t *testing.T) {
	table := types.DistributionTable{
		types.DistWork: {Base: types.BucketWork, Markup: types.BucketWork},
	}

	material, work := Split(10000, 13420, types.ItemTypeMaterial, types.MaterialSubtypeBasic, table)
	if material != 13420 || work != 0 {
		t.Errorf("split = (%v, %v), want legacy (13420, 0)", material, work)
	}
}

// TestSplitCompleteness verifies material + work always reconstruct the
// commercial cost exactly, across configurations and classifications
func TestSplitCompleteness(t *testing.T) {
	tables := []types.DistributionTable{
		nil,
		{
			types.DistBasicMaterial: {Base: types.BucketMaterial, Markup: types.BucketWork},
			types.DistWork:          {Base: types.BucketWork, Markup: types.BucketMaterial},
		},
		{
			types.DistBasicMaterial:                {Base: types.BucketMaterial, Markup: types.BucketMaterial},
			types.DistAuxiliaryMaterial:            {Base: types.BucketWork, Markup: types.BucketMaterial},
			types.DistComponentMaterial:            {Base: types.BucketMaterial, Markup: types.BucketWork},
			types.DistSubcontractBasicMaterial:     {Base: types.BucketWork, Markup: types.BucketWork},
			types.DistSubcontractAuxiliaryMaterial: {Base: types.BucketMaterial, Markup: types.BucketWork},
			types.DistWork:                         {Base: types.BucketWork, Markup: types.BucketWork},
			types.DistComponentWork:                {Base: types.BucketWork, Markup: types.BucketMaterial},
		},
	}
	itemTypes := []types.ItemType{
		types.ItemTypeWork, types.ItemTypeMaterial,
		types.ItemTypeComponentWork, types.ItemTypeComponentMaterial,
		types.ItemTypeSubcontractWork, types.ItemTypeSubcontractMaterial,
	}
	subtypes := []types.MaterialSubtype{"", types.MaterialSubtypeBasic, types.MaterialSubtypeAuxiliary}
	pairs := [][2]float64{{10000, 13420}, {10000, 9000}, {0, 0}, {500.5, 500.5}}

	for _, table := range tables {
		for _, itemType := range itemTypes {
			for _, subtype := range subtypes {
				for _, pair := range pairs {
					material, work := Split(pair[0], pair[1], itemType, subtype, table)
					if material+work != pair[1] {
						t.Errorf("type=%s subtype=%q base=%v commercial=%v: %v + %v != %v",
							itemType, subtype, pair[0], pair[1], material, work, pair[1])
					}
				}
			}
		}
	}
}
