// Package types - Line item and tender configuration types
package types

// ItemType classifies a BOQ line item
type ItemType string

const (
	ItemTypeWork                ItemType = "work"
	ItemTypeMaterial            ItemType = "material"
	ItemTypeComponentWork       ItemType = "component_work"
	ItemTypeComponentMaterial   ItemType = "component_material"
	ItemTypeSubcontractWork     ItemType = "subcontract_work"
	ItemTypeSubcontractMaterial ItemType = "subcontract_material"
)

// IsMaterial reports whether the item type routes to the material side
func (t ItemType) IsMaterial() bool {
	switch t {
	case ItemTypeMaterial, ItemTypeComponentMaterial, ItemTypeSubcontractMaterial:
		return true
	}
	return false
}

// MaterialSubtype refines material items for distribution routing
type MaterialSubtype string

const (
	MaterialSubtypeBasic     MaterialSubtype = "basic"
	MaterialSubtypeAuxiliary MaterialSubtype = "auxiliary"
)

// Item is the read-only line item record this engine consumes. The engine
// produces MaterialCost, WorkCost and the markup coefficient for it;
// writing those back to a store is the caller's responsibility.
type Item struct {
	// ID uniquely identifies the item
	ID string `json:"id"`

	// Category is the item's category code, used to select the step
	// sequence in the tactic and to group report totals
	Category string `json:"category"`

	// Type classifies the item for distribution and exclusion direction
	Type ItemType `json:"type"`

	// MaterialSubtype refines material items (basic vs auxiliary)
	MaterialSubtype MaterialSubtype `json:"material_subtype,omitempty"`

	// BaseAmount is the stored, pre-markup cost
	BaseAmount float64 `json:"base_amount"`

	// DetailCostCategoryID links the item to a detail cost category,
	// matched against the tender's exclusion set
	DetailCostCategoryID string `json:"detail_cost_category_id,omitempty"`
}

// Tactic is the persisted markup configuration: a step sequence per item
// category, plus optional per-category base-cost seed overrides. Consumed
// read-only.
type Tactic struct {
	// Sequences maps category code to its ordered markup steps
	Sequences map[string][]MarkupStep `json:"sequences"`

	// BaseOverrides optionally maps category code to an absolute seed
	// amount used as the running-value seed inside steps
	BaseOverrides map[string]float64 `json:"base_overrides,omitempty"`
}

// SequenceFor returns the step sequence for a category, nil if undefined
func (t *Tactic) SequenceFor(category string) []MarkupStep {
	if t == nil {
		return nil
	}
	return t.Sequences[category]
}

// OverrideFor returns the base seed override for a category, if any
func (t *Tactic) OverrideFor(category string) *float64 {
	if t == nil {
		return nil
	}
	if v, ok := t.BaseOverrides[category]; ok {
		return &v
	}
	return nil
}

// ExclusionSet holds the detail cost categories exempt from the
// subcontract growth parameters, one set per direction
type ExclusionSet struct {
	// Work lists detail cost categories exempt from work-growth markup
	Work map[string]struct{} `json:"work,omitempty"`

	// Material lists detail cost categories exempt from material-growth markup
	Material map[string]struct{} `json:"material,omitempty"`
}

// Excluded reports whether an item's detail cost category is exempt for
// the item's direction
func (e *ExclusionSet) Excluded(item *Item) bool {
	if e == nil || item.DetailCostCategoryID == "" {
		return false
	}
	if item.Type.IsMaterial() {
		_, ok := e.Material[item.DetailCostCategoryID]
		return ok
	}
	_, ok := e.Work[item.DetailCostCategoryID]
	return ok
}

// Bucket names one of the two reporting buckets
type Bucket string

const (
	BucketMaterial Bucket = "material"
	BucketWork     Bucket = "work"
)

// DistributionKey identifies a distribution sub-category
type DistributionKey string

const (
	DistBasicMaterial                DistributionKey = "basic_material"
	DistAuxiliaryMaterial            DistributionKey = "auxiliary_material"
	DistComponentMaterial            DistributionKey = "component_material"
	DistSubcontractBasicMaterial     DistributionKey = "subcontract_basic_material"
	DistSubcontractAuxiliaryMaterial DistributionKey = "subcontract_auxiliary_material"
	DistWork                         DistributionKey = "work"
	DistComponentWork                DistributionKey = "component_work"
)

// DistributionRule routes an item's base and markup amounts separately
type DistributionRule struct {
	// Base is the bucket receiving the base amount
	Base Bucket `json:"base"`

	// Markup is the bucket receiving the markup amount
	Markup Bucket `json:"markup"`
}

// DistributionTable maps distribution sub-categories to routing rules.
// A nil table selects the legacy all-or-nothing routing.
type DistributionTable map[DistributionKey]DistributionRule
