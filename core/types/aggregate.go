// Package types - Tender-wide aggregation types
package types

// ParameterMarkupAggregate accumulates one parameter key's markup
// contribution across all evaluated items of a tender. Instances live only
// for the duration of one aggregation run.
type ParameterMarkupAggregate struct {
	// Key is the parameter key
	Key string `json:"key"`

	// TotalMarkupAmount is the summed markup contributed via this key
	TotalMarkupAmount float64 `json:"total_markup_amount"`

	// ItemCount is the number of distinct items that touched this key
	ItemCount int `json:"item_count"`

	// StepsCount is the number of step evaluations that consumed this key
	StepsCount int `json:"steps_count"`

	// ByCategory breaks the markup amount down by item category code
	ByCategory map[string]float64 `json:"by_category,omitempty"`
}

// AddStep folds one step's markup contribution into the aggregate
func (a *ParameterMarkupAggregate) AddStep(category string, markup float64) {
	a.TotalMarkupAmount += markup
	a.StepsCount++
	if a.ByCategory == nil {
		a.ByCategory = make(map[string]float64)
	}
	a.ByCategory[category] += markup
}

// TenderMarkupAggregation is the full result of one aggregation run
type TenderMarkupAggregation struct {
	// ByParameter maps parameter key to its aggregate
	ByParameter map[string]*ParameterMarkupAggregate `json:"by_parameter"`

	// DirectCostByCategory sums base amounts by raw item category code,
	// independently of markup computation
	DirectCostByCategory map[string]float64 `json:"direct_cost_by_category"`

	// TotalBaseAmount is the summed base cost of all evaluated items
	TotalBaseAmount float64 `json:"total_base_amount"`

	// TotalCommercialCost is the summed commercial cost
	TotalCommercialCost float64 `json:"total_commercial_cost"`

	// TotalMarkupAmount is TotalCommercialCost - TotalBaseAmount
	TotalMarkupAmount float64 `json:"total_markup_amount"`

	// ItemCount is the number of items evaluated
	ItemCount int `json:"item_count"`

	// Errors lists non-fatal per-item problems, each prefixed with the
	// item ID
	Errors []string `json:"errors,omitempty"`
}

// NewTenderMarkupAggregation creates an empty aggregation accumulator
func NewTenderMarkupAggregation() *TenderMarkupAggregation {
	return &TenderMarkupAggregation{
		ByParameter:          make(map[string]*ParameterMarkupAggregate),
		DirectCostByCategory: make(map[string]float64),
	}
}

// Parameter returns the aggregate for a key, creating it on first use
func (t *TenderMarkupAggregation) Parameter(key string) *ParameterMarkupAggregate {
	agg, ok := t.ByParameter[key]
	if !ok {
		agg = &ParameterMarkupAggregate{Key: key}
		t.ByParameter[key] = agg
	}
	return agg
}
