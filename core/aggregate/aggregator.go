// Package aggregate folds per-item calculation detail across a whole
// tender into per-parameter and per-category roll-ups.
package aggregate

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"tender-markup/core/markup"
	"tender-markup/core/types"
	"tender-markup/internal/logging"
)

// defaultFilterCacheSize bounds the filtered-sequence cache when the
// caller does not configure one
const defaultFilterCacheSize = 128

// Aggregator runs the calculation engine over every item of a tender and
// accumulates a TenderMarkupAggregation. It is safe for concurrent use:
// all mutable state lives in per-run accumulators.
type Aggregator struct {
	tactic     *types.Tactic
	parameters types.ParameterTable
	exclusions *types.ExclusionSet

	// workers > 1 enables chunked parallel aggregation. Chunk partials
	// merge in item order, but float addition is not associative, so
	// bit-exact parity with the sequential fold needs workers <= 1.
	workers int

	// filterCache memoizes exclusion-filtered sequences per category and
	// direction. Thousands of items share a handful of categories; the
	// graph surgery runs once per pair.
	filterCache *lru.Cache[string, []types.MarkupStep]
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithWorkers sets the parallel worker count
func WithWorkers(n int) Option {
	return func(a *Aggregator) {
		a.workers = n
	}
}

// WithFilterCacheSize bounds the filtered-sequence cache
func WithFilterCacheSize(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			cache, err := lru.New[string, []types.MarkupStep](n)
			if err == nil {
				a.filterCache = cache
			}
		}
	}
}

// NewAggregator creates an aggregator for one tender's configuration
func NewAggregator(tactic *types.Tactic, parameters types.ParameterTable, exclusions *types.ExclusionSet, opts ...Option) *Aggregator {
	cache, _ := lru.New[string, []types.MarkupStep](defaultFilterCacheSize)
	a := &Aggregator{
		tactic:      tactic,
		parameters:  parameters,
		exclusions:  exclusions,
		workers:     1,
		filterCache: cache,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate evaluates every item and folds the results. Items with a
// non-positive base amount are skipped. The tender-level markup amount is
// always TotalCommercialCost - TotalBaseAmount, which reconciles with the
// per-parameter aggregates for the sequences this system configures.
func (a *Aggregator) Aggregate(ctx context.Context, items []*types.Item) *types.TenderMarkupAggregation {
	var result *types.TenderMarkupAggregation
	if a.workers > 1 && len(items) >= a.workers {
		result = a.aggregateParallel(ctx, items)
	} else {
		result = a.aggregateChunk(ctx, items)
	}

	result.TotalMarkupAmount = result.TotalCommercialCost - result.TotalBaseAmount

	logging.Debug("tender aggregation complete",
		zap.Int("items", result.ItemCount),
		zap.Int("parameters", len(result.ByParameter)),
		zap.Int("errors", len(result.Errors)),
		zap.Float64("total_markup", result.TotalMarkupAmount))
	return result
}

// aggregateParallel splits items into contiguous chunks, folds each on its
// own worker, then merges the partials in chunk order
func (a *Aggregator) aggregateParallel(ctx context.Context, items []*types.Item) *types.TenderMarkupAggregation {
	chunkCount := a.workers
	chunkSize := (len(items) + chunkCount - 1) / chunkCount

	partials := make([]*types.TenderMarkupAggregation, 0, chunkCount)
	var wg sync.WaitGroup
	for start := 0; start < len(items); start += chunkSize {
		end := start + chunkSize
		if end > len(items) {
			end = len(items)
		}
		partial := types.NewTenderMarkupAggregation()
		partials = append(partials, partial)

		wg.Add(1)
		go func(chunk []*types.Item, dst *types.TenderMarkupAggregation) {
			defer wg.Done()
			*dst = *a.aggregateChunk(ctx, chunk)
		}(items[start:end], partial)
	}
	wg.Wait()

	merged := types.NewTenderMarkupAggregation()
	for _, partial := range partials {
		mergeInto(merged, partial)
	}
	return merged
}

// aggregateChunk is the sequential reference fold over a slice of items
func (a *Aggregator) aggregateChunk(ctx context.Context, items []*types.Item) *types.TenderMarkupAggregation {
	acc := types.NewTenderMarkupAggregation()

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		if item.BaseAmount <= 0 {
			continue
		}

		acc.ItemCount++
		acc.TotalBaseAmount += item.BaseAmount
		acc.DirectCostByCategory[item.Category] += item.BaseAmount

		sequence := a.tactic.SequenceFor(item.Category)
		if len(sequence) == 0 {
			// No tactic for this category: the item passes through at
			// its base cost.
			acc.TotalCommercialCost += item.BaseAmount
			continue
		}

		calcCtx := types.CalculationContext{
			BaseAmount:   item.BaseAmount,
			ItemCategory: item.Category,
			Sequence:     a.filteredSequence(sequence, item),
			Parameters:   a.parameters,
			BaseOverride: a.tactic.OverrideFor(item.Category),
		}
		result := markup.Calculate(&calcCtx)

		acc.TotalCommercialCost += result.CommercialCost
		for _, msg := range result.Errors {
			acc.Errors = append(acc.Errors, fmt.Sprintf("item %s: %s", item.ID, msg))
		}

		a.foldSteps(acc, item, result)
	}
	return acc
}

// foldSteps distributes one item's per-step markup into the parameter
// aggregates. Every key entry of a step folds that step's full markup
// amount; duplicate keys within a step fold twice. Item counts stay
// distinct per key.
func (a *Aggregator) foldSteps(acc *types.TenderMarkupAggregation, item *types.Item, result *types.CalculationResult) {
	var touched map[string]struct{}
	for i := range result.Steps {
		detail := &result.Steps[i]
		for _, key := range detail.ParameterKeys {
			agg := acc.Parameter(key)
			agg.AddStep(item.Category, detail.MarkupAmount)
			if touched == nil {
				touched = make(map[string]struct{})
			}
			if _, seen := touched[key]; !seen {
				touched[key] = struct{}{}
				agg.ItemCount++
			}
		}
	}
}

// filteredSequence applies the exclusion filter for exempt items, reusing
// cached rewrites per category and direction
func (a *Aggregator) filteredSequence(sequence []types.MarkupStep, item *types.Item) []types.MarkupStep {
	if !a.exclusions.Excluded(item) {
		return sequence
	}

	cacheKey := item.Category + "|" + markup.GrowthKeyFor(item.Type)
	if a.filterCache != nil {
		if cached, ok := a.filterCache.Get(cacheKey); ok {
			return cached
		}
	}

	filtered := markup.FilterSequence(sequence, true, item.Type)
	if a.filterCache != nil {
		a.filterCache.Add(cacheKey, filtered)
	}
	return filtered
}

// mergeInto folds a partial accumulator into dst. Partials cover disjoint
// item slices, so per-key item counts add without double counting.
func mergeInto(dst, src *types.TenderMarkupAggregation) {
	dst.ItemCount += src.ItemCount
	dst.TotalBaseAmount += src.TotalBaseAmount
	dst.TotalCommercialCost += src.TotalCommercialCost
	dst.Errors = append(dst.Errors, src.Errors...)

	for category, amount := range src.DirectCostByCategory {
		dst.DirectCostByCategory[category] += amount
	}

	for key, partial := range src.ByParameter {
		agg := dst.Parameter(key)
		agg.TotalMarkupAmount += partial.TotalMarkupAmount
		agg.ItemCount += partial.ItemCount
		agg.StepsCount += partial.StepsCount
		for category, amount := range partial.ByCategory {
			if agg.ByCategory == nil {
				agg.ByCategory = make(map[string]float64)
			}
			agg.ByCategory[category] += amount
		}
	}
}
