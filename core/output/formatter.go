// Package output renders calculation and aggregation results for humans
// and machines. All rounding happens here, at the presentation boundary;
// the engine itself never rounds.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"tender-markup/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderItem renders one item's calculation result
	RenderItem(w io.Writer, result *types.CalculationResult) error

	// RenderAggregation renders a tender-wide aggregation
	RenderAggregation(w io.Writer, agg *types.TenderMarkupAggregation) error
}

// New returns the formatter for a format name, defaulting to CLI
func New(format Format, precision int) Formatter {
	if format == FormatJSON {
		return &jsonFormatter{precision: precision}
	}
	return &cliFormatter{precision: precision}
}

// round formats an amount at the configured precision. NaN and Inf are
// printed as-is since decimal cannot represent them.
func round(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).Round(int32(precision)).StringFixed(int32(precision))
}

type cliFormatter struct {
	precision int
}

func (f *cliFormatter) Format() Format {
	return FormatCLI
}

func (f *cliFormatter) RenderItem(w io.Writer, result *types.CalculationResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "STEP\tNAME\tINPUT\tOUTPUT\tMARKUP\n")
	for _, step := range result.Steps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			step.Index+1, step.Name,
			round(step.Input, f.precision),
			round(step.Output, f.precision),
			round(step.MarkupAmount, f.precision))
	}
	fmt.Fprintf(tw, "\nCommercial cost:\t%s\n", round(result.CommercialCost, f.precision))
	fmt.Fprintf(tw, "Markup coefficient:\t%s\n", round(result.MarkupCoefficient, 4))
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, msg := range result.Errors {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
	return nil
}

func (f *cliFormatter) RenderAggregation(w io.Writer, agg *types.TenderMarkupAggregation) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "PARAMETER\tMARKUP\tITEMS\tSTEPS\n")
	for _, key := range sortedKeys(agg.ByParameter) {
		p := agg.ByParameter[key]
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n",
			key, round(p.TotalMarkupAmount, f.precision), p.ItemCount, p.StepsCount)
	}

	fmt.Fprintf(tw, "\nItems evaluated:\t%d\n", agg.ItemCount)
	fmt.Fprintf(tw, "Total base:\t%s\n", round(agg.TotalBaseAmount, f.precision))
	fmt.Fprintf(tw, "Total commercial:\t%s\n", round(agg.TotalCommercialCost, f.precision))
	fmt.Fprintf(tw, "Total markup:\t%s\n", round(agg.TotalMarkupAmount, f.precision))
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, msg := range agg.Errors {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
	return nil
}

type jsonFormatter struct {
	precision int
}

func (f *jsonFormatter) Format() Format {
	return FormatJSON
}

func (f *jsonFormatter) RenderItem(w io.Writer, result *types.CalculationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (f *jsonFormatter) RenderAggregation(w io.Writer, agg *types.TenderMarkupAggregation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(agg)
}

// sortedKeys returns map keys in stable order for deterministic output
func sortedKeys(m map[string]*types.ParameterMarkupAggregate) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
