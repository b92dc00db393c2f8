// Package cmd - calc command
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tender-markup/adapters/tender"
	"tender-markup/core/distribution"
	"tender-markup/core/markup"
	"tender-markup/core/output"
	"tender-markup/core/types"
	"tender-markup/internal/config"
	"tender-markup/internal/logging"
)

var (
	calcItemID string
	calcFormat string
)

// calcCmd represents the calc command
var calcCmd = &cobra.Command{
	Use:   "calc [tender file]",
	Short: "Calculate one line item's commercial cost",
	Long: `Evaluate the markup sequence for a single line item of a tender
file and print the per-step trace, the commercial cost and the
material/work distribution.

Examples:
  tender-markup calc --item boq-101 tender.hcl
  tender-markup calc --item boq-101 --format json tender.hcl`,
	Args: cobra.ExactArgs(1),
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVarP(&calcItemID, "item", "i", "", "line item ID (required)")
	calcCmd.Flags().StringVarP(&calcFormat, "format", "f", "", "output format (cli, json)")
	_ = calcCmd.MarkFlagRequired("item")
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := tender.Load(args[0])
	if err != nil {
		return err
	}

	var item *types.Item
	for _, it := range cfg.Items {
		if it.ID == calcItemID {
			item = it
			break
		}
	}
	if item == nil {
		return fmt.Errorf("item %q not found in %s", calcItemID, args[0])
	}

	sequence := cfg.Tactic.SequenceFor(item.Category)
	if problems := markup.ValidateSequence(sequence); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "invalid sequence %q: %s\n", item.Category, p)
		}
		return fmt.Errorf("sequence %q is not valid", item.Category)
	}

	sequence = markup.FilterSequence(sequence, cfg.Exclusions.Excluded(item), item.Type)
	logging.Debug("calculating item",
		zap.String("item", item.ID),
		zap.String("category", item.Category),
		zap.Int("steps", len(sequence)))

	result := markup.Calculate(&types.CalculationContext{
		BaseAmount:   item.BaseAmount,
		ItemCategory: item.Category,
		Sequence:     sequence,
		Parameters:   cfg.Parameters,
		BaseOverride: cfg.Tactic.OverrideFor(item.Category),
	})

	appCfg := config.Get()
	if !appCfg.Output.ShowSteps {
		result.Steps = nil
	}
	formatter := output.New(outputFormat(calcFormat, appCfg), appCfg.Output.Precision)
	if err := formatter.RenderItem(os.Stdout, result); err != nil {
		return err
	}

	material, work := distribution.Split(
		item.BaseAmount, result.CommercialCost,
		item.Type, item.MaterialSubtype, cfg.Distribution)
	fmt.Printf("Material: %.2f  Work: %.2f\n", material, work)
	return nil
}

// outputFormat resolves the effective output format from flag and config
func outputFormat(flag string, cfg *config.Config) output.Format {
	if flag != "" {
		return output.Format(flag)
	}
	return output.Format(cfg.Output.DefaultFormat)
}
