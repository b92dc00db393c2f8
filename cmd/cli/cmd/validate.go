// Package cmd - validate command
package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"tender-markup/adapters/tender"
	"tender-markup/core/markup"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [tender file]",
	Short: "Validate the markup sequences of a tender file",
	Long: `Statically check every step sequence in a tender file for
structural problems: out-of-range base indices, missing mandatory first
operations and invalid step references. All violations are reported, not
just the first.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := tender.Load(args[0])
	if err != nil {
		return err
	}

	categories := make([]string, 0, len(cfg.Tactic.Sequences))
	for category := range cfg.Tactic.Sequences {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	invalid := 0
	for _, category := range categories {
		problems := markup.ValidateSequence(cfg.Tactic.Sequences[category])
		if len(problems) == 0 {
			fmt.Printf("sequence %q: ok\n", category)
			continue
		}
		invalid++
		for _, p := range problems {
			fmt.Printf("sequence %q: %s\n", category, p)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d sequences are invalid", invalid, len(categories))
	}
	return nil
}
