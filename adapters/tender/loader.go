// Package tender loads tender configuration files written in HCL: the
// parameter table, the markup tactic, exclusion and distribution rules,
// and line items. Everything here is read-only input; the engine never
// writes tender files.
package tender

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"tender-markup/core/types"
	"tender-markup/internal/errors"
)

// Config is one fully loaded tender configuration
type Config struct {
	// Parameters is the tender's parameter table
	Parameters types.ParameterTable

	// Tactic holds the per-category step sequences and seed overrides
	Tactic *types.Tactic

	// Exclusions holds the growth-exemption sets
	Exclusions *types.ExclusionSet

	// Distribution is the material/work routing table; nil selects the
	// legacy all-or-nothing routing
	Distribution types.DistributionTable

	// Items are the tender's line items
	Items []*types.Item
}

// HCL decoding schema

type tenderFile struct {
	Parameters   []parameterBlock    `hcl:"parameter,block"`
	Sequences    []sequenceBlock     `hcl:"sequence,block"`
	Exclusions   *exclusionsBlock    `hcl:"exclusions,block"`
	Distribution []distributionBlock `hcl:"distribution,block"`
	Items        []itemBlock         `hcl:"item,block"`
}

type parameterBlock struct {
	Key   string  `hcl:"key,label"`
	Value float64 `hcl:"value"`
}

type sequenceBlock struct {
	Category     string      `hcl:"category,label"`
	BaseOverride *float64    `hcl:"base_override,optional"`
	Steps        []stepBlock `hcl:"step,block"`
}

type stepBlock struct {
	Name string    `hcl:"name,optional"`
	Base *int      `hcl:"base,optional"`
	Ops  []opBlock `hcl:"op,block"`
}

type opBlock struct {
	Action    string   `hcl:"action"`
	Parameter *string  `hcl:"parameter,optional"`
	Format    *string  `hcl:"format,optional"`
	Step      *int     `hcl:"step,optional"`
	Value     *float64 `hcl:"value,optional"`
}

type exclusionsBlock struct {
	Work     []string `hcl:"work,optional"`
	Material []string `hcl:"material,optional"`
}

type distributionBlock struct {
	Key    string `hcl:"key,label"`
	Base   string `hcl:"base"`
	Markup string `hcl:"markup"`
}

type itemBlock struct {
	ID              string  `hcl:"id,label"`
	Category        string  `hcl:"category"`
	Type            string  `hcl:"type"`
	MaterialSubtype *string `hcl:"material_subtype,optional"`
	Base            float64 `hcl:"base"`
	DetailCategory  *string `hcl:"detail_category,optional"`
}

// Load parses a tender configuration file
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Parsing(fmt.Sprintf("failed to read %s", path), err)
	}
	return Parse(src, path)
}

// Parse parses tender configuration from raw HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid HCL", diagError(diags))
	}

	var raw tenderFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, errors.Parsing("invalid tender configuration", diagError(diags))
	}

	return convert(&raw)
}

// diagError flattens HCL diagnostics into one error
func diagError(diags hcl.Diagnostics) error {
	return fmt.Errorf("%s", diags.Error())
}

func convert(raw *tenderFile) (*Config, error) {
	cfg := &Config{
		Parameters: make(types.ParameterTable, len(raw.Parameters)),
		Tactic: &types.Tactic{
			Sequences: make(map[string][]types.MarkupStep, len(raw.Sequences)),
		},
	}

	for _, p := range raw.Parameters {
		if _, dup := cfg.Parameters[p.Key]; dup {
			return nil, errors.Newf(errors.TypeParsing, "duplicate parameter %q", p.Key)
		}
		cfg.Parameters[p.Key] = p.Value
	}

	for _, seq := range raw.Sequences {
		steps, err := convertSteps(seq.Category, seq.Steps)
		if err != nil {
			return nil, err
		}
		cfg.Tactic.Sequences[seq.Category] = steps
		if seq.BaseOverride != nil {
			if cfg.Tactic.BaseOverrides == nil {
				cfg.Tactic.BaseOverrides = make(map[string]float64)
			}
			cfg.Tactic.BaseOverrides[seq.Category] = *seq.BaseOverride
		}
	}

	if raw.Exclusions != nil {
		cfg.Exclusions = &types.ExclusionSet{
			Work:     toSet(raw.Exclusions.Work),
			Material: toSet(raw.Exclusions.Material),
		}
	}

	if len(raw.Distribution) > 0 {
		cfg.Distribution = make(types.DistributionTable, len(raw.Distribution))
		for _, d := range raw.Distribution {
			base, err := convertBucket(d.Base)
			if err != nil {
				return nil, err
			}
			mk, err := convertBucket(d.Markup)
			if err != nil {
				return nil, err
			}
			cfg.Distribution[types.DistributionKey(d.Key)] = types.DistributionRule{Base: base, Markup: mk}
		}
	}

	for _, it := range raw.Items {
		item, err := convertItem(&it)
		if err != nil {
			return nil, err
		}
		cfg.Items = append(cfg.Items, item)
	}

	return cfg, nil
}

func convertSteps(category string, blocks []stepBlock) ([]types.MarkupStep, error) {
	steps := make([]types.MarkupStep, 0, len(blocks))
	for i, b := range blocks {
		if len(b.Ops) == 0 {
			return nil, errors.Newf(errors.TypeParsing, "sequence %q step %d: at least one op is required", category, i+1)
		}
		if len(b.Ops) > types.MaxSubOperations {
			return nil, errors.Newf(errors.TypeParsing, "sequence %q step %d: at most %d ops are allowed", category, i+1, types.MaxSubOperations)
		}

		step := types.MarkupStep{Name: b.Name, BaseIndex: types.BaseAmountIndex}
		if b.Base != nil {
			step.BaseIndex = *b.Base
		}

		for slot, op := range b.Ops {
			sub, err := convertOp(category, i, &op)
			if err != nil {
				return nil, err
			}
			step.Operations[slot] = sub
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func convertOp(category string, stepIdx int, b *opBlock) (types.SubOperation, error) {
	action := types.Action(b.Action)
	if !action.Valid() {
		return types.SubOperation{}, errors.Newf(errors.TypeParsing,
			"sequence %q step %d: unknown action %q", category, stepIdx+1, b.Action)
	}

	var operand *types.Operand
	switch {
	case b.Parameter != nil:
		format := types.FormatDirect
		if b.Format != nil {
			switch types.ParameterFormat(*b.Format) {
			case types.FormatAddOne:
				format = types.FormatAddOne
			case types.FormatDirect:
				format = types.FormatDirect
			default:
				return types.SubOperation{}, errors.Newf(errors.TypeParsing,
					"sequence %q step %d: unknown parameter format %q", category, stepIdx+1, *b.Format)
			}
		}
		operand = types.Parameter(*b.Parameter, format)
	case b.Step != nil:
		operand = types.StepRef(*b.Step)
	case b.Value != nil:
		operand = types.Literal(*b.Value)
	default:
		return types.SubOperation{}, errors.Newf(errors.TypeParsing,
			"sequence %q step %d: op needs one of parameter, step or value", category, stepIdx+1)
	}

	return types.SubOperation{Action: action, Operand: operand}, nil
}

func convertBucket(name string) (types.Bucket, error) {
	switch types.Bucket(name) {
	case types.BucketMaterial:
		return types.BucketMaterial, nil
	case types.BucketWork:
		return types.BucketWork, nil
	}
	return "", errors.Newf(errors.TypeParsing, "unknown bucket %q", name)
}

func convertItem(b *itemBlock) (*types.Item, error) {
	itemType := types.ItemType(b.Type)
	switch itemType {
	case types.ItemTypeWork, types.ItemTypeMaterial,
		types.ItemTypeComponentWork, types.ItemTypeComponentMaterial,
		types.ItemTypeSubcontractWork, types.ItemTypeSubcontractMaterial:
	default:
		return nil, errors.Newf(errors.TypeParsing, "item %q: unknown type %q", b.ID, b.Type)
	}

	item := &types.Item{
		ID:         b.ID,
		Category:   b.Category,
		Type:       itemType,
		BaseAmount: b.Base,
	}
	if b.MaterialSubtype != nil {
		item.MaterialSubtype = types.MaterialSubtype(*b.MaterialSubtype)
	}
	if b.DetailCategory != nil {
		item.DetailCostCategoryID = *b.DetailCategory
	}
	return item, nil
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
