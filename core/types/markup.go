// Package types - Markup sequence and calculation types
package types

// Action is a binary arithmetic action applied to the running value
type Action string

const (
	ActionMultiply Action = "multiply"
	ActionDivide   Action = "divide"
	ActionAdd      Action = "add"
	ActionSubtract Action = "subtract"
)

// String returns the string representation
func (a Action) String() string {
	return string(a)
}

// Valid reports whether the action is one of the four supported actions
func (a Action) Valid() bool {
	switch a {
	case ActionMultiply, ActionDivide, ActionAdd, ActionSubtract:
		return true
	}
	return false
}

// OperandKind discriminates the operand tagged union
type OperandKind string

const (
	// OperandParameter looks up a named percentage in the parameter table
	OperandParameter OperandKind = "parameter"

	// OperandStep references a previous step's result (or the base amount)
	OperandStep OperandKind = "step"

	// OperandLiteral is an inline numeric constant
	OperandLiteral OperandKind = "literal"
)

// ParameterFormat controls how a parameter percentage becomes a number
type ParameterFormat string

const (
	// FormatAddOne yields 1 + value/100, for direct multiplication into a growth factor
	FormatAddOne ParameterFormat = "add_one"

	// FormatDirect yields value/100
	FormatDirect ParameterFormat = "direct"
)

// BaseAmountIndex is the sentinel step index meaning "the item's base amount"
const BaseAmountIndex = -1

// Operand is one input to a sub-operation. Kind selects which payload
// fields are meaningful.
type Operand struct {
	// Kind is the union discriminant
	Kind OperandKind `json:"kind"`

	// Key is the parameter key (Kind == OperandParameter)
	Key string `json:"key,omitempty"`

	// Format is the parameter conversion rule (Kind == OperandParameter)
	Format ParameterFormat `json:"format,omitempty"`

	// Index is a step reference; BaseAmountIndex means the base amount
	// (Kind == OperandStep)
	Index int `json:"index,omitempty"`

	// Value is the literal value (Kind == OperandLiteral)
	Value float64 `json:"value,omitempty"`
}

// Parameter creates a parameter operand
func Parameter(key string, format ParameterFormat) *Operand {
	return &Operand{Kind: OperandParameter, Key: key, Format: format}
}

// StepRef creates a step-reference operand
func StepRef(index int) *Operand {
	return &Operand{Kind: OperandStep, Index: index}
}

// Literal creates a literal operand
func Literal(value float64) *Operand {
	return &Operand{Kind: OperandLiteral, Value: value}
}

// MaxSubOperations is the number of sub-operation slots per step
const MaxSubOperations = 5

// SubOperation pairs an action with its operand. A slot is present only
// when both are set; slot 1 is mandatory, slots 2-5 are optional.
type SubOperation struct {
	// Action is the arithmetic action
	Action Action `json:"action,omitempty"`

	// Operand is the action's right-hand side
	Operand *Operand `json:"operand,omitempty"`
}

// Present reports whether this slot holds a usable sub-operation
func (s SubOperation) Present() bool {
	return s.Action != "" && s.Operand != nil
}

// MarkupStep is one computation step in a named sequence
type MarkupStep struct {
	// Name is a human-readable label, used only for reporting
	Name string `json:"name,omitempty"`

	// BaseIndex selects the step's starting value: BaseAmountIndex means
	// the item's base amount, n >= 0 means the result of step n. A valid
	// sequence only ever references strictly earlier steps.
	BaseIndex int `json:"base_index"`

	// Operations are the ordered sub-operation slots
	Operations [MaxSubOperations]SubOperation `json:"operations"`
}

// ParameterTable maps parameter keys to percentage values (10 means 10%)
type ParameterTable map[string]float64

// CalculationContext is the input to a single item calculation
type CalculationContext struct {
	// BaseAmount is the item's stored base cost
	BaseAmount float64

	// ItemCategory is the item's category code, used for reporting
	ItemCategory string

	// Sequence is the ordered markup steps; nil means "not defined"
	Sequence []MarkupStep

	// Parameters is the tender's parameter table
	Parameters ParameterTable

	// BaseOverride, when set, seeds the running value used inside steps.
	// It does not change what BaseAmountIndex resolves to: that sentinel
	// always means the unmodified BaseAmount.
	BaseOverride *float64
}

// Seed returns the value the step chain starts from
func (c *CalculationContext) Seed() float64 {
	if c.BaseOverride != nil {
		return *c.BaseOverride
	}
	return c.BaseAmount
}

// StepDetail is the per-step trace record of one calculation
type StepDetail struct {
	// Index is the step's 0-based position in the sequence
	Index int `json:"index"`

	// Name is the step's label, if any
	Name string `json:"name,omitempty"`

	// ParameterKeys lists every parameter key the step consumed, in
	// encounter order, duplicates preserved
	ParameterKeys []string `json:"parameter_keys,omitempty"`

	// Input is the step's starting value
	Input float64 `json:"input"`

	// Output is the step's result
	Output float64 `json:"output"`

	// MarkupAmount is Output - Input
	MarkupAmount float64 `json:"markup_amount"`
}

// CalculationResult is the full outcome of one item calculation
type CalculationResult struct {
	// CommercialCost is the final chained value
	CommercialCost float64 `json:"commercial_cost"`

	// MarkupCoefficient is CommercialCost / BaseAmount, defined as 1
	// when BaseAmount <= 0
	MarkupCoefficient float64 `json:"markup_coefficient"`

	// StepResults are the ordered per-step numeric results
	StepResults []float64 `json:"step_results,omitempty"`

	// Steps are the ordered per-step trace records
	Steps []StepDetail `json:"steps,omitempty"`

	// Errors lists non-fatal, human-readable problems encountered during
	// evaluation. A non-empty list means the result is degraded and must
	// not be trusted for financial reporting without surfacing it.
	Errors []string `json:"errors,omitempty"`
}

// Degraded reports whether any step failed or the input was unusable
func (r *CalculationResult) Degraded() bool {
	return len(r.Errors) > 0
}
