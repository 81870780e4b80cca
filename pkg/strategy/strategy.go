// Package strategy loads rule-based strategies from YAML.
//
// A strategy file names its rules as nested trees:
//
//	name: sma-cross
//	engine_version: ">= 1.0.0"
//	position_size: 0.5
//	stop_loss_pct: 5
//	entry_long:
//	  type: CROSS_ABOVE
//	  left: {indicator: SMA, period: 5}
//	  right: {indicator: SMA, period: 20}
//	exit_long:
//	  type: OR
//	  rules:
//	    - type: CROSS_BELOW
//	      left: {indicator: SMA, period: 5}
//	      right: {indicator: SMA, period: 20}
//	    - type: ABOVE
//	      left: {indicator: RSI, period: 14}
//	      right: {constant: 70}
package strategy

import (
	"bytes"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/internal/version"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
	"gopkg.in/yaml.v3"
)

// StrategyFile is the YAML form of a strategy.
type StrategyFile struct {
	Name        string `yaml:"name" json:"name" validate:"required" jsonschema:"title=Name,description=Unique strategy name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty" jsonschema:"title=Description"`
	// EngineVersion is a semver constraint on the engine, e.g. ">= 1.0, < 2.0".
	EngineVersion string `yaml:"engine_version,omitempty" json:"engine_version,omitempty" jsonschema:"title=Engine Version,description=Semver constraint the engine must satisfy"`

	PositionSize  float64 `yaml:"position_size" json:"position_size" validate:"gt=0,lte=1" jsonschema:"title=Position Size,description=Fraction of cash committed per entry,exclusiveMinimum=0,maximum=1"`
	StopLossPct   float64 `yaml:"stop_loss_pct,omitempty" json:"stop_loss_pct,omitempty" validate:"gte=0" jsonschema:"title=Stop Loss %,description=0 disables,minimum=0"`
	TakeProfitPct float64 `yaml:"take_profit_pct,omitempty" json:"take_profit_pct,omitempty" validate:"gte=0" jsonschema:"title=Take Profit %,description=0 disables,minimum=0"`
	MaxPositions  int     `yaml:"max_positions,omitempty" json:"max_positions,omitempty" validate:"gte=0" jsonschema:"title=Max Positions,minimum=0,default=1"`

	EntryLong  *RuleSpec `yaml:"entry_long" json:"entry_long" validate:"required"`
	ExitLong   *RuleSpec `yaml:"exit_long" json:"exit_long" validate:"required"`
	EntryShort *RuleSpec `yaml:"entry_short,omitempty" json:"entry_short,omitempty"`
	ExitShort  *RuleSpec `yaml:"exit_short,omitempty" json:"exit_short,omitempty"`
}

// Parse decodes and validates a strategy file. Unknown keys are rejected.
func Parse(data []byte) (*StrategyFile, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file StrategyFile
	if err := decoder.Decode(&file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to parse strategy file", err)
	}

	if err := validator.New().Struct(file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid strategy file", err)
	}

	if err := version.CheckStrategyCompatibility(version.GetVersion(), file.EngineVersion); err != nil {
		return nil, err
	}

	return &file, nil
}

// Load parses data and builds the strategy.
func Load(data []byte) (types.Strategy, error) {
	file, err := Parse(data)
	if err != nil {
		return types.Strategy{}, err
	}

	return file.ToStrategy()
}

// LoadFile reads and builds the strategy at path.
func LoadFile(path string) (types.Strategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Strategy{}, errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "failed to read strategy file %s", path)
	}

	return Load(data)
}

// ToStrategy converts the rule specs into rule trees.
func (f *StrategyFile) ToStrategy() (types.Strategy, error) {
	strategy := types.Strategy{
		Name:          f.Name,
		Description:   f.Description,
		PositionSize:  f.PositionSize,
		StopLossPct:   f.StopLossPct,
		TakeProfitPct: f.TakeProfitPct,
		MaxPositions:  f.MaxPositions,
	}

	rules := []struct {
		path   string
		spec   *RuleSpec
		target **types.Rule
	}{
		{"entry_long", f.EntryLong, &strategy.EntryLong},
		{"exit_long", f.ExitLong, &strategy.ExitLong},
		{"entry_short", f.EntryShort, &strategy.EntryShort},
		{"exit_short", f.ExitShort, &strategy.ExitShort},
	}

	for _, r := range rules {
		if r.spec == nil {
			continue
		}

		rule, err := r.spec.ToRule(r.path)
		if err != nil {
			return types.Strategy{}, err
		}

		*r.target = rule
	}

	if strategy.EntryShort != nil && strategy.ExitShort == nil {
		return types.Strategy{}, errors.New(errors.ErrCodeInvalidRule, "entry_short requires exit_short")
	}

	return strategy, nil
}

// Schema returns the JSON schema of a strategy file.
func Schema() (string, error) {
	return ToJSONSchema(&StrategyFile{}, "argo-strategy")
}
