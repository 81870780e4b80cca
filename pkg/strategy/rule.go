package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
)

// RuleSpec is the YAML form of a rule node. Comparisons and crosses use left
// and right; BETWEEN also uses upper. AND and OR take rules; NOT,
// CONSECUTIVE and ANY_OF take rule, and the windowed ones need window.
type RuleSpec struct {
	Type   types.RuleType `yaml:"type" json:"type" validate:"required,oneof=ABOVE BELOW EQUALS BETWEEN CROSS_ABOVE CROSS_BELOW AND OR NOT CONSECUTIVE ANY_OF" jsonschema:"enum=ABOVE,enum=BELOW,enum=EQUALS,enum=BETWEEN,enum=CROSS_ABOVE,enum=CROSS_BELOW,enum=AND,enum=OR,enum=NOT,enum=CONSECUTIVE,enum=ANY_OF"`
	Left   *OperandSpec   `yaml:"left,omitempty" json:"left,omitempty"`
	Right  *OperandSpec   `yaml:"right,omitempty" json:"right,omitempty"`
	Upper  *OperandSpec   `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rules  []*RuleSpec    `yaml:"rules,omitempty" json:"rules,omitempty" validate:"omitempty,dive"`
	Rule   *RuleSpec      `yaml:"rule,omitempty" json:"rule,omitempty"`
	Window int            `yaml:"window,omitempty" json:"window,omitempty" validate:"gte=0"`
}

// OperandSpec is the YAML form of an operand. Exactly one of price, constant
// and indicator is set.
type OperandSpec struct {
	Price     *types.PriceField    `yaml:"price,omitempty" json:"price,omitempty" validate:"omitempty,oneof=open high low close volume" jsonschema:"enum=open,enum=high,enum=low,enum=close,enum=volume"`
	Constant  *float64             `yaml:"constant,omitempty" json:"constant,omitempty"`
	Indicator *types.IndicatorType `yaml:"indicator,omitempty" json:"indicator,omitempty" validate:"omitempty,oneof=SMA EMA WMA RSI BOLLINGER ATR PIVOT MACD STOCHASTIC" jsonschema:"enum=SMA,enum=EMA,enum=WMA,enum=RSI,enum=BOLLINGER,enum=ATR,enum=PIVOT,enum=MACD,enum=STOCHASTIC"`
	Period    int                  `yaml:"period,omitempty" json:"period,omitempty" validate:"gte=0"`
	Param2    int                  `yaml:"param2,omitempty" json:"param2,omitempty" validate:"gte=0"`
	Param3    int                  `yaml:"param3,omitempty" json:"param3,omitempty" validate:"gte=0"`
	Field     types.IndicatorField `yaml:"field,omitempty" json:"field,omitempty"`
}

// ToRule builds the rule tree. path locates the node in error messages.
func (s *RuleSpec) ToRule(path string) (*types.Rule, error) {
	if s == nil {
		return nil, errors.Newf(errors.ErrCodeInvalidRule, "%s: missing rule", path)
	}

	switch s.Type {
	case types.RuleTypeAbove, types.RuleTypeBelow, types.RuleTypeEquals, types.RuleTypeCrossAbove, types.RuleTypeCrossBelow:
		left, err := s.Left.ToOperand(path + ".left")
		if err != nil {
			return nil, err
		}

		right, err := s.Right.ToOperand(path + ".right")
		if err != nil {
			return nil, err
		}

		return &types.Rule{Type: s.Type, Left: left, Right: right}, nil
	case types.RuleTypeBetween:
		value, err := s.Left.ToOperand(path + ".left")
		if err != nil {
			return nil, err
		}

		low, err := s.Right.ToOperand(path + ".right")
		if err != nil {
			return nil, err
		}

		high, err := s.Upper.ToOperand(path + ".upper")
		if err != nil {
			return nil, err
		}

		return types.Between(value, low, high), nil
	case types.RuleTypeAnd, types.RuleTypeOr:
		children := make([]*types.Rule, 0, len(s.Rules))

		for i, spec := range s.Rules {
			child, err := spec.ToRule(indexPath(path+".rules", i))
			if err != nil {
				return nil, err
			}

			children = append(children, child)
		}

		return &types.Rule{Type: s.Type, Children: children}, nil
	case types.RuleTypeNot, types.RuleTypeConsecutive, types.RuleTypeAnyOf:
		child, err := s.Rule.ToRule(path + ".rule")
		if err != nil {
			return nil, err
		}

		if s.Type != types.RuleTypeNot && s.Window <= 0 {
			return nil, errors.Newf(errors.ErrCodeInvalidRule, "%s: %s needs a positive window", path, s.Type)
		}

		return &types.Rule{Type: s.Type, Children: []*types.Rule{child}, Window: s.Window}, nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidRule, "%s: unknown rule type %q", path, s.Type)
	}
}

// ToOperand builds the operand. path locates it in error messages.
func (o *OperandSpec) ToOperand(path string) (types.Operand, error) {
	if o == nil {
		return types.Operand{}, errors.Newf(errors.ErrCodeInvalidOperand, "%s: missing operand", path)
	}

	set := 0
	for _, present := range []bool{o.Price != nil, o.Constant != nil, o.Indicator != nil} {
		if present {
			set++
		}
	}

	if set != 1 {
		return types.Operand{}, errors.Newf(errors.ErrCodeInvalidOperand, "%s: exactly one of price, constant or indicator must be set", path)
	}

	switch {
	case o.Price != nil:
		return types.PriceOperand(*o.Price), nil
	case o.Constant != nil:
		return types.ConstantOperand(*o.Constant), nil
	default:
		indicatorType := *o.Indicator
		if indicatorType != types.IndicatorTypePivot && o.Period <= 0 {
			return types.Operand{}, errors.Newf(errors.ErrCodeInvalidPeriod, "%s: %s needs a positive period", path, indicatorType)
		}

		return types.IndicatorOperand(indicatorType, o.Period, o.Param2, o.Param3).WithField(o.Field), nil
	}
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
