package types

// RuleType tags the variant of a Rule node.
type RuleType string

const (
	// Comparisons over two operands (BETWEEN uses three).
	RuleTypeAbove   RuleType = "ABOVE"
	RuleTypeBelow   RuleType = "BELOW"
	RuleTypeEquals  RuleType = "EQUALS"
	RuleTypeBetween RuleType = "BETWEEN"

	// Transitions between the previous and the current bar.
	RuleTypeCrossAbove RuleType = "CROSS_ABOVE"
	RuleTypeCrossBelow RuleType = "CROSS_BELOW"

	// Logical combinators.
	RuleTypeAnd RuleType = "AND"
	RuleTypeOr  RuleType = "OR"
	RuleTypeNot RuleType = "NOT"

	// Windowed combinators over one child.
	RuleTypeConsecutive RuleType = "CONSECUTIVE"
	RuleTypeAnyOf       RuleType = "ANY_OF"
)

// Rule is a node of a condition tree. Trees are built bottom-up once and are
// never mutated afterwards.
//
// Comparison and cross rules use Left and Right. BETWEEN tests
// Right <= Left <= Upper. AND/OR use Children; NOT, CONSECUTIVE and ANY_OF use
// Children[0]. Window is the bar count of the windowed rules.
type Rule struct {
	Type     RuleType
	Left     Operand
	Right    Operand
	Upper    Operand
	Children []*Rule
	Window   int
}

func Above(left, right Operand) *Rule {
	return &Rule{Type: RuleTypeAbove, Left: left, Right: right}
}

func Below(left, right Operand) *Rule {
	return &Rule{Type: RuleTypeBelow, Left: left, Right: right}
}

func Equals(left, right Operand) *Rule {
	return &Rule{Type: RuleTypeEquals, Left: left, Right: right}
}

// Between is true when low <= value <= high.
func Between(value, low, high Operand) *Rule {
	return &Rule{Type: RuleTypeBetween, Left: value, Right: low, Upper: high}
}

func CrossAbove(left, right Operand) *Rule {
	return &Rule{Type: RuleTypeCrossAbove, Left: left, Right: right}
}

func CrossBelow(left, right Operand) *Rule {
	return &Rule{Type: RuleTypeCrossBelow, Left: left, Right: right}
}

func And(children ...*Rule) *Rule {
	return &Rule{Type: RuleTypeAnd, Children: children}
}

func Or(children ...*Rule) *Rule {
	return &Rule{Type: RuleTypeOr, Children: children}
}

func Not(child *Rule) *Rule {
	return &Rule{Type: RuleTypeNot, Children: []*Rule{child}}
}

// Consecutive is true when child held on each of the last n bars.
func Consecutive(child *Rule, n int) *Rule {
	return &Rule{Type: RuleTypeConsecutive, Children: []*Rule{child}, Window: n}
}

// AnyOf is true when child held on at least one of the last n bars.
func AnyOf(child *Rule, n int) *Rule {
	return &Rule{Type: RuleTypeAnyOf, Children: []*Rule{child}, Window: n}
}

// Child returns the single child of a unary rule, or nil.
func (r *Rule) Child() *Rule {
	if r == nil || len(r.Children) == 0 {
		return nil
	}

	return r.Children[0]
}

// Walk visits the rule and all of its descendants depth-first.
func (r *Rule) Walk(visit func(*Rule)) {
	if r == nil {
		return
	}

	visit(r)

	for _, child := range r.Children {
		child.Walk(visit)
	}
}

// Operands returns every operand referenced by the tree, in visiting order.
func (r *Rule) Operands() []Operand {
	var operands []Operand

	r.Walk(func(node *Rule) {
		switch node.Type {
		case RuleTypeAbove, RuleTypeBelow, RuleTypeEquals, RuleTypeCrossAbove, RuleTypeCrossBelow:
			operands = append(operands, node.Left, node.Right)
		case RuleTypeBetween:
			operands = append(operands, node.Left, node.Right, node.Upper)
		}
	})

	return operands
}
