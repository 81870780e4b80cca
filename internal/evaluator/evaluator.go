// Package evaluator interprets strategy rule trees against a bar series and
// its indicator table.
//
// Evaluation is pure. Anything that cannot be resolved (a missing series, a
// warmup value, an index outside the bars) makes the enclosing comparison
// false rather than failing.
package evaluator

import (
	"math"

	"github.com/rxtech-lab/argo-kernel/internal/indicator"
	"github.com/rxtech-lab/argo-kernel/internal/types"
)

// EqualsTolerance is the absolute tolerance of EQUALS.
const EqualsTolerance = 1e-9

// Evaluate reports whether rule holds at bar index.
func Evaluate(rule *types.Rule, bars []types.Bar, table *indicator.Table, index int) bool {
	if rule == nil || index < 0 || index >= len(bars) {
		return false
	}

	switch rule.Type {
	case types.RuleTypeAbove:
		l, r, ok := resolvePair(rule.Left, rule.Right, bars, table, index)

		return ok && l > r
	case types.RuleTypeBelow:
		l, r, ok := resolvePair(rule.Left, rule.Right, bars, table, index)

		return ok && l < r
	case types.RuleTypeEquals:
		l, r, ok := resolvePair(rule.Left, rule.Right, bars, table, index)

		return ok && math.Abs(l-r) <= EqualsTolerance
	case types.RuleTypeBetween:
		return between(rule, bars, table, index)
	case types.RuleTypeCrossAbove:
		return cross(rule, bars, table, index, func(l, r float64) bool { return l > r })
	case types.RuleTypeCrossBelow:
		return cross(rule, bars, table, index, func(l, r float64) bool { return l < r })
	case types.RuleTypeAnd:
		for _, child := range rule.Children {
			if !Evaluate(child, bars, table, index) {
				return false
			}
		}

		return true
	case types.RuleTypeOr:
		for _, child := range rule.Children {
			if Evaluate(child, bars, table, index) {
				return true
			}
		}

		return false
	case types.RuleTypeNot:
		child := rule.Child()
		if child == nil {
			return false
		}

		return !Evaluate(child, bars, table, index)
	case types.RuleTypeConsecutive:
		return consecutive(rule, bars, table, index)
	case types.RuleTypeAnyOf:
		return anyOf(rule, bars, table, index)
	default:
		return false
	}
}

func between(rule *types.Rule, bars []types.Bar, table *indicator.Table, index int) bool {
	value, low, ok := resolvePair(rule.Left, rule.Right, bars, table, index)
	if !ok {
		return false
	}

	high, ok := Resolve(rule.Upper, bars, table, index)
	if !ok {
		return false
	}

	return low <= value && value <= high
}

// cross is true when side held at index but not at index-1.
func cross(rule *types.Rule, bars []types.Bar, table *indicator.Table, index int, side func(l, r float64) bool) bool {
	if index == 0 {
		return false
	}

	prevL, prevR, ok := resolvePair(rule.Left, rule.Right, bars, table, index-1)
	if !ok {
		return false
	}

	currL, currR, ok := resolvePair(rule.Left, rule.Right, bars, table, index)
	if !ok {
		return false
	}

	return !side(prevL, prevR) && side(currL, currR)
}

// consecutive needs the whole window of bars to exist.
func consecutive(rule *types.Rule, bars []types.Bar, table *indicator.Table, index int) bool {
	child := rule.Child()
	if child == nil || rule.Window <= 0 || index-rule.Window+1 < 0 {
		return false
	}

	for i := index - rule.Window + 1; i <= index; i++ {
		if !Evaluate(child, bars, table, i) {
			return false
		}
	}

	return true
}

// anyOf clips its window at the first bar.
func anyOf(rule *types.Rule, bars []types.Bar, table *indicator.Table, index int) bool {
	child := rule.Child()
	if child == nil || rule.Window <= 0 {
		return false
	}

	for i := max(0, index-rule.Window+1); i <= index; i++ {
		if Evaluate(child, bars, table, i) {
			return true
		}
	}

	return false
}
