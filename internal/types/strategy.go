package types

// Strategy is a rule-based trading strategy. EntryLong and ExitLong are
// required; the short rules are optional. A StopLossPct or TakeProfitPct of 0
// disables that trigger.
type Strategy struct {
	Name          string
	Description   string
	EntryLong     *Rule
	ExitLong      *Rule
	EntryShort    *Rule
	ExitShort     *Rule
	PositionSize  float64
	StopLossPct   float64
	TakeProfitPct float64
	MaxPositions  int
}

// Rules returns the non-nil rule trees of the strategy.
func (s Strategy) Rules() []*Rule {
	rules := make([]*Rule, 0, 4)

	for _, r := range []*Rule{s.EntryLong, s.ExitLong, s.EntryShort, s.ExitShort} {
		if r != nil {
			rules = append(rules, r)
		}
	}

	return rules
}

// CanShort reports whether the strategy defines a short entry.
func (s Strategy) CanShort() bool {
	return s.EntryShort != nil
}
