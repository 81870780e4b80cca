package indicator

import (
	"sort"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
)

// Table holds the indicator series of one run, keyed by Key.
type Table struct {
	series map[Key]*types.IndicatorSeries
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{series: make(map[Key]*types.IndicatorSeries)}
}

// Put stores a series under its own key, replacing any previous one.
func (t *Table) Put(series *types.IndicatorSeries) {
	if series == nil {
		return
	}

	t.series[SeriesKey(series)] = series
}

// Get returns the series for key, if present. A nil table holds nothing.
func (t *Table) Get(key Key) optional.Option[*types.IndicatorSeries] {
	if t == nil {
		return optional.None[*types.IndicatorSeries]()
	}

	series, ok := t.series[key]
	if !ok {
		return optional.None[*types.IndicatorSeries]()
	}

	return optional.Some(series)
}

// Len returns the number of series in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.series)
}

// Keys returns the canonical names of all series, sorted.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}

	keys := make([]string, 0, len(t.series))
	for key := range t.series {
		keys = append(keys, key.String())
	}

	sort.Strings(keys)

	return keys
}

// BuildTable computes every distinct series referenced by the rules, once.
func BuildTable(a *arena.Arena, bars []types.Bar, rules ...*types.Rule) (*Table, error) {
	return BuildTableWithRegistry(defaultRegistry, a, bars, rules...)
}

// BuildTableWithRegistry is BuildTable with a caller-supplied registry.
func BuildTableWithRegistry(registry IndicatorRegistry, a *arena.Arena, bars []types.Bar, rules ...*types.Rule) (*Table, error) {
	if a == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "arena is nil")
	}

	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyBars, "cannot compute indicators over an empty bar series")
	}

	table := NewTable()

	for _, rule := range rules {
		for _, operand := range rule.Operands() {
			if !operand.IsIndicator() {
				continue
			}

			key, err := OperandKey(&operand)
			if err != nil {
				return nil, err
			}

			if table.Get(key).IsSome() {
				continue
			}

			indicator, err := registry.GetIndicator(key.Type)
			if err != nil {
				return nil, err
			}

			if err := indicator.Validate(key); err != nil {
				return nil, errors.Wrapf(errors.GetCode(err), err, "invalid indicator %s", key)
			}

			table.Put(registry.Compute(a, bars, key))
		}
	}

	return table, nil
}
