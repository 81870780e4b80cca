package indicator

import (
	"sync"

	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
)

// IndicatorRegistry manages all available indicators.
type IndicatorRegistry interface {
	RegisterIndicator(indicator Indicator) error
	GetIndicator(name types.IndicatorType) (Indicator, error)
	ListIndicators() []types.IndicatorType
	RemoveIndicator(name types.IndicatorType) error
	// Compute dispatches to the registered calculator. It returns nil for an
	// unsupported type or invalid input.
	Compute(a *arena.Arena, bars []types.Bar, key Key) *types.IndicatorSeries
}

// IndicatorRegistryV1 manages all available indicators.
type IndicatorRegistryV1 struct {
	indicators map[types.IndicatorType]Indicator
	mu         sync.RWMutex
}

// NewIndicatorRegistry creates a new, empty indicator registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		indicators: make(map[types.IndicatorType]Indicator),
		mu:         sync.RWMutex{},
	}
}

// NewDefaultRegistry creates a registry holding every built-in indicator.
func NewDefaultRegistry() IndicatorRegistry {
	registry := NewIndicatorRegistry()

	for _, indicator := range []Indicator{
		NewSMA(),
		NewEMA(),
		NewWMA(),
		NewRSI(),
		NewBollingerBands(),
		NewATR(),
		NewPivot(),
		NewMACD(),
		NewStochastic(),
	} {
		// names are distinct, registration cannot fail
		_ = registry.RegisterIndicator(indicator)
	}

	return registry
}

// RegisterIndicator adds an indicator to the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := indicator.Name()
	if _, exists := r.indicators[name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "indicator with name %s already registered", name)
	}

	r.indicators[name] = indicator

	return nil
}

// GetIndicator retrieves an indicator by name.
func (r *IndicatorRegistryV1) GetIndicator(name types.IndicatorType) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indicator, exists := r.indicators[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator with name %s not found", name)
	}

	return indicator, nil
}

// ListIndicators returns a list of all registered indicator names.
func (r *IndicatorRegistryV1) ListIndicators() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.IndicatorType, 0, len(r.indicators))
	for name := range r.indicators {
		names = append(names, name)
	}

	return names
}

// RemoveIndicator removes an indicator from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(name types.IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[name]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator with name %s not found", name)
	}

	delete(r.indicators, name)

	return nil
}

// Compute implements IndicatorRegistry.
func (r *IndicatorRegistryV1) Compute(a *arena.Arena, bars []types.Bar, key Key) *types.IndicatorSeries {
	if a == nil || len(bars) == 0 {
		return nil
	}

	indicator, err := r.GetIndicator(key.Type)
	if err != nil {
		return nil
	}

	if err := indicator.Validate(key); err != nil {
		return nil
	}

	return &types.IndicatorSeries{
		Type:   key.Type,
		Period: key.Period,
		Param2: key.Param2,
		Param3: key.Param3,
		Values: indicator.Compute(a, bars, key),
	}
}

var defaultRegistry = NewDefaultRegistry()

// Compute computes one series with the built-in indicators. Unused extra
// parameters are ignored and zero extras take the type's defaults. It returns
// nil when the arena or bars are nil or empty, when the period is not
// positive (PIVOT takes none) or when the type is not supported.
func Compute(a *arena.Arena, bars []types.Bar, indicatorType types.IndicatorType, period, param2, param3 int) *types.IndicatorSeries {
	return defaultRegistry.Compute(a, bars, NewKey(indicatorType, period, param2, param3))
}

func validatePeriod(name types.IndicatorType, period int) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s period must be a positive integer, got %d", name, period)
	}

	return nil
}
