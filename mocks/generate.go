package mocks

//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-kernel/internal/backtest/engine/engine_v1/datasource DataSource
//go:generate mockgen -destination=./mock_recorder.go -package=mocks github.com/rxtech-lab/argo-kernel/internal/backtest/engine/engine_v1 Recorder
//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/rxtech-lab/argo-kernel/internal/indicator Indicator
//go:generate mockgen -destination=./mock_indicator_registry.go -package=mocks github.com/rxtech-lab/argo-kernel/internal/indicator IndicatorRegistry
