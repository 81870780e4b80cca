package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kernel/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPeriodsPerYear = 252
	DefaultArenaChunkSize = 4096
)

type BacktestEngineV1Config struct {
	InitialCapital float64                    `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,description=Starting capital for the backtest,minimum=0" validate:"gt=0"`
	Broker         commission_fee.Broker      `yaml:"broker" json:"broker" jsonschema:"title=Broker,description=The broker to use for commission calculations" validate:"omitempty,oneof=flat_percent interactive_broker zero_commission"`
	CommissionFlat float64                    `yaml:"commission_flat" json:"commission_flat" jsonschema:"title=Flat Commission,description=Fixed commission per fill for the flat_percent broker,minimum=0" validate:"gte=0"`
	CommissionPct  float64                    `yaml:"commission_pct" json:"commission_pct" jsonschema:"title=Percent Commission,description=Commission in percent of the fill notional for the flat_percent broker,minimum=0" validate:"gte=0"`
	SlippagePct    float64                    `yaml:"slippage_pct" json:"slippage_pct" jsonschema:"title=Slippage,description=Adverse price move in percent applied to every fill,minimum=0" validate:"gte=0,lt=100"`
	AllowShort     bool                       `yaml:"allow_short" json:"allow_short" jsonschema:"title=Allow Short,description=Whether strategies with a short entry rule may open short positions"`
	RiskFreeRate   float64                    `yaml:"risk_free_rate" json:"risk_free_rate" jsonschema:"title=Risk Free Rate,description=Annual risk free rate used by the Sharpe and Sortino ratios"`
	PeriodsPerYear int                        `yaml:"periods_per_year" json:"periods_per_year" jsonschema:"title=Periods Per Year,description=Number of bars per year used to annualize ratios,default=252" validate:"gte=0"`
	ArenaChunkSize int                        `yaml:"arena_chunk_size" json:"arena_chunk_size" jsonschema:"title=Arena Chunk Size,description=Number of values per allocation chunk for indicator series" validate:"gte=0"`
	Interval       string                     `yaml:"interval" json:"interval" jsonschema:"title=Interval,description=Optional bar width to resample the data to,enum=1m,enum=5m,enum=15m,enum=30m,enum=1h,enum=4h,enum=1d,enum=1w" validate:"omitempty,oneof=1m 5m 15m 30m 1h 4h 1d 1w"`
	LogLevel       string                     `yaml:"log_level" json:"log_level" jsonschema:"title=Log Level,description=Minimum log level,enum=debug,enum=info,enum=warn,enum=error" validate:"omitempty,oneof=debug info warn error"`
	StartTime      optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time for the backtest period"`
	EndTime        optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time for the backtest period"`
}

// UnmarshalYAML implements custom unmarshaling for BacktestEngineV1Config.
func (c *BacktestEngineV1Config) UnmarshalYAML(value *yaml.Node) error {
	type Config struct {
		InitialCapital float64               `yaml:"initial_capital"`
		Broker         commission_fee.Broker `yaml:"broker"`
		CommissionFlat float64               `yaml:"commission_flat"`
		CommissionPct  float64               `yaml:"commission_pct"`
		SlippagePct    float64               `yaml:"slippage_pct"`
		AllowShort     bool                  `yaml:"allow_short"`
		RiskFreeRate   float64               `yaml:"risk_free_rate"`
		PeriodsPerYear int                   `yaml:"periods_per_year"`
		ArenaChunkSize int                   `yaml:"arena_chunk_size"`
		Interval       string                `yaml:"interval"`
		LogLevel       string                `yaml:"log_level"`
		StartTime      *time.Time            `yaml:"start_time"`
		EndTime        *time.Time            `yaml:"end_time"`
	}

	var config Config
	if err := value.Decode(&config); err != nil {
		return err
	}

	c.InitialCapital = config.InitialCapital
	c.Broker = config.Broker
	c.CommissionFlat = config.CommissionFlat
	c.CommissionPct = config.CommissionPct
	c.SlippagePct = config.SlippagePct
	c.AllowShort = config.AllowShort
	c.RiskFreeRate = config.RiskFreeRate
	c.PeriodsPerYear = config.PeriodsPerYear
	c.ArenaChunkSize = config.ArenaChunkSize
	c.Interval = config.Interval
	c.LogLevel = config.LogLevel
	c.StartTime = optional.None[time.Time]()
	c.EndTime = optional.None[time.Time]()

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// Validate checks field ranges and the time window.
func (c *BacktestEngineV1Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest configuration", err)
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "end_time is before start_time")
	}

	return nil
}

// CommissionFee returns the fee model selected by the configuration.
func (c *BacktestEngineV1Config) CommissionFee() commission_fee.CommissionFee {
	return commission_fee.GetCommissionFeeHandler(c.Broker, c.CommissionFlat, c.CommissionPct)
}

// GetPeriodsPerYear returns the annualization factor, defaulting to daily bars.
func (c *BacktestEngineV1Config) GetPeriodsPerYear() int {
	if c.PeriodsPerYear <= 0 {
		return DefaultPeriodsPerYear
	}

	return c.PeriodsPerYear
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config.
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if strings.Contains(t.String(), "commission_fee.Broker") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: commission_fee.AllBrokers,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config.
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// TestConfig returns a zero-cost configuration over the given window.
func TestConfig(startTime time.Time, endTime time.Time, broker commission_fee.Broker) BacktestEngineV1Config {
	config := EmptyConfig()
	config.InitialCapital = 10000
	config.Broker = broker
	config.StartTime = optional.Some(startTime)
	config.EndTime = optional.Some(endTime)

	return config
}

// EmptyConfig returns a BacktestEngineV1Config with default values.
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		InitialCapital: 0,
		Broker:         commission_fee.BrokerFlatPercent,
		CommissionFlat: 0,
		CommissionPct:  0,
		SlippagePct:    0,
		AllowShort:     false,
		RiskFreeRate:   0,
		PeriodsPerYear: DefaultPeriodsPerYear,
		ArenaChunkSize: DefaultArenaChunkSize,
		Interval:       "",
		LogLevel:       "info",
		StartTime:      optional.None[time.Time](),
		EndTime:        optional.None[time.Time](),
	}
}
