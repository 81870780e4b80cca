package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPeriod        ErrorCode = 102
	ErrCodeInvalidOperand       ErrorCode = 103
	ErrCodeInvalidRule          ErrorCode = 104
	ErrCodeInvalidPositionSize  ErrorCode = 105
	ErrCodeInvalidVersion       ErrorCode = 106
	ErrCodeEmptyBars            ErrorCode = 107

	// Data errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeUnsupportedDataFormat ErrorCode = 203
	ErrCodeResultWriteFailed     ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Strategy errors (400-499)
	ErrCodeStrategyNotLoaded   ErrorCode = 400
	ErrCodeStrategyConfigError ErrorCode = 401
	ErrCodeVersionMismatch     ErrorCode = 402

	// Execution errors (500-599)
	ErrCodePositionExists   ErrorCode = 500
	ErrCodePositionNotFound ErrorCode = 501
	ErrCodeInvalidFillPrice ErrorCode = 502

	// Backtest errors (600-699)
	ErrCodeBacktestStateNil     ErrorCode = 600
	ErrCodeBacktestInitFailed   ErrorCode = 601
	ErrCodeBacktestConfigError  ErrorCode = 602
	ErrCodeBacktestNoStrategies ErrorCode = 603
	ErrCodeBacktestNoDatasource ErrorCode = 604
	ErrCodeBacktestNoDataPaths  ErrorCode = 605
	ErrCodeInvariantViolation   ErrorCode = 606
)
