// Package constants provides shared constants for the loan-portfolio application.
package constants

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// DefaultFudgeFactor is the balance tolerance below which a loan is paid
	// off in full after its standard payment rather than carrying the residual
	// to the next month. High relative to observed drift (a few cents) but
	// kept configurable via simulation.fudgeFactor.
	DefaultFudgeFactor = 10.0
)

// Simulation defaults
const (
	// DefaultMonths is the default length of the month axis.
	DefaultMonths = 360

	// BaseStrategyID is the id reserved for the no-extra-payment control
	// strategy.
	BaseStrategyID = 1
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatFiles writes the star-schema flat files (payments, loans,
	// strategies, months) to the configured output directory
	OutputFormatFiles = "files"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the
	// simulation API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML
	// configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
