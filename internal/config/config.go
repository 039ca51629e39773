// Package config defines the data structures related to configuration and
// includes functions for loading the config and converting it into the
// simulation's domain types.
package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/vcarrera/loan-portfolio/internal/simulation"
	"github.com/vcarrera/loan-portfolio/internal/strategy"
	"github.com/vcarrera/loan-portfolio/pkg/constants"
	"github.com/vcarrera/loan-portfolio/pkg/datetime"
	"github.com/vcarrera/loan-portfolio/pkg/loans"
	"github.com/vcarrera/loan-portfolio/pkg/validation"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for loan-portfolio.
type Configuration struct {
	Portfolio     Portfolio        `yaml:"portfolio"`
	StrategySpace StrategySpace    `yaml:"strategySpace"`
	Simulation    SimulationConfig `yaml:"simulation,omitempty"`
	Logging       LoggingConfig    `yaml:"logging,omitempty"`
	Output        OutputConfig     `yaml:"output,omitempty"`
	Server        ServerConfig     `yaml:"server,omitempty"`
	Cache         CacheConfig      `yaml:"cache,omitempty"`
}

// Portfolio holds the fixed set of loans being simulated.
type Portfolio struct {
	Loans []Loan `yaml:"loans"`
}

// Loan indicates a loan and its parameters. Rate is an annual fraction,
// e.g. 0.06 for 6% APR.
type Loan struct {
	Name      string  `yaml:"name"`
	Principal float64 `yaml:"principal"`
	Rate      float64 `yaml:"rate"`
	Term      int     `yaml:"term"` // months
	SortGroup int     `yaml:"sortGroup,omitempty"`
}

// StrategySpace describes the strategy cross product to generate.
type StrategySpace struct {
	SortOrders   []string  `yaml:"sortOrders,omitempty"`
	ExtraAmounts []float64 `yaml:"extraAmounts,omitempty"`
	MonthsDelays []int     `yaml:"monthsDelays,omitempty"`
	CalcMethods  []string  `yaml:"calcMethods,omitempty"`
	GroupUsages  []string  `yaml:"groupUsages,omitempty"`
	IncludeBase  bool      `yaml:"includeBase,omitempty"`
}

// SimulationConfig holds the time axis and engine tuning parameters.
type SimulationConfig struct {
	StartDate   string  `yaml:"startDate,omitempty"` // YYYY-MM
	Months      int     `yaml:"months,omitempty"`
	FudgeFactor float64 `yaml:"fudgeFactor,omitempty"`
	Workers     int     `yaml:"workers,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format    string `yaml:"format,omitempty"`    // pretty, csv, files
	Directory string `yaml:"directory,omitempty"` // target for the files format
}

// ServerConfig holds the HTTP API settings used with -serve.
type ServerConfig struct {
	Address        string `yaml:"address,omitempty"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes,omitempty"`
}

// CacheConfig holds the optional server-side result cache settings.
type CacheConfig struct {
	RedisAddress string `yaml:"redisAddress,omitempty"`
	TTLMinutes   int    `yaml:"ttlMinutes,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// SimulationLoans converts the configured portfolio into simulation loans,
// assigning sequential 1-based LoanIDs and deriving each minimum payment.
// Loan invariant violations are fatal configuration errors.
func (conf *Configuration) SimulationLoans() ([]simulation.Loan, error) {
	result := make([]simulation.Loan, 0, len(conf.Portfolio.Loans))
	for i, loan := range conf.Portfolio.Loans {
		if err := validation.ValidateLoan(loan.Name, loan.Principal, loan.Rate, loan.Term); err != nil {
			return nil, err
		}
		minPayment, err := loans.MinimumPayment(loan.Principal, loan.Rate, loan.Term)
		if err != nil {
			return nil, fmt.Errorf("loan %q: %w", loan.Name, err)
		}
		result = append(result, simulation.Loan{
			LoanID:     i + 1,
			Name:       loan.Name,
			Principal:  loan.Principal,
			Rate:       loan.Rate,
			TermMonths: loan.Term,
			SortGroup:  loan.SortGroup,
			MinPayment: minPayment,
		})
	}
	return result, nil
}

// MonthAxis generates the sequential month axis starting from
// simulation.startDate. The calendar date is only an axis label, so an unset
// start date falls back to a fixed anchor to keep repeated runs reproducible.
func (conf *Configuration) MonthAxis() ([]simulation.Month, error) {
	startDate := conf.Simulation.StartDate
	if startDate == "" {
		startDate = "2019-06"
	}
	start, err := datetime.ParseMonth(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid simulation start date %q: %w", startDate, err)
	}

	count := conf.Simulation.Months
	if count <= 0 {
		count = constants.DefaultMonths
	}

	months := make([]simulation.Month, count)
	for i := 0; i < count; i++ {
		months[i] = simulation.Month{
			MonthID: i + 1,
			Date:    start.AddDate(0, i, 0),
		}
	}
	return months, nil
}

// Strategies generates the strategy collection from the configured space.
// Unrecognized enum strings are fatal configuration errors.
func (conf *Configuration) Strategies() ([]simulation.Strategy, error) {
	space := strategy.Space{
		ExtraAmounts: conf.StrategySpace.ExtraAmounts,
		MonthsDelays: conf.StrategySpace.MonthsDelays,
		IncludeBase:  conf.StrategySpace.IncludeBase,
	}

	for _, raw := range conf.StrategySpace.SortOrders {
		sortOrder, err := parseSortOrder(raw)
		if err != nil {
			return nil, err
		}
		space.SortOrders = append(space.SortOrders, sortOrder)
	}
	for _, raw := range conf.StrategySpace.CalcMethods {
		method, err := parseCalcMethod(raw)
		if err != nil {
			return nil, err
		}
		space.CalcMethods = append(space.CalcMethods, method)
	}
	for _, raw := range conf.StrategySpace.GroupUsages {
		usage, err := parseGroupUsage(raw)
		if err != nil {
			return nil, err
		}
		space.GroupUsages = append(space.GroupUsages, usage)
	}

	return strategy.Generate(space), nil
}

func parseSortOrder(raw string) (simulation.SortOrder, error) {
	switch simulation.SortOrder(raw) {
	case simulation.HighestRateFirst, simulation.LowestBalanceFirst, simulation.SortOrderNotApplicable:
		return simulation.SortOrder(raw), nil
	default:
		return "", fmt.Errorf("unrecognized sort order %q", raw)
	}
}

func parseCalcMethod(raw string) (simulation.CalcMethod, error) {
	switch simulation.CalcMethod(raw) {
	case simulation.CalcConstant, simulation.CalcMinPaymentPlusExtra, simulation.CalcNotApplicable:
		return simulation.CalcMethod(raw), nil
	default:
		return "", fmt.Errorf("unrecognized calc method %q", raw)
	}
}

func parseGroupUsage(raw string) (simulation.GroupUsage, error) {
	switch simulation.GroupUsage(raw) {
	case simulation.UseGroups, simulation.DoNotUseGroups, simulation.GroupsNotApplicable:
		return simulation.GroupUsage(raw), nil
	default:
		return "", fmt.Errorf("unrecognized group usage %q", raw)
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Fatal problems surface later through SimulationLoans and
// Strategies; warnings here flag configurations that run but probably do not
// mean what the user intended.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Portfolio.Loans) == 0 {
		warnings = append(warnings, "portfolio has no loans; the simulation will produce no payments")
	}

	months := conf.Simulation.Months
	if months <= 0 {
		months = constants.DefaultMonths
	}
	maxTerm := 0
	for _, loan := range conf.Portfolio.Loans {
		if loan.Term > maxTerm {
			maxTerm = loan.Term
		}
	}
	warnings = append(warnings, validation.ValidateMonthAxis(months, maxTerm)...)

	for _, extra := range conf.StrategySpace.ExtraAmounts {
		if extra < 0 {
			warnings = append(warnings, fmt.Sprintf("negative extra amount %.2f will never allocate extra principal", extra))
		}
	}

	return warnings
}
