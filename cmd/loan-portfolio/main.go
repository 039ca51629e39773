package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/vcarrera/loan-portfolio/internal/cache"
	"github.com/vcarrera/loan-portfolio/internal/config"
	"github.com/vcarrera/loan-portfolio/internal/server"
	"github.com/vcarrera/loan-portfolio/internal/simulation"
	"github.com/vcarrera/loan-portfolio/pkg/constants"
	"github.com/vcarrera/loan-portfolio/pkg/output"
	"github.com/vcarrera/loan-portfolio/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, files")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	workers := flag.Int("workers", 0, "worker pool size override (0 = number of CPUs)")
	serve := flag.Bool("serve", false, "run the simulation HTTP API instead of a one-shot simulation")
	address := flag.String("address", "", "HTTP listen address override when serving")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *serve {
		// Determine listen address (CLI override takes precedence over config)
		listenAddress := conf.Server.Address
		if *address != "" {
			listenAddress = *address
		}
		if listenAddress == "" {
			listenAddress = constants.DefaultServerAddress
		}

		var results cache.Cache
		if conf.Cache.RedisAddress != "" {
			results = cache.NewRedis(conf.Cache.RedisAddress, time.Duration(conf.Cache.TTLMinutes)*time.Minute)
			logger.Info("caching simulation responses in redis",
				zap.String("op", "main"),
				zap.String("address", conf.Cache.RedisAddress),
			)
		} else {
			results = cache.NewMemory()
		}
		logger.Info("starting simulation API",
			zap.String("op", "main"),
			zap.String("address", listenAddress),
		)
		err = http.ListenAndServe(listenAddress, server.NewHandler(logger, conf.Server.MaxUploadBytes, version, results))
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Convert the portfolio, derive the minimum payments, and generate the
	// month axis and strategy space.
	portfolio, err := conf.SimulationLoans()
	if err != nil {
		logger.Fatal("failed to process loan portfolio",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	months, err := conf.MonthAxis()
	if err != nil {
		logger.Fatal("failed to generate month axis",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	strategies, err := conf.Strategies()
	if err != nil {
		logger.Fatal("failed to generate strategies",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Run the simulation to get the merged payment ledger.
	run := simulation.NewRun(logger, portfolio, months, strategies)
	run.FudgeFactor = conf.Simulation.FudgeFactor
	run.Workers = conf.Simulation.Workers
	if *workers > 0 {
		run.Workers = *workers
	}
	payments, err := run.Execute()
	if err != nil {
		logger.Fatal("failed to simulate strategies",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyPortfolio(portfolio)
		output.PrettyFormat(output.Summarize(payments, strategies))
	case constants.OutputFormatCSV:
		output.CsvFormat(payments)
	case constants.OutputFormatFiles:
		dir := conf.Output.Directory
		if dir == "" {
			dir = "."
		}
		if err := output.WriteFiles(dir, payments, portfolio, strategies, months); err != nil {
			logger.Fatal("failed to write output files",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}
