package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nsmanju/stochastic-trading-strategy/pipeline"
	"github.com/nsmanju/stochastic-trading-strategy/shared"
)

// Config is the configuration struct for the service.
type Config struct {
	// Market represents the analyzed market.
	Market string
	// Timeframe is the analyzed timeframe (1D, 1H or 5m).
	Timeframe string
	// DataFilePath is the filepath to file backed candle data (csv or json).
	DataFilePath string
	// FMPAPIkey is the FMP service API Key.
	FMPAPIKey string
	// StoreEndpoint is the candle store connection endpoint.
	StoreEndpoint string
	// StoreUser is the candle store user.
	StoreUser string
	// StorePass is the candle store password.
	StorePass string
	// Start is the start date of the analyzed range (YYYY-MM-DD).
	Start string
	// End is the end date of the analyzed range (YYYY-MM-DD).
	End string
	// KPeriod is the stochastic %k lookback period.
	KPeriod int
	// DPeriod is the stochastic %d smoothing period.
	DPeriod int
	// EMAPeriod is the trend ema period.
	EMAPeriod int
	// MACDFilter is the macd confirmation filter flag.
	MACDFilter bool
	// MACDFastPeriod is the macd fast ema period.
	MACDFastPeriod int
	// MACDSlowPeriod is the macd slow ema period.
	MACDSlowPeriod int
	// MACDSignalPeriod is the macd signal ema period.
	MACDSignalPeriod int
	// OutputDir is the directory run outputs are written to.
	OutputDir string
	// Charts is the chart rendering flag.
	Charts bool
	// XLSX is the xlsx workbook export flag.
	XLSX bool
	// RefreshAt is the daily new york wall clock time runs repeat at.
	RefreshAt string

	registeredFlags map[string]bool
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if cfg.Market == "" {
		errs = errors.Join(errs, fmt.Errorf("no market provided for the strategy run"))
	}
	if cfg.DataFilePath == "" && cfg.FMPAPIKey == "" && cfg.StoreEndpoint == "" {
		errs = errors.Join(errs, fmt.Errorf("no candle source provided, set a data filepath, "+
			"an fmp api key or a store endpoint"))
	}
	_, err := shared.ParseTimeframe(cfg.Timeframe)
	if err != nil {
		errs = errors.Join(errs, err)
	}
	if cfg.Start != "" {
		_, err := time.Parse(shared.DateLayout, cfg.Start)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("parsing start date: %v", err))
		}
	}
	if cfg.End != "" {
		_, err := time.Parse(shared.DateLayout, cfg.End)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("parsing end date: %v", err))
		}
	}

	return errs
}

// applyDefaults fills unset configuration fields with their strategy defaults.
func (cfg *Config) applyDefaults() {
	if cfg.Timeframe == "" {
		cfg.Timeframe = shared.OneDay.String()
	}
	if cfg.KPeriod == 0 {
		cfg.KPeriod = pipeline.DefaultKPeriod
	}
	if cfg.DPeriod == 0 {
		cfg.DPeriod = pipeline.DefaultDPeriod
	}
	if cfg.EMAPeriod == 0 {
		cfg.EMAPeriod = pipeline.DefaultEMAPeriod
	}
	if cfg.MACDFastPeriod == 0 {
		cfg.MACDFastPeriod = pipeline.DefaultMACDFastPeriod
	}
	if cfg.MACDSlowPeriod == 0 {
		cfg.MACDSlowPeriod = pipeline.DefaultMACDSlowPeriod
	}
	if cfg.MACDSignalPeriod == 0 {
		cfg.MACDSignalPeriod = pipeline.DefaultMACDSignalPeriod
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
func (cfg *Config) registerFlag(name string, value interface{}, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	case reflect.Slice:
		// Only handle []string
		if val.Elem().Type().Elem().Kind() == reflect.String {
			var def []string
			if defValue != "" {
				def = strings.Split(defValue, ",")
			}
			flag.Func(name, usage, func(s string) error {
				*value.(*[]string) = strings.Split(s, ",")
				return nil
			})
			// Set default if not provided via flag
			if len(def) > 0 {
				*value.(*[]string) = def
			}
		} else {
			return fmt.Errorf("%s: unsupported slice type", name)
		}
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	// Register command line arguments using loaded environment variables as defaults.
	flags := []struct {
		name  string
		value interface{}
		usage string
	}{
		{"market", &cfg.Market, "the analyzed market"},
		{"timeframe", &cfg.Timeframe, "the analyzed timeframe (1D, 1H or 5m)"},
		{"datafilepath", &cfg.DataFilePath, "the filepath to file backed candle data (csv or json)"},
		{"fmpapikey", &cfg.FMPAPIKey, "the FMP api key"},
		{"storeendpoint", &cfg.StoreEndpoint, "the candle store endpoint"},
		{"storeuser", &cfg.StoreUser, "the candle store user"},
		{"storepass", &cfg.StorePass, "the candle store password"},
		{"start", &cfg.Start, "the start date of the analyzed range (YYYY-MM-DD)"},
		{"end", &cfg.End, "the end date of the analyzed range (YYYY-MM-DD)"},
		{"kperiod", &cfg.KPeriod, "the stochastic %k lookback period"},
		{"dperiod", &cfg.DPeriod, "the stochastic %d smoothing period"},
		{"emaperiod", &cfg.EMAPeriod, "the trend ema period"},
		{"macdfilter", &cfg.MACDFilter, "the macd confirmation filter flag"},
		{"macdfastperiod", &cfg.MACDFastPeriod, "the macd fast ema period"},
		{"macdslowperiod", &cfg.MACDSlowPeriod, "the macd slow ema period"},
		{"macdsignalperiod", &cfg.MACDSignalPeriod, "the macd signal ema period"},
		{"outputdir", &cfg.OutputDir, "the run output directory"},
		{"charts", &cfg.Charts, "the chart rendering flag"},
		{"xlsx", &cfg.XLSX, "the xlsx workbook export flag"},
		{"refreshat", &cfg.RefreshAt, "the daily refresh time (HH:MM, new york time)"},
	}
	for idx := range flags {
		err = cfg.registerFlag(flags[idx].name, flags[idx].value, flags[idx].usage)
		if err != nil {
			return err
		}
	}

	// Parse command-line flags.
	flag.Parse()

	cfg.applyDefaults()

	return cfg.Validate()
}
