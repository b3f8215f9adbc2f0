package pipeline

import (
	"errors"
	"fmt"
)

const (
	// DefaultKPeriod is the default stochastic %K lookback period.
	DefaultKPeriod = 14
	// DefaultDPeriod is the default stochastic %D smoothing period.
	DefaultDPeriod = 3
	// DefaultEMAPeriod is the default trend ema period.
	DefaultEMAPeriod = 200
	// DefaultMACDFastPeriod is the default macd fast ema period.
	DefaultMACDFastPeriod = 12
	// DefaultMACDSlowPeriod is the default macd slow ema period.
	DefaultMACDSlowPeriod = 26
	// DefaultMACDSignalPeriod is the default macd signal ema period.
	DefaultMACDSignalPeriod = 9
)

// Config represents the strategy configuration.
type Config struct {
	// KPeriod is the lookback window for the stochastic %K.
	KPeriod int
	// DPeriod is the smoothing window for the stochastic %D.
	DPeriod int
	// EMAPeriod is the period of the long trend ema.
	EMAPeriod int
	// UseMACDFilter gates entries on macd and signal line agreement.
	UseMACDFilter bool
	// MACDFastPeriod is the macd fast ema period.
	MACDFastPeriod int
	// MACDSlowPeriod is the macd slow ema period.
	MACDSlowPeriod int
	// MACDSignalPeriod is the macd signal ema period.
	MACDSignalPeriod int
}

// DefaultConfig returns the conventional strategy configuration.
func DefaultConfig() *Config {
	return &Config{
		KPeriod:          DefaultKPeriod,
		DPeriod:          DefaultDPeriod,
		EMAPeriod:        DefaultEMAPeriod,
		UseMACDFilter:    false,
		MACDFastPeriod:   DefaultMACDFastPeriod,
		MACDSlowPeriod:   DefaultMACDSlowPeriod,
		MACDSignalPeriod: DefaultMACDSignalPeriod,
	}
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if cfg.KPeriod <= 0 {
		errs = errors.Join(errs, fmt.Errorf("%%k period must be positive, got %d", cfg.KPeriod))
	}
	if cfg.DPeriod <= 0 {
		errs = errors.Join(errs, fmt.Errorf("%%d period must be positive, got %d", cfg.DPeriod))
	}
	if cfg.EMAPeriod <= 0 {
		errs = errors.Join(errs, fmt.Errorf("trend ema period must be positive, got %d", cfg.EMAPeriod))
	}
	if cfg.MACDFastPeriod <= 0 {
		errs = errors.Join(errs, fmt.Errorf("macd fast period must be positive, got %d", cfg.MACDFastPeriod))
	}
	if cfg.MACDSlowPeriod <= 0 {
		errs = errors.Join(errs, fmt.Errorf("macd slow period must be positive, got %d", cfg.MACDSlowPeriod))
	}
	if cfg.MACDSignalPeriod <= 0 {
		errs = errors.Join(errs, fmt.Errorf("macd signal period must be positive, got %d", cfg.MACDSignalPeriod))
	}
	if cfg.UseMACDFilter && cfg.MACDFastPeriod >= cfg.MACDSlowPeriod {
		errs = errors.Join(errs, fmt.Errorf("macd fast period (%d) must be shorter than the slow period (%d)",
			cfg.MACDFastPeriod, cfg.MACDSlowPeriod))
	}

	return errs
}
