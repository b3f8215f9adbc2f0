package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/nsmanju/stochastic-trading-strategy/chart"
	"github.com/nsmanju/stochastic-trading-strategy/fetch"
	"github.com/nsmanju/stochastic-trading-strategy/pipeline"
	"github.com/nsmanju/stochastic-trading-strategy/report"
	"github.com/nsmanju/stochastic-trading-strategy/shared"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/atomic"
)

const (
	// refreshTimeLayout is the wall clock layout of the scheduled refresh time.
	refreshTimeLayout = "15:04"
	// signalTailLimit is the maximum number of signal rows rendered to the
	// console after a run.
	signalTailLimit = 10
)

// StrategyConfig represents the configuration struct for the strategy service.
type StrategyConfig struct {
	// Market represents the analyzed market.
	Market string
	// Timeframe represents the analyzed timeframe.
	Timeframe shared.Timeframe
	// DataFilePath is the filepath to file backed market data.
	DataFilePath string
	// FMPAPIKey is the FMP service API Key.
	FMPAPIKey string
	// StoreEndpoint represents the candle store connection endpoint.
	StoreEndpoint string
	// StoreUser is the candle store user.
	StoreUser string
	// StorePass is the candle store user pass.
	StorePass string
	// Start is the start of the analyzed range.
	Start time.Time
	// End is the end of the analyzed range.
	End time.Time
	// Pipeline is the signal pipeline configuration.
	Pipeline *pipeline.Config
	// OutputDir is the directory run outputs are written to.
	OutputDir string
	// EnableCharts is the chart rendering flag.
	EnableCharts bool
	// EnableXLSX is the xlsx workbook export flag.
	EnableXLSX bool
	// RefreshAt is the daily wall clock time (new york) runs are repeated
	// at. An empty string runs the strategy once.
	RefreshAt string
	// Cancel is the context cancellation function.
	Cancel context.CancelFunc
}

// Validate asserts the config sane inputs.
func (cfg *StrategyConfig) Validate() error {
	var errs error

	if cfg.Market == "" {
		errs = errors.Join(errs, fmt.Errorf("no market provided for strategy service"))
	}
	if cfg.DataFilePath == "" && cfg.FMPAPIKey == "" && cfg.StoreEndpoint == "" {
		errs = errors.Join(errs, fmt.Errorf("no candle source provided for strategy service"))
	}
	if cfg.Pipeline == nil {
		errs = errors.Join(errs, fmt.Errorf("pipeline configuration cannot be nil"))
	} else {
		err := cfg.Pipeline.Validate()
		if err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if cfg.OutputDir == "" {
		errs = errors.Join(errs, fmt.Errorf("output directory cannot be an empty string"))
	}
	if cfg.Cancel == nil {
		errs = errors.Join(errs, fmt.Errorf("context cancellation function cannot be nil"))
	}
	if cfg.RefreshAt != "" {
		_, err := time.Parse(refreshTimeLayout, cfg.RefreshAt)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("parsing refresh time: %v", err))
		}
	}

	return errs
}

// Strategy represents a stochastic signal finding service.
type Strategy struct {
	cfg           *StrategyConfig
	source        shared.CandleSource
	chartRenderer *chart.Renderer
	jobScheduler  *gocron.Scheduler
	logger        *zerolog.Logger

	lastRunTime   atomic.Pointer[time.Time]
	completedRuns atomic.Uint32
}

// NewStrategy initializes a new strategy service.
func NewStrategy(cfg *StrategyConfig) (*Strategy, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating strategy config: %v", err)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger := log.With().Str("service", "strategy").Logger()

	err = os.MkdirAll(cfg.OutputDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("creating output directory: %v", err)
	}

	sourceLogger := logger.With().Str("component", "source").Logger()
	source, err := fetch.NewSource(&fetch.SourceConfig{
		Market:        cfg.Market,
		Timeframe:     cfg.Timeframe,
		DataFilePath:  cfg.DataFilePath,
		FMPAPIKey:     cfg.FMPAPIKey,
		StoreEndpoint: cfg.StoreEndpoint,
		StoreUser:     cfg.StoreUser,
		StorePass:     cfg.StorePass,
		Start:         cfg.Start,
		End:           cfg.End,
		Logger:        &sourceLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating candle source: %v", err)
	}

	chartLogger := logger.With().Str("component", "chart").Logger()
	chartRenderer := chart.NewRenderer(&chart.RendererConfig{
		Market:    cfg.Market,
		OutputDir: cfg.OutputDir,
		Logger:    &chartLogger,
	})

	service := &Strategy{
		cfg:           cfg,
		source:        source,
		chartRenderer: chartRenderer,
		logger:        &logger,
	}

	if cfg.RefreshAt != "" {
		_, loc, err := shared.NewYorkTime()
		if err != nil {
			return nil, fmt.Errorf("fetching new york time: %v", err)
		}

		service.jobScheduler = gocron.NewScheduler(loc)
	}

	return service, nil
}

// runOnce executes a complete strategy run, fetching candles, computing the
// enriched series and writing run outputs.
func (s *Strategy) runOnce(ctx context.Context) error {
	runID := uuid.New().String()
	logger := s.logger.With().Str("run", runID).Logger()

	logger.Debug().Msgf("running with pipeline config: %s", spew.Sdump(s.cfg.Pipeline))

	candles, err := s.source.FetchCandlesticks(ctx)
	if err != nil {
		return fmt.Errorf("fetching candlesticks: %v", err)
	}

	series, err := pipeline.Run(candles, s.cfg.Pipeline)
	if err != nil {
		return fmt.Errorf("running signal pipeline: %v", err)
	}

	summary, err := report.NewSummary(series)
	if err != nil {
		return fmt.Errorf("summarizing run: %v", err)
	}

	summary.RenderTable(os.Stdout)
	report.RenderSignals(os.Stdout, series, signalTailLimit)

	csvPath := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("series-%s.csv", runID))
	err = report.WriteCSV(series, csvPath)
	if err != nil {
		return fmt.Errorf("writing series csv: %v", err)
	}

	logger.Info().Msgf("wrote enriched series for %s: %s", s.cfg.Market, csvPath)

	if s.cfg.EnableXLSX {
		xlsxPath := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("series-%s.xlsx", runID))
		err = report.WriteXLSX(summary, series, xlsxPath)
		if err != nil {
			return fmt.Errorf("writing series workbook: %v", err)
		}

		logger.Info().Msgf("wrote run workbook for %s: %s", s.cfg.Market, xlsxPath)
	}

	if s.cfg.EnableCharts {
		_, err = s.chartRenderer.RenderAll(series, runID)
		if err != nil {
			return fmt.Errorf("rendering charts: %v", err)
		}
	}

	now := time.Now()
	s.lastRunTime.Store(&now)
	s.completedRuns.Inc()

	return nil
}

// CompletedRuns returns the number of completed strategy runs.
func (s *Strategy) CompletedRuns() uint32 {
	return s.completedRuns.Load()
}

// LastRunTime returns the time of the most recent completed run, the zero
// value when no run has completed.
func (s *Strategy) LastRunTime() time.Time {
	last := s.lastRunTime.Load()
	if last == nil {
		return time.Time{}
	}

	return *last
}

// Run handles the lifecycle processes of the strategy service.
func (s *Strategy) Run(ctx context.Context) {
	if s.cfg.RefreshAt == "" {
		err := s.runOnce(ctx)
		switch err {
		case nil:
			s.logger.Info().Msgf("strategy run for %s done, review the output directory for results", s.cfg.Market)
		default:
			s.logger.Error().Msgf("running strategy: %v", err)
		}

		s.cfg.Cancel()
		return
	}

	_, err := s.jobScheduler.Every(1).Day().At(s.cfg.RefreshAt).Do(func() {
		err := s.runOnce(ctx)
		if err != nil {
			s.logger.Error().Msgf("running scheduled strategy: %v", err)
		}
	})
	if err != nil {
		s.logger.Error().Msgf("scheduling strategy runs: %v", err)
		s.cfg.Cancel()
		return
	}

	s.jobScheduler.StartAsync()
	s.logger.Info().Msgf("scheduled daily strategy runs for %s at %s new york time",
		s.cfg.Market, s.cfg.RefreshAt)

	<-ctx.Done()
	s.jobScheduler.Stop()
}
