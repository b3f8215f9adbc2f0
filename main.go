package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/nsmanju/stochastic-trading-strategy/pipeline"
	"github.com/nsmanju/stochastic-trading-strategy/service"
	"github.com/nsmanju/stochastic-trading-strategy/shared"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Printf("loading config: %v", err)
		return
	}

	timeframe, err := shared.ParseTimeframe(cfg.Timeframe)
	if err != nil {
		log.Printf("parsing timeframe: %v", err)
		return
	}

	var start, end time.Time
	if cfg.Start != "" {
		start, err = time.Parse(shared.DateLayout, cfg.Start)
		if err != nil {
			log.Printf("parsing start date: %v", err)
			return
		}
	}
	if cfg.End != "" {
		end, err = time.Parse(shared.DateLayout, cfg.End)
		if err != nil {
			log.Printf("parsing end date: %v", err)
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	strategyCfg := service.StrategyConfig{
		Market:        cfg.Market,
		Timeframe:     timeframe,
		DataFilePath:  cfg.DataFilePath,
		FMPAPIKey:     cfg.FMPAPIKey,
		StoreEndpoint: cfg.StoreEndpoint,
		StoreUser:     cfg.StoreUser,
		StorePass:     cfg.StorePass,
		Start:         start,
		End:           end,
		Pipeline: &pipeline.Config{
			KPeriod:          cfg.KPeriod,
			DPeriod:          cfg.DPeriod,
			EMAPeriod:        cfg.EMAPeriod,
			UseMACDFilter:    cfg.MACDFilter,
			MACDFastPeriod:   cfg.MACDFastPeriod,
			MACDSlowPeriod:   cfg.MACDSlowPeriod,
			MACDSignalPeriod: cfg.MACDSignalPeriod,
		},
		OutputDir:    cfg.OutputDir,
		EnableCharts: cfg.Charts,
		EnableXLSX:   cfg.XLSX,
		RefreshAt:    cfg.RefreshAt,
		Cancel:       cancel,
	}
	strategy, err := service.NewStrategy(&strategyCfg)
	if err != nil {
		log.Printf("creating strategy service: %v", err)
		return
	}

	go handleTermination(ctx, cancel)
	strategy.Run(ctx)
}
