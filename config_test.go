package main

import (
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/nsmanju/stochastic-trading-strategy/pipeline"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr []string
	}{
		{
			name: "valid config, file backed data",
			cfg: Config{
				Market:       "^GSPC",
				Timeframe:    "1D",
				DataFilePath: "/tmp/data.csv",
			},
			wantErr: nil,
		},
		{
			name: "valid config, fmp api key",
			cfg: Config{
				Market:    "AAPL",
				Timeframe: "1D",
				FMPAPIKey: "apikey",
			},
			wantErr: nil,
		},
		{
			name: "valid config, store endpoint",
			cfg: Config{
				Market:        "^GSPC",
				Timeframe:     "1H",
				StoreEndpoint: "http://localhost:4001",
			},
			wantErr: nil,
		},
		{
			name: "valid config, date range",
			cfg: Config{
				Market:    "^GSPC",
				Timeframe: "1D",
				FMPAPIKey: "apikey",
				Start:     "2024-01-02",
				End:       "2024-06-28",
			},
			wantErr: nil,
		},
		{
			name: "missing market",
			cfg: Config{
				Timeframe:    "1D",
				DataFilePath: "/tmp/data.csv",
			},
			wantErr: []string{"no market provided for the strategy run"},
		},
		{
			name: "missing candle source",
			cfg: Config{
				Market:    "^GSPC",
				Timeframe: "1D",
			},
			wantErr: []string{"no candle source provided"},
		},
		{
			name: "missing both market and candle source",
			cfg: Config{
				Timeframe: "1D",
			},
			wantErr: []string{
				"no market provided for the strategy run",
				"no candle source provided",
			},
		},
		{
			name: "unknown timeframe",
			cfg: Config{
				Market:       "^GSPC",
				Timeframe:    "3W",
				DataFilePath: "/tmp/data.csv",
			},
			wantErr: []string{"unknown timeframe: 3W"},
		},
		{
			name: "malformed start date",
			cfg: Config{
				Market:    "^GSPC",
				Timeframe: "1D",
				FMPAPIKey: "apikey",
				Start:     "january second",
			},
			wantErr: []string{"parsing start date"},
		},
		{
			name: "malformed end date",
			cfg: Config{
				Market:    "^GSPC",
				Timeframe: "1D",
				FMPAPIKey: "apikey",
				End:       "06/28/2024",
			},
			wantErr: []string{"parsing end date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("expected error(s) %v, got none", tt.wantErr)
					return
				}
				for _, want := range tt.wantErr {
					if !strings.Contains(err.Error(), want) {
						t.Errorf("expected error to contain %q, got %v", want, err)
					}
				}
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	// Save and restore original os.Args and environment
	origArgs := os.Args
	origEnv := os.Environ()
	defer func() {
		os.Args = origArgs
		for _, kv := range origEnv {
			parts := strings.SplitN(kv, "=", 2)
			if len(parts) == 2 {
				os.Setenv(parts[0], parts[1])
			}
		}
	}()

	tests := []struct {
		name        string
		env         map[string]string
		args        []string
		expectErr   bool
		expectInErr []string
		expectCfg   Config
	}{
		{
			name: "all from env",
			env: map[string]string{
				"market":       "^GSPC",
				"timeframe":    "1D",
				"datafilepath": "/tmp/data.csv",
				"kperiod":      "10",
			},
			args:      []string{"cmd"},
			expectErr: false,
			expectCfg: Config{
				Market:       "^GSPC",
				Timeframe:    "1D",
				DataFilePath: "/tmp/data.csv",
				KPeriod:      10,
			},
		},
		{
			name:      "all from flags",
			env:       map[string]string{},
			args:      []string{"cmd", "-market=AAPL", "-fmpapikey=apikey", "-charts=true"},
			expectErr: false,
			expectCfg: Config{
				Market:    "AAPL",
				FMPAPIKey: "apikey",
				Charts:    true,
			},
		},
		{
			name: "flag overrides env",
			env: map[string]string{
				"market": "AAPL",
			},
			args:      []string{"cmd", "-market=^GSPC", "-fmpapikey=apikey"},
			expectErr: false,
			expectCfg: Config{
				Market:    "^GSPC",
				FMPAPIKey: "apikey",
			},
		},
		{
			name: "defaults applied for unset fields",
			env: map[string]string{
				"market":    "^GSPC",
				"fmpapikey": "apikey",
			},
			args:      []string{"cmd"},
			expectErr: false,
			expectCfg: Config{
				Market:           "^GSPC",
				Timeframe:        "1D",
				FMPAPIKey:        "apikey",
				KPeriod:          pipeline.DefaultKPeriod,
				DPeriod:          pipeline.DefaultDPeriod,
				EMAPeriod:        pipeline.DefaultEMAPeriod,
				MACDFastPeriod:   pipeline.DefaultMACDFastPeriod,
				MACDSlowPeriod:   pipeline.DefaultMACDSlowPeriod,
				MACDSignalPeriod: pipeline.DefaultMACDSignalPeriod,
				OutputDir:        "output",
			},
		},
		{
			name:        "missing market and candle source",
			env:         map[string]string{},
			args:        []string{"cmd"},
			expectErr:   true,
			expectInErr: []string{"no market provided for the strategy run", "no candle source provided"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags for each test
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			// Set environment variables
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			// Set command-line arguments
			os.Args = tt.args

			var cfg Config
			err := loadConfig(&cfg, "") // don't load .env file

			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				for _, want := range tt.expectInErr {
					if !strings.Contains(err.Error(), want) {
						t.Errorf("expected error to contain %q, got %v", want, err)
					}
				}
			} else {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				// Only check fields that are set in expectCfg
				if tt.expectCfg.Market != "" && cfg.Market != tt.expectCfg.Market {
					t.Errorf("Market: got %v, want %v", cfg.Market, tt.expectCfg.Market)
				}
				if tt.expectCfg.Timeframe != "" && cfg.Timeframe != tt.expectCfg.Timeframe {
					t.Errorf("Timeframe: got %v, want %v", cfg.Timeframe, tt.expectCfg.Timeframe)
				}
				if tt.expectCfg.DataFilePath != "" && cfg.DataFilePath != tt.expectCfg.DataFilePath {
					t.Errorf("DataFilePath: got %v, want %v", cfg.DataFilePath, tt.expectCfg.DataFilePath)
				}
				if tt.expectCfg.FMPAPIKey != "" && cfg.FMPAPIKey != tt.expectCfg.FMPAPIKey {
					t.Errorf("FMPAPIKey: got %v, want %v", cfg.FMPAPIKey, tt.expectCfg.FMPAPIKey)
				}
				if tt.expectCfg.KPeriod != 0 && cfg.KPeriod != tt.expectCfg.KPeriod {
					t.Errorf("KPeriod: got %v, want %v", cfg.KPeriod, tt.expectCfg.KPeriod)
				}
				if tt.expectCfg.DPeriod != 0 && cfg.DPeriod != tt.expectCfg.DPeriod {
					t.Errorf("DPeriod: got %v, want %v", cfg.DPeriod, tt.expectCfg.DPeriod)
				}
				if tt.expectCfg.EMAPeriod != 0 && cfg.EMAPeriod != tt.expectCfg.EMAPeriod {
					t.Errorf("EMAPeriod: got %v, want %v", cfg.EMAPeriod, tt.expectCfg.EMAPeriod)
				}
				if tt.expectCfg.MACDFastPeriod != 0 && cfg.MACDFastPeriod != tt.expectCfg.MACDFastPeriod {
					t.Errorf("MACDFastPeriod: got %v, want %v", cfg.MACDFastPeriod, tt.expectCfg.MACDFastPeriod)
				}
				if tt.expectCfg.MACDSlowPeriod != 0 && cfg.MACDSlowPeriod != tt.expectCfg.MACDSlowPeriod {
					t.Errorf("MACDSlowPeriod: got %v, want %v", cfg.MACDSlowPeriod, tt.expectCfg.MACDSlowPeriod)
				}
				if tt.expectCfg.MACDSignalPeriod != 0 && cfg.MACDSignalPeriod != tt.expectCfg.MACDSignalPeriod {
					t.Errorf("MACDSignalPeriod: got %v, want %v", cfg.MACDSignalPeriod, tt.expectCfg.MACDSignalPeriod)
				}
				if tt.expectCfg.OutputDir != "" && cfg.OutputDir != tt.expectCfg.OutputDir {
					t.Errorf("OutputDir: got %v, want %v", cfg.OutputDir, tt.expectCfg.OutputDir)
				}
				if cfg.Charts != tt.expectCfg.Charts {
					t.Errorf("Charts: got %v, want %v", cfg.Charts, tt.expectCfg.Charts)
				}
				if cfg.XLSX != tt.expectCfg.XLSX {
					t.Errorf("XLSX: got %v, want %v", cfg.XLSX, tt.expectCfg.XLSX)
				}
			}

			// Clean up env
			for k := range tt.env {
				os.Unsetenv(k)
			}
		})
	}
}
