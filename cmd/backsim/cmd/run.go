package cmd

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/backsim/backtest"
	"github.com/rustyeddy/backsim/config"
	"github.com/rustyeddy/backsim/journal"
	"github.com/rustyeddy/backsim/report"
	"github.com/rustyeddy/backsim/sim"
	"github.com/rustyeddy/backsim/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest from a config file or flags",
	Long: `Run executes one backtest. Provide a YAML/JSON config file, or use
flags to override the defaults.

Examples:
  backsim run --config run.yaml
  backsim run --bars data/spy_daily.csv --strategy crossover --fast 20 --slow 50
  backsim run --bars data/spy_daily.csv --strategy mean-reversion --show-trades`,
	RunE: runBacktest,
}

var (
	runConfigPath string
	runBarsPath   string
	runStrategy   string
	runCapital    float64
	runCommission float64
	runDBPath     string
	runShowTrades bool

	runFast         int
	runSlow         int
	runCashFraction float64

	runRSIPeriod  int
	runOversold   float64
	runOverbought float64
	runStopLoss   float64
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to YAML/JSON run config")
	runCmd.Flags().StringVarP(&runBarsPath, "bars", "b", "", "path to bar CSV (time,open,high,low,close,volume)")
	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "crossover", "strategy name (noop, crossover, mean-reversion)")
	runCmd.Flags().Float64Var(&runCapital, "capital", 10_000, "starting capital")
	runCmd.Flags().Float64Var(&runCommission, "commission", 0.001, "fractional commission per leg")
	runCmd.Flags().StringVarP(&runDBPath, "db", "d", "", "path to SQLite journal DB (journaling off when empty)")
	runCmd.Flags().BoolVar(&runShowTrades, "show-trades", false, "print the full trade log")

	runCmd.Flags().IntVar(&runFast, "fast", 20, "crossover: fast SMA window")
	runCmd.Flags().IntVar(&runSlow, "slow", 50, "crossover: slow SMA window")
	runCmd.Flags().Float64Var(&runCashFraction, "cash-fraction", 0.5, "crossover: fraction of cash per buy")

	runCmd.Flags().IntVar(&runRSIPeriod, "rsi-period", 14, "mean-reversion: RSI period")
	runCmd.Flags().Float64Var(&runOversold, "oversold", 30, "mean-reversion: oversold threshold")
	runCmd.Flags().Float64Var(&runOverbought, "overbought", 70, "mean-reversion: overbought threshold")
	runCmd.Flags().Float64Var(&runStopLoss, "stop-loss", 0.05, "mean-reversion: stop loss fraction below entry")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	strat, err := strategies.ByName(cfg.Strategy.Name, cfg.Strategy.Crossover, cfg.Strategy.MeanReversion)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	feed, err := buildFeed(cfg)
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}

	j, err := buildJournal(cfg)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	defer j.Close()

	runner := &backtest.Runner{
		Ledger:   sim.NewLedger(cfg.Account.InitialCapital, cfg.Account.Commission),
		Feed:     feed,
		Strategy: strat,
		Journal:  j,
	}

	log.WithFields(log.Fields{
		"strategy": strat.Name(),
		"capital":  cfg.Account.InitialCapital,
	}).Info("starting backtest")

	result, err := runner.Run(context.Background())
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	report.PrintSummary(os.Stdout, strat.Name(), result)
	if runShowTrades {
		report.PrintTrades(os.Stdout, result)
	}
	return nil
}

// resolveConfig builds the run config: a file when given, otherwise defaults
// overlaid with flags.
func resolveConfig() (*config.Config, error) {
	if runConfigPath != "" {
		return config.LoadFromFile(runConfigPath)
	}

	cfg := config.Default()
	cfg.Account.InitialCapital = runCapital
	cfg.Account.Commission = runCommission
	cfg.Strategy.Name = runStrategy
	cfg.Strategy.Crossover.FastPeriod = runFast
	cfg.Strategy.Crossover.SlowPeriod = runSlow
	cfg.Strategy.Crossover.CashFraction = runCashFraction
	cfg.Strategy.MeanReversion.RSIPeriod = runRSIPeriod
	cfg.Strategy.MeanReversion.Oversold = runOversold
	cfg.Strategy.MeanReversion.Overbought = runOverbought
	cfg.Strategy.MeanReversion.StopLoss = runStopLoss

	if runBarsPath != "" {
		cfg.Data.CSV = runBarsPath
		cfg.Data.Synthetic = nil
	}
	if runDBPath != "" {
		cfg.Journal = config.JournalConfig{Type: "sqlite", DBPath: runDBPath}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildFeed(cfg *config.Config) (backtest.BarFeed, error) {
	if cfg.Data.CSV != "" {
		return backtest.NewCSVBarFeed(cfg.Data.CSV)
	}

	walk := backtest.RandomWalkDefaults()
	if s := cfg.Data.Synthetic; s != nil {
		walk.Bars = s.Bars
		walk.Seed = s.Seed
		if s.StartPrice > 0 {
			walk.StartPrice = s.StartPrice
		}
	}
	return backtest.NewRandomWalkFeed(walk), nil
}

func buildJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "", "none":
		return journal.Nop{}, nil
	case "csv":
		return journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.EquityFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
	}
}
