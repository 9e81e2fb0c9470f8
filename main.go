package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/soocke/flame-bot-go/app"
	"github.com/soocke/flame-bot-go/config"
)

var (
	cfgPath   string
	debugFlag bool

	primeMax bool

	flameMainStat  string
	flameSecondary string
	flameType      string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "flamebot",
		Short:        "Auto flame reroller: OCR the stat box, score it, reroll until the goal is met",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "flamebot.json", "config file path")
	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "verbose logging and debug metrics")

	prime := &cobra.Command{
		Use:   "prime",
		Short: "Reroll until prime keyword lines (item drop / mesos) appear",
		RunE:  runPrime,
	}
	prime.Flags().BoolVar(&primeMax, "max", false, "require every tracked category instead of stopping at the first")

	flame := &cobra.Command{
		Use:   "flame",
		Short: "Reroll until the after-box flame score is at least the before-box score",
		RunE:  runFlame,
	}
	flame.Flags().StringVar(&flameMainStat, "main-stat", "", "main stat to target (STR, DEX, INT, LUK)")
	flame.Flags().StringVar(&flameSecondary, "secondary-stat", "", "secondary stat (STR, DEX, INT, LUK)")
	flame.Flags().StringVar(&flameType, "type", "", "weapon type: ATT or MATT")

	root.AddCommand(prime, flame)
	return root
}

// loadConfig merges the config file with global flag overrides and builds
// the logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if debugFlag {
		cfg.Debug = true
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return cfg, NewLogger(level, cfg.Debug), nil
}

func runPrime(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if primeMax {
		cfg.PrimeThreshold = len(cfg.PrimeCategories)
	}
	return app.Run(cfg, logger, app.ModePrime)
}

func runFlame(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("main-stat") {
		cfg.MainStat = flameMainStat
	}
	if cmd.Flags().Changed("secondary-stat") {
		cfg.SecondaryStat = flameSecondary
	}
	if cmd.Flags().Changed("type") {
		cfg.WeaponType = flameType
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return app.Run(cfg, logger, app.ModeFlame)
}
