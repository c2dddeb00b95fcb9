package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"deptsite/internal/config"
	"deptsite/internal/dataset"
	"deptsite/internal/ui"
)

const Version = "0.1.0"

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "deptsite",
	Short:         "Department website and careers game",
	Long:          "deptsite serves the department website from published spreadsheet data and runs the careers game in the browser or the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(logLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to deptsite.yml (default $DEPTSITE_CONFIG or ./deptsite.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newServeCmd(),
		newPlayCmd(),
		newFetchCmd(),
		newCacheCmd(),
		newScenariosCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q", s)
	}
	return level, nil
}

// env is what most commands need: config plus an open dataset cache.
type env struct {
	cfg   config.Config
	cache *dataset.Cache
	close func() error
}

func openEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	store, closeStore, err := cfg.OpenStore()
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	cache := dataset.NewCache(cfg.NewSource(), store, dataset.WithFreshness(cfg.Cache.Freshness))
	return &env{cfg: cfg, cache: cache, close: closeStore}, nil
}
