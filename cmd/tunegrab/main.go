// Package main provides the TuneGrab CLI application entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"tunegrab/internal/console"
	"tunegrab/internal/core"
	"tunegrab/internal/events"
	httpserver "tunegrab/internal/http"
	"tunegrab/internal/search"
	"tunegrab/internal/store"
)

var (
	cfgFile string
	config  *core.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tunegrab [flags] SONG",
	Short: "TuneGrab - search and download music tracks",
	Long: `TuneGrab searches YouTube for a requested track, scores the results
against the expected title, and downloads the best match as mp3. Confident
matches are taken automatically; ambiguous ones are resolved interactively.`,
	Args: cobra.ExactArgs(1),
	RunE: runTuneGrab,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("artist", "", "artist name")
	rootCmd.PersistentFlags().String("album", "", "album name")
	rootCmd.PersistentFlags().String("songs-dir", "./songs", "directory for downloaded tracks")
	rootCmd.PersistentFlags().String("history-path", "./tunegrab_history.db", "fetch history database path")
	rootCmd.PersistentFlags().String("ytdlp-path", "yt-dlp", "path to the yt-dlp binary")
	rootCmd.PersistentFlags().Int("max-results", 5, "maximum number of candidates to rank")
	rootCmd.PersistentFlags().Int("auto-accept", 70, "confidence threshold for automatic acceptance")
	rootCmd.PersistentFlags().Int("server-port", 0, "metrics server port (0 disables it)")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".env")
		viper.SetConfigType("env")
	}

	viper.SetEnvPrefix("TUNEGRAB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}

	config = buildConfig()
	logger = buildLogger(config.Log.Level)
}

func buildConfig() *core.Config {
	cfg := core.DefaultConfig()

	if v := viper.GetInt("max-results"); v > 0 {
		cfg.Search.MaxResults = v
	}
	if v := viper.GetString("ytdlp-path"); v != "" {
		cfg.Search.YTDLPPath = v
	}
	if v := viper.GetString("songs-dir"); v != "" {
		cfg.Search.SongsDir = v
	}

	cfg.Server.Host = viper.GetString("server-host")
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	cfg.Server.Port = viper.GetInt("server-port")

	cfg.Log.Level = viper.GetString("log-level")

	if v := viper.GetInt("auto-accept"); v > 0 {
		cfg.App.AutoAcceptThreshold = v
	}
	if v := viper.GetString("history-path"); v != "" {
		cfg.App.HistoryPath = v
	}

	return cfg
}

func buildLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	// Keep stdout free for the interactive prompt.
	cfg.OutputPaths = []string{"stderr"}

	builtLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to build logger: %v", err))
	}

	return builtLogger
}

func runTuneGrab(_ *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	req := core.TrackRequest{
		Song:   args[0],
		Artist: viper.GetString("artist"),
		Album:  viper.GetString("album"),
	}

	logger.Info("Starting TuneGrab",
		zap.String("song", req.Song),
		zap.String("artist", req.Artist))

	if err := validateConfig(req); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	history, err := store.OpenHistory(config.App.HistoryPath)
	if err != nil {
		return fmt.Errorf("failed to open fetch history: %w", err)
	}
	defer history.Close()

	dedup := store.NewDedupStore(config.App.DedupCapacity, 0.001)
	ytdlp := search.NewClient(&config.Search, logger.Named("ytdlp"))
	terminal := console.New(os.Stdin, os.Stdout)
	defer terminal.Close()
	bus := events.NewBus(logger.Named("events"))
	resolver := core.NewResolver(config, terminal, logger.Named("resolver"))

	downloader := core.NewDownloader(
		config,
		ytdlp,
		ytdlp,
		resolver,
		dedup,
		history,
		bus,
		logger.Named("downloader"),
	)

	if err := downloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to load fetch history: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	if config.Server.Port > 0 {
		httpServer := httpserver.NewServer(&config.Server, logger.Named("http"))
		subscribeMetrics(bus, httpServer)

		g.Go(func() error {
			return httpServer.Start(gCtx)
		})
	}

	g.Go(func() error {
		defer cancel()

		trackID, err := downloader.DownloadByName(gCtx, req)
		if err != nil {
			return err
		}
		if trackID == "" {
			terminal.Say("No track downloaded.")
			return nil
		}
		terminal.Say(fmt.Sprintf("Done: %s", trackID))
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("TuneGrab stopped with error", zap.Error(err))
		return err
	}

	logger.Info("TuneGrab stopped gracefully")
	return nil
}

func subscribeMetrics(bus *events.Bus, srv *httpserver.Server) {
	bus.Subscribe(events.SearchCompleted, func(payload any) {
		if e, ok := payload.(events.SearchEvent); ok {
			srv.RecordSearch(e.Elapsed)
		}
	})
	bus.Subscribe(events.TrackSelected, func(payload any) {
		if e, ok := payload.(events.SelectEvent); ok {
			if e.Auto {
				srv.RecordSelection("auto")
			} else {
				srv.RecordSelection("manual")
			}
		}
	})
	bus.Subscribe(events.ResolveAbandoned, func(payload any) {
		if e, ok := payload.(events.AbandonEvent); ok {
			srv.RecordSelection(selectionMode(e.Reason))
		}
	})
	bus.Subscribe(events.TrackFetched, func(payload any) {
		if e, ok := payload.(events.FetchEvent); ok {
			srv.SetLibrarySize(e.LibrarySize)
		}
	})
	bus.Subscribe(events.FetchFailed, func(payload any) {
		srv.RecordFetchError()
	})
}

// selectionMode maps an abandon reason onto the selections metric modes
// (auto, manual, cancelled, none).
func selectionMode(reason string) string {
	if reason == events.ReasonNoResults {
		return "none"
	}
	return reason
}

func validateConfig(req core.TrackRequest) error {
	if strings.TrimSpace(req.Song) == "" {
		return fmt.Errorf("song name is required")
	}

	if config.Search.MaxResults <= 0 {
		return fmt.Errorf("max-results must be positive")
	}

	if config.App.AutoAcceptThreshold < 1 || config.App.AutoAcceptThreshold > 100 {
		return fmt.Errorf("auto-accept must be between 1 and 100")
	}

	return nil
}
