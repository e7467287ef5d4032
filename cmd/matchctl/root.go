package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gdugdh24/opportunity-matcher/internal/config"
	"github.com/gdugdh24/opportunity-matcher/internal/infrastructure/container"
	"github.com/gdugdh24/opportunity-matcher/internal/infrastructure/logger"
)

const app = "matchctl"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "matchctl scores student profiles against the opportunity catalogue",
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("env", ".env", "env file with the configuration")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("env", rootCmd.PersistentFlags().Lookup("env"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// newApp loads the configuration and builds the container. Flags win over
// LOG_LEVEL and LOG_JSON.
func newApp(ctx context.Context) (*container.Container, error) {
	cfg, err := config.LoadFile(viper.GetString("env"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Logging.Level
	if viper.GetBool("debug") {
		level = "debug"
	}
	log, err := logger.New(viper.GetBool("json") || cfg.Logging.JSON, level)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	c, err := container.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Error("initializing application", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
