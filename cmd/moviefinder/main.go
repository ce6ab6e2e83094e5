// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the moviefinder CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/moviefinder/internal/history"
	"github.com/pdiddy/moviefinder/internal/logging"
	"github.com/pdiddy/moviefinder/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from the log.* settings before any command runs.
var logger = logrus.StandardLogger()

// rootCmd is the base command for the moviefinder CLI.
var rootCmd = &cobra.Command{
	Use:   "moviefinder",
	Short: "Search a movie recommender and render the results as cards",
	Long: `moviefinder sends a movie title to a search endpoint and renders the
returned movie records as HTML cards, a table, or JSON.

Use "search" for a one-off query from the command line, "serve" for the
search page in a browser, and "history" to inspect past searches.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(loadConfig().Log, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./moviefinder.yaml or ~/.config/moviefinder/config.yaml)")
	pf.String("endpoint", types.DefaultEndpoint, "search endpoint URL")
	pf.Duration("timeout", 0, "HTTP request timeout (0 = none)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.Bool("history", false, "record searches in the history database")
	pf.String("history-db", "moviefinder.db", "history database file")

	viper.BindPFlag("search.endpoint", pf.Lookup("endpoint"))
	viper.BindPFlag("search.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.format", pf.Lookup("log-format"))
	viper.BindPFlag("history.enabled", pf.Lookup("history"))
	viper.BindPFlag("history.path", pf.Lookup("history-db"))

	viper.SetDefault("search.user_agent", "moviefinder/"+version)
	viper.SetDefault("serve.addr", ":8090")
	viper.SetDefault("serve.shutdown_timeout", 10*time.Second)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("moviefinder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "moviefinder"))
		}
	}

	viper.SetEnvPrefix("MOVIEFINDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective configuration from flags, the
// environment, the config file and defaults, in that order of precedence.
func loadConfig() types.Config {
	return types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			Endpoint: viper.GetString("search.endpoint"),
		},
		Serve: types.ServeConfig{
			Addr:            viper.GetString("serve.addr"),
			ShutdownTimeout: viper.GetDuration("serve.shutdown_timeout"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Path:    viper.GetString("history.path"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}
}

// openHistory opens the history store when recording is enabled. It
// returns nil, nil otherwise.
func openHistory(cfg types.HistoryConfig) (*history.Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	return history.Open(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
