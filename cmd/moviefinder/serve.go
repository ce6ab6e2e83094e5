// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/moviefinder/internal/search"
	"github.com/pdiddy/moviefinder/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the movie search page",
	Long: `Serve runs a web server with the movie search page. Submitting a title
dispatches a search to the configured endpoint and renders the results
on the returned page. The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	store, err := openHistory(cfg.History)
	if err != nil {
		return err
	}
	var rec search.Recorder
	if store != nil {
		defer store.Close()
		rec = store
	}

	srv := server.New(cfg.Search, rec, logger)
	h, closeLog := srv.Handler()
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg.Serve, h, logger)
}

func init() {
	serveCmd.Flags().String("addr", ":8090", "listen address")
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
