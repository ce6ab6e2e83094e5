// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/moviefinder/internal/history"
	"github.com/pdiddy/moviefinder/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and export the search history",
	Long: `History reads the SQLite database written by "search" and "serve" when
--history is set. Use subcommands to list recent searches or export them.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.Open(loadConfig().History)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), historyOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(entries, jsonOutput, cmd.OutOrStdout())
}

func formatHistory(entries []types.HistoryEntry, jsonOutput bool, w io.Writer) error {
	if jsonOutput {
		if entries == nil {
			entries = []types.HistoryEntry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No searches recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-40s  %-6s  %-5s  %s\n", "When", "Title", "Status", "Count", "Error")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		title := e.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(w, "%-20s  %-40s  %-6s  %-5d  %s\n",
			e.SearchedAt.Local().Format("2006-01-02 15:04:05"), title, e.Status, e.Count, e.Error)
	}
	fmt.Fprintf(w, "\n%d searches\n", len(entries))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the search history to YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	store, err := history.Open(loadConfig().History)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := historyOptsFromFlags(cmd)
	ctx := context.Background()

	switch format {
	case "yaml", "":
		if outPath == "" {
			outPath = "history.yaml"
		}
		err = store.ExportYAML(ctx, outPath, opts)
	case "json":
		if outPath == "" {
			outPath = "history.json"
		}
		err = store.ExportJSON(ctx, outPath, opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outPath)
	return nil
}

// --- shared helpers ---

func historyOptsFromFlags(cmd *cobra.Command) history.QueryOptions {
	title, _ := cmd.Flags().GetString("title")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	return history.QueryOptions{
		Title:  title,
		Status: types.SearchStatus(status),
		Limit:  limit,
	}
}

func init() {
	historyCmd.PersistentFlags().String("title", "", "filter by title substring")
	historyCmd.PersistentFlags().String("status", "", "filter by status: ok, failed, stale")

	historyListCmd.Flags().Int("limit", 20, "maximum entries to list (-1 = all)")
	historyListCmd.Flags().Bool("json", false, "output entries as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "output file (default history.yaml or history.json)")
	historyExportCmd.Flags().Int("limit", 0, "maximum entries to export (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
