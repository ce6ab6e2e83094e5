// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/pdiddy/moviefinder/internal/render"
	"github.com/pdiddy/moviefinder/internal/search"
	"github.com/pdiddy/moviefinder/internal/ui"
	"github.com/pdiddy/moviefinder/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [title]",
	Short: "Search for a movie title and render the results",
	Long: `Search sends the title to the search endpoint and renders the returned
movie records. The default output is the full search page as HTML; use
--format table or --format json for a terminal view.

With --interactive, titles are read line by line from stdin and each one
is dispatched as soon as it is entered. Only the newest search may update
the output: results of a search overtaken by a later one are discarded.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	interactive, _ := cmd.Flags().GetBool("interactive")

	switch format {
	case "html", "table", "json":
	default:
		return fmt.Errorf("unsupported format %q: use html, table, or json", format)
	}

	cfg := loadConfig()

	store, err := openHistory(cfg.History)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	page := ui.NewPage("/")
	out := &output{format: format, path: outPath, stdout: cmd.OutOrStdout(), page: page}

	d := search.NewDispatcher(cfg.Search, ui.NewTerminalIndicator(cmd.ErrOrStderr()), out, logger)
	if store != nil {
		d.History = store
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if interactive {
		return searchInteractive(ctx, d, page, cmd.InOrStdin())
	}

	page.SetTitle(strings.Join(args, " "))
	_, err = d.SearchFrom(ctx, page)
	return err
}

// searchInteractive dispatches one search per input line without waiting
// for the previous one to settle.
func searchInteractive(ctx context.Context, d *search.Dispatcher, page *ui.Page, in io.Reader) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failed int

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		page.SetTitle(scanner.Text())
		title := page.Title()

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Search(ctx, title)
			if err != nil && !errors.Is(err, search.ErrSuperseded) {
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading titles: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d search(es) failed", failed)
	}
	return nil
}

// output renders completed result sets in the selected format. For html
// it renders into the page and writes the full document; the file at path
// is rewritten on every render.
type output struct {
	format string
	path   string
	stdout io.Writer
	page   *ui.Page
}

func (o *output) Render(movies []types.Movie) error {
	if o.format == "html" {
		if err := render.NewRenderer(o.page).Render(movies); err != nil {
			return err
		}
	}

	w, closeFn, err := o.writer()
	if err != nil {
		return err
	}
	defer closeFn()

	switch o.format {
	case "table":
		search.FormatTable(movies, w)
		return nil
	case "json":
		return search.FormatJSON(movies, w)
	default:
		_, err := o.page.WriteTo(w)
		return err
	}
}

func (o *output) writer() (io.Writer, func() error, error) {
	if o.path == "" || o.path == "-" {
		return o.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(o.path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

func init() {
	searchCmd.Flags().String("format", "html", "output format: html, table, or json")
	searchCmd.Flags().StringP("out", "o", "", "write output to this file instead of stdout")
	searchCmd.Flags().Bool("interactive", false, "read titles from stdin, one search per line")

	rootCmd.AddCommand(searchCmd)
}
