package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sherlock/internal/admission"
	"github.com/dgallion1/sherlock/internal/config"
	"github.com/dgallion1/sherlock/internal/source"
)

var (
	searchData    string
	searchJSON    bool
	searchWindow  int
	searchContext bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search an admission report",
	Long: `Search an admission report the same way the HTTP API does.

The report path and search tuning come from DATA_FILE and SEARCH_CONFIG
unless overridden by flags.

Examples:
  sherlock search pattewar                    # Search app/data.txt
  sherlock search --data round1.pdf 400441110 # Search a PDF report
  sherlock search --json mule                 # Output the API response`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchData, "data", "", "report file to search (default $DATA_FILE)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the response as JSON")
	searchCmd.Flags().IntVarP(&searchWindow, "window", "w", 0, "context lines on each side of a hit")
	searchCmd.Flags().BoolVarP(&searchContext, "context", "c", false, "print each hit's context window")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if searchData != "" {
		cfg.DataFile = searchData
	}
	if searchWindow > 0 {
		cfg.Search.ContextWindow = searchWindow
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	loader := source.Loader{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}
	svc := admission.NewService(cfg.DataFile, cfg.Search, loader, nil, log)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := svc.Search(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if searchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if resp.Count == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	for _, r := range resp.Results {
		fmt.Fprintf(out, "%d [%s] %s\n", r.LineNumber, r.MatchType, r.MatchLine)
		if searchContext {
			for _, l := range strings.Split(r.Context, "\n") {
				fmt.Fprintf(out, "    %s\n", l)
			}
		}
	}
	fmt.Fprintf(out, "%d result(s)\n", resp.Count)
	return nil
}
