package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sherlock/internal/source"
)

var (
	extractOutput   string
	extractPdftotxt bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <report>",
	Short: "Flatten a report to searchable text",
	Long: `Flatten a PDF, HTML, DOCX, Markdown or CSV report into the
line-oriented text format the server searches, one table row or
paragraph per line.

Examples:
  sherlock extract round1.pdf -o app/data.txt
  sherlock extract allotment.html > data.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "write lines to this file instead of stdout")
	extractCmd.Flags().BoolVar(&extractPdftotxt, "pdftotext", true, "fall back to pdftotext when the PDF reader fails")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !source.IsSupportedExtension(path) {
		return fmt.Errorf("unsupported report format: %s", path)
	}

	loader := source.Loader{PDFFallbackPdftotext: extractPdftotxt}
	lines, err := loader.Load(path)
	if err != nil {
		return err
	}

	if extractOutput == "" {
		return writeLines(cmd.OutOrStdout(), lines)
	}

	f, err := os.Create(extractOutput)
	if err != nil {
		return fmt.Errorf("create %s: %w", extractOutput, err)
	}
	if err := writeLines(f, lines); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d lines to %s\n", len(lines), extractOutput)
	return nil
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := fmt.Fprintln(bw, l); err != nil {
			return err
		}
	}
	return bw.Flush()
}
