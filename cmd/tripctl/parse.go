package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/source"
)

func parseCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse raw itinerary text from a file or stdin",
		Long: `Reads model-written itinerary text as-is (no document conversion) and prints
the structured activities. With no file, or "-", text is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			res := itinerary.Parse(string(data), itinerary.Options{
				Destination:  g.destination,
				DurationDays: g.clampDays(0),
			})
			return printResult(cmd.OutOrStdout(), res, g.json)
		},
	}
}

func importCmd(g *globals) *cobra.Command {
	var textOnly, pdftotext bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Extract itinerary text from a document and parse it",
		Long:  "Supported formats: " + fmt.Sprint(source.Extensions()),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := source.ExtractFile(args[0], source.Options{PDFFallbackPdftotext: pdftotext})
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			if textOnly {
				_, err := io.WriteString(cmd.OutOrStdout(), text+"\n")
				return err
			}
			res := itinerary.Parse(text, itinerary.Options{
				Destination:  g.destination,
				DurationDays: g.clampDays(0),
			})
			return printResult(cmd.OutOrStdout(), res, g.json)
		},
	}

	cmd.Flags().BoolVar(&textOnly, "text", false, "Print the extracted text instead of parsing it")
	cmd.Flags().BoolVar(&pdftotext, "pdftotext", true, "Fall back to pdftotext for PDFs the native reader cannot handle")
	return cmd
}
