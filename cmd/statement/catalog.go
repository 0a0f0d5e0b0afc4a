package main

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/focusim/statement-go/pkg/statement"
	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/focusim/statement-go/pkg/statement/output"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var (
		format     string
		outputPath string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "catalog [source]",
		Short: "List the groups and instruments of a catalog workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			source, err := sourceArg(args, cfg)
			if err != nil {
				return err
			}
			opts, err := cfg.Options()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			loader := &statement.Loader{Client: statement.NewHTTPClient(*zerolog.Ctx(ctx)), Layout: opts.Layout}
			catalog, err := loader.Load(ctx, source)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "json":
				data, err = output.CatalogToJSON(catalog, pretty)
				if err == nil {
					data = append(data, '\n')
				}
			case "text":
				data, err = catalogText(catalog)
			default:
				return fmt.Errorf("invalid format: %s (must be text or json)", format)
			}
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(outputPath, data)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

// catalogText lists instruments under their group headings.
func catalogText(c *models.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, r := range c.Records {
		switch r.Kind {
		case models.RecordGroup:
			fmt.Fprintf(tw, "\n%s\n", r.Group.Label)
		case models.RecordInstrument:
			in := r.Instrument
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", in.Name, in.Ticker, in.CurrencyRaw, in.BenchmarkSpecific, in.BenchmarkGeneral)
		}
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, "\n%d instruments in %d groups (%s, sheet %s)\n", len(c.Instruments()), len(c.Groups()), c.Source, c.Sheet)
	return buf.Bytes(), nil
}
