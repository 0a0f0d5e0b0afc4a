package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/focusim/statement-go/pkg/statement"
	"github.com/focusim/statement-go/pkg/statement/config"
	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/focusim/statement-go/pkg/statement/output"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	portfolio  string
	rate       string
	client     string
	date       string
	format     string
	outputPath string
	totals     string
	policy     string
	locale     string
	pretty     bool
}

func newReportCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report [source]",
		Short: "Value a portfolio against a catalog and render the statement",
		Long: `report values the holdings of a portfolio file in USD, computes instrument
and group weights and renders the statement. Without a portfolio every
catalog instrument is included at the nominal and price found in the sheet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.portfolio, "portfolio", "p", "", "Portfolio file with client, date, exchange rate and holdings")
	cmd.Flags().StringVarP(&flags.rate, "rate", "r", "", "Exchange rate in ARS per USD, written in the report locale, e.g. 1.450,50 (overrides the portfolio)")
	cmd.Flags().StringVar(&flags.client, "client", "", "Client name (overrides the portfolio)")
	cmd.Flags().StringVar(&flags.date, "date", "", "Statement date, YYYY-MM-DD or DD/MM/YYYY (default: today)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "markdown", "Output format: json, markdown, terminal, xlsx, pdf")
	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flags.totals, "totals", "", "Group total rows: none, before, after, both")
	cmd.Flags().StringVar(&flags.policy, "policy", "", "ARS valuation: price (nominal*price/rate) or nominal (nominal/rate)")
	cmd.Flags().StringVar(&flags.locale, "locale", "", "Locale for printed and entered numbers, e.g. es-AR or en-US")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func runReport(cmd *cobra.Command, args []string, flags reportFlags) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flags.policy != "" {
		cfg.Policy = flags.policy
	}
	if flags.totals != "" {
		cfg.Totals = flags.totals
	}
	if flags.locale != "" {
		cfg.Report.Locale = flags.locale
	}
	source, err := sourceArg(args, cfg)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	formatter, err := output.NewFormatter(cfg.Report.Locale)
	if err != nil {
		return err
	}
	nf, err := cfg.NumberFormat()
	if err != nil {
		return err
	}

	portfolio := &config.Portfolio{}
	if flags.portfolio != "" {
		if portfolio, err = config.LoadPortfolio(flags.portfolio); err != nil {
			return err
		}
	}
	if flags.rate != "" {
		portfolio.ExchangeRate = flags.rate
	}
	if flags.client != "" {
		portfolio.Client = flags.client
	}
	if flags.date != "" {
		portfolio.Date = flags.date
	}

	rate := decimal.Zero
	if portfolio.ExchangeRate != "" {
		if rate, err = portfolio.Rate(nf); err != nil {
			return err
		}
	}
	date, err := portfolio.StatementDate()
	if err != nil {
		return err
	}
	if date.IsZero() {
		date = time.Now()
	}
	opts.Client = portfolio.Client
	opts.Date = date

	loader := &statement.Loader{Client: statement.NewHTTPClient(*logger), Layout: opts.Layout}
	catalog, err := loader.Load(ctx, source)
	if err != nil {
		return err
	}

	holdings, err := portfolio.ToHoldings(nf)
	if err != nil {
		return err
	}
	if len(holdings) == 0 {
		logger.Info().Msg("no holdings given, selecting the whole catalog")
		holdings = statement.AllHoldings(catalog)
	}

	st, err := statement.Build(ctx, catalog, holdings, rate, opts)
	if err != nil {
		return err
	}

	data, err := render(st, flags, formatter, cfg.Report)
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}
	return writeOutput(flags.outputPath, data)
}

func render(st *models.Statement, flags reportFlags, f output.Formatter, report config.ReportConfig) ([]byte, error) {
	switch flags.format {
	case "json":
		data, err := output.ToJSON(st, flags.pretty)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "markdown", "md":
		return output.ToMarkdown(st, f)
	case "terminal":
		md, err := output.ToMarkdown(st, f)
		if err != nil {
			return nil, err
		}
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(160))
		if err != nil {
			return nil, err
		}
		out, err := r.Render(string(md))
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	case "xlsx", "excel":
		var buf bytes.Buffer
		err := output.WriteExcel(&buf, st, f)
		return buf.Bytes(), err
	case "pdf":
		var buf bytes.Buffer
		err := output.WritePDF(&buf, st, f, output.PDFOptions{Logo: report.Logo})
		return buf.Bytes(), err
	default:
		return nil, fmt.Errorf("invalid format: %s (must be json, markdown, terminal, xlsx or pdf)", flags.format)
	}
}
