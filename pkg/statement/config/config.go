// Package config loads statement settings and portfolio files.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/focusim/statement-go/pkg/statement"
	"github.com/focusim/statement-go/pkg/statement/parser"
	"github.com/focusim/statement-go/pkg/statement/valuation"
	"github.com/spf13/viper"
	"github.com/xuri/excelize/v2"
)

// EnvPrefix prefixes environment variables overriding config keys,
// e.g. STATEMENT_POLICY or STATEMENT_REPORT_LOCALE.
const EnvPrefix = "STATEMENT"

type Config struct {
	Source string       `mapstructure:"source"`
	Policy string       `mapstructure:"policy"`
	Totals string       `mapstructure:"totals"`
	Layout LayoutConfig `mapstructure:"layout"`
	Report ReportConfig `mapstructure:"report"`
}

// LayoutConfig describes catalog columns by Excel letter ("C") or 1-based number ("3").
// An empty column means the sheet has no such field.
type LayoutConfig struct {
	Detect            bool        `mapstructure:"detect"`
	Sheet             string      `mapstructure:"sheet"`
	HeaderRows        int         `mapstructure:"header_rows"`
	UsePrintArea      bool        `mapstructure:"use_print_area"`
	Name              string      `mapstructure:"name"`
	Ticker            string      `mapstructure:"ticker"`
	Currency          string      `mapstructure:"currency"`
	BenchmarkSpecific string      `mapstructure:"benchmark_specific"`
	BenchmarkGeneral  string      `mapstructure:"benchmark_general"`
	Nominal           string      `mapstructure:"nominal"`
	Price             string      `mapstructure:"price"`
	Group             GroupConfig `mapstructure:"group"`
}

// GroupConfig mirrors parser.GroupRule with column names.
type GroupConfig struct {
	Label string   `mapstructure:"label"`
	Empty []string `mapstructure:"empty"`
	Allow []string `mapstructure:"allow"`
}

type ReportConfig struct {
	Title  string `mapstructure:"title"`
	Locale string `mapstructure:"locale"`
	Logo   string `mapstructure:"logo"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", "")
	v.SetDefault("policy", string(valuation.DefaultPolicy))
	v.SetDefault("totals", string(valuation.TotalsNone))
	v.SetDefault("layout.detect", true)
	v.SetDefault("layout.sheet", "")
	v.SetDefault("layout.header_rows", 1)
	v.SetDefault("layout.use_print_area", false)
	v.SetDefault("layout.name", "A")
	v.SetDefault("layout.ticker", "B")
	v.SetDefault("layout.currency", "C")
	v.SetDefault("layout.benchmark_specific", "D")
	v.SetDefault("layout.benchmark_general", "E")
	v.SetDefault("layout.nominal", "")
	v.SetDefault("layout.price", "")
	v.SetDefault("layout.group.label", "A")
	v.SetDefault("report.title", statement.DefaultTitle)
	v.SetDefault("report.locale", DefaultLocale)
	v.SetDefault("report.logo", "")
}

// LoadConfig reads the config file at path, if any, over the defaults.
// Environment variables prefixed with EnvPrefix take precedence over both.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse statement config: %w", err)
	}
	return &cfg, nil
}

// Options converts the config into statement options, validating the layout once.
func (c *Config) Options() (statement.Options, error) {
	opts := statement.DefaultOptions()

	policy, err := valuation.ParsePolicy(c.Policy)
	if err != nil {
		return opts, err
	}
	totals, err := valuation.ParsePlacement(c.Totals)
	if err != nil {
		return opts, err
	}
	layout, err := c.Layout.ToLayout()
	if err != nil {
		return opts, err
	}

	opts.Policy = policy
	opts.Totals = totals
	opts.Layout = layout
	if c.Report.Title != "" {
		opts.Title = c.Report.Title
	}
	return opts, nil
}

// NumberFormat returns the notation user amounts are read in, following report.locale.
func (c *Config) NumberFormat() (NumberFormat, error) {
	return NumberFormatFor(c.Report.Locale)
}

// ToLayout builds the parser layout. It returns nil when the layout is detected from the sheet.
func (c LayoutConfig) ToLayout() (*parser.Layout, error) {
	if c.Detect {
		return nil, nil
	}

	layout := parser.Layout{
		Sheet:        c.Sheet,
		HeaderRows:   c.HeaderRows,
		UsePrintArea: c.UsePrintArea,
	}

	var err error
	set := func(dst *int, spec string) {
		if err == nil {
			*dst, err = ParseColumn(spec)
		}
	}
	set(&layout.Name, c.Name)
	set(&layout.Ticker, c.Ticker)
	set(&layout.Currency, c.Currency)
	set(&layout.BenchmarkSpecific, c.BenchmarkSpecific)
	set(&layout.BenchmarkGeneral, c.BenchmarkGeneral)
	set(&layout.Nominal, c.Nominal)
	set(&layout.Price, c.Price)

	label := c.Group.Label
	if label == "" {
		label = c.Name
	}
	set(&layout.Group.Label, label)
	if err != nil {
		return nil, err
	}
	if layout.Group.Empty, err = parseColumns(c.Group.Empty); err != nil {
		return nil, err
	}
	if layout.Group.Allow, err = parseColumns(c.Group.Allow); err != nil {
		return nil, err
	}

	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// ParseColumn converts a column letter or 1-based number to a 0-based index.
// Empty input yields parser.NoColumn.
func ParseColumn(spec string) (int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return parser.NoColumn, nil
	}
	if n, err := strconv.Atoi(spec); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("%w: column number %d must be at least 1", parser.ErrInvalidLayout, n)
		}
		return n - 1, nil
	}
	n, err := excelize.ColumnNameToNumber(spec)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", parser.ErrInvalidLayout, err)
	}
	return n - 1, nil
}

func parseColumns(specs []string) ([]int, error) {
	var out []int
	for _, s := range specs {
		n, err := ParseColumn(s)
		if err != nil {
			return nil, err
		}
		if n != parser.NoColumn {
			out = append(out, n)
		}
	}
	return out, nil
}
