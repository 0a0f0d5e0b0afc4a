package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Portfolio is the user input for one statement.
// Amounts are kept as text so locale notation can be parsed explicitly.
type Portfolio struct {
	Client       string          `mapstructure:"client"`
	Date         string          `mapstructure:"date"`
	ExchangeRate string          `mapstructure:"exchange_rate"`
	Holdings     []HoldingConfig `mapstructure:"holdings"`
}

type HoldingConfig struct {
	Name    string `mapstructure:"name"`
	Nominal string `mapstructure:"nominal"`
	Price   string `mapstructure:"price"`
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05 -0700 MST",
	time.RFC3339,
}

// LoadPortfolio reads a portfolio file (YAML, JSON or TOML, by extension).
func LoadPortfolio(path string) (*Portfolio, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read portfolio file: %w", err)
	}

	var p Portfolio
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio: %w", err)
	}
	return &p, nil
}

// ToHoldings parses the holding amounts in the notation of nf. Blank amounts
// stay unset so the catalog values apply.
func (p *Portfolio) ToHoldings(nf NumberFormat) ([]models.Holding, error) {
	holdings := make([]models.Holding, 0, len(p.Holdings))
	for i, h := range p.Holdings {
		name := strings.TrimSpace(h.Name)
		if name == "" {
			return nil, fmt.Errorf("holding %d: missing name", i+1)
		}
		nominal, err := optionalAmount(h.Nominal, nf)
		if err != nil {
			return nil, fmt.Errorf("holding %q nominal: %w", name, err)
		}
		price, err := optionalAmount(h.Price, nf)
		if err != nil {
			return nil, fmt.Errorf("holding %q price: %w", name, err)
		}
		holdings = append(holdings, models.Holding{Name: name, Nominal: nominal, Price: price})
	}
	return holdings, nil
}

// Rate parses the exchange rate, see ParseExchangeRate.
func (p *Portfolio) Rate(nf NumberFormat) (decimal.Decimal, error) {
	return ParseExchangeRate(p.ExchangeRate, nf)
}

// StatementDate parses the date, returning the zero time when it is blank.
func (p *Portfolio) StatementDate() (time.Time, error) {
	return ParseDate(p.Date)
}

// ParseDate accepts ISO (2006-01-02) and day-first (02/01/2006) dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or DD/MM/YYYY)", s)
}

func optionalAmount(s string, nf NumberFormat) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseAmount(s, nf)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
