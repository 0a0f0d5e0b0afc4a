// Package valuation converts selected positions to USD and aggregates weights by group.
package valuation

import (
	"fmt"
	"strings"

	"github.com/focusim/statement-go/pkg/statement/models"
)

// DefaultPolicy is the ARS conversion applied when none is configured.
const DefaultPolicy = models.PolicyPriceTimesNominal

// ParsePolicy maps a configuration value to a policy. Empty selects DefaultPolicy.
func ParsePolicy(s string) (models.Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultPolicy, nil
	case string(models.PolicyPriceTimesNominal), "nominal*price":
		return models.PolicyPriceTimesNominal, nil
	case string(models.PolicyNominalOnly), "amount":
		return models.PolicyNominalOnly, nil
	default:
		return "", fmt.Errorf("invalid ARS policy %q (must be price or nominal)", s)
	}
}
