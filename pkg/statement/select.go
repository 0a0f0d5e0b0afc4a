package statement

import (
	"strings"

	"github.com/focusim/statement-go/pkg/statement/models"
)

// Select resolves holdings against the catalog.
// Positions come back in catalog order. A holding without nominal or price
// takes the value found in the catalog row. When the catalog repeats a name
// the first instrument wins; when holdings repeat a name the first holding wins.
// Names absent from the catalog are returned in missing.
func Select(catalog *models.Catalog, holdings []models.Holding) (positions []models.Position, missing []string) {
	byName := make(map[string]models.Holding, len(holdings))
	for _, h := range holdings {
		key := strings.TrimSpace(h.Name)
		if _, seen := byName[key]; seen {
			continue
		}
		byName[key] = h
		if _, ok := catalog.Lookup(key); !ok {
			missing = append(missing, key)
		}
	}

	used := make(map[string]bool, len(byName))
	for _, in := range catalog.Instruments() {
		key := strings.TrimSpace(in.Name)
		h, ok := byName[key]
		if !ok || used[key] {
			continue
		}
		used[key] = true

		p := models.Position{Instrument: in, Nominal: in.Nominal, Price: in.Price}
		if h.Nominal != nil {
			p.Nominal = *h.Nominal
		}
		if h.Price != nil {
			p.Price = *h.Price
		}
		positions = append(positions, p)
	}
	return positions, missing
}

// AllHoldings selects every catalog instrument at its sheet nominal and price.
func AllHoldings(catalog *models.Catalog) []models.Holding {
	instruments := catalog.Instruments()
	holdings := make([]models.Holding, len(instruments))
	for i, in := range instruments {
		holdings[i] = models.Holding{Name: in.Name}
	}
	return holdings
}
