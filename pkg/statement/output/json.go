package output

import (
	"encoding/json"

	"github.com/focusim/statement-go/pkg/statement/models"
)

// ToJSON serializes a statement.
func ToJSON(st *models.Statement, pretty bool) ([]byte, error) {
	return marshal(st, pretty)
}

// CatalogToJSON serializes a parsed catalog, group markers included.
func CatalogToJSON(c *models.Catalog, pretty bool) ([]byte, error) {
	return marshal(c, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
