package statement

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// catalogRows mirrors the reference catalog: a header, group rows with only
// the Activo cell, and instrument rows.
var catalogRows = [][]interface{}{
	{"Activo", "Ticker", "Moneda", "Benchmark Específico", "Benchmark General"},
	{"Bonos Soberanos"},
	{"Bonar 2030", "AL30", "ARS", "Bonos CER", "Renta Fija"},
	{"Global 2030", "GD30", "USD", "Bonos Hard Dollar", "Renta Fija"},
	{},
	{"Acciones"},
	{"Apple CEDEAR", "AAPL", "ARS", "S&P 500", "Renta Variable"},
	{"Vista Energy", "VIST", "USD", "Merval", "Renta Variable"},
	{"", "BAD", "USD"},
}

// workbookBytes builds an xlsx with the given rows starting at A1 of Sheet1.
func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

// writeWorkbook saves rows to an xlsx file in a temp dir and returns its path.
func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, os.WriteFile(path, workbookBytes(t, rows), 0o644))
	return path
}
