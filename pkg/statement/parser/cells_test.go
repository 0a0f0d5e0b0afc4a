package parser

import (
	"path/filepath"
	"testing"

	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/xuri/excelize/v2"
)

func TestExtractRows(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Activo")
	f.SetCellValue(sheetName, "B1", "Moneda")
	f.SetCellValue(sheetName, "A2", "Bonos")
	f.SetCellValue(sheetName, "A4", "AL30")
	f.SetCellValue(sheetName, "B4", "USD")
	f.SetCellValue(sheetName, "C4", 200.5)

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	rows, err := ExtractRows(f2, sheetName)
	if err != nil {
		t.Fatalf("ExtractRows failed: %v", err)
	}

	// Blank row 3 is kept so indices stay aligned with the sheet
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	if rows[2].Index != 3 || !rows[2].IsBlank() {
		t.Errorf("Expected blank row 3, got %+v", rows[2])
	}
	if rows[1].At(0).String() != "Bonos" || !rows[1].At(1).IsEmpty() {
		t.Errorf("Unexpected group row: %+v", rows[1])
	}
	if c := rows[3].At(2); c.Kind != models.CellNumber || c.Number != 200.5 {
		t.Errorf("Expected number 200.5, got %+v", c)
	}
}

func TestResolveSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Cartera"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}

	tests := []struct {
		name     string
		expected string
		wantErr  bool
	}{
		{"", "Sheet1", false},
		{"cartera", "Cartera", false},
		{"Missing", "", true},
	}

	for _, tt := range tests {
		got, err := ResolveSheet(f, tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ResolveSheet(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ResolveSheet(%q) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Cell
	}{
		{"123", models.Cell{Kind: models.CellNumber, Number: 123, Text: "123"}},
		{"123.45", models.Cell{Kind: models.CellNumber, Number: 123.45, Text: "123.45"}},
		{"-100", models.Cell{Kind: models.CellNumber, Number: -100, Text: "-100"}},
		{" USD ", models.Text("USD")},
		{"Inf", models.Text("Inf")},
		{"", models.Empty()},
		{"   ", models.Empty()},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %+v, expected %+v", tt.input, result, tt.expected)
		}
	}
}
