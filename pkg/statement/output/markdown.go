package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/focusim/statement-go/pkg/statement/models"
)

const markdownTemplate = `# {{.Title}}

{{if .Client}}**Comitente:** {{.Client}}  
{{end}}{{if .Date}}**Fecha:** {{.Date}}  
{{end}}**Tipo de cambio:** {{.Rate}}

| {{join .Columns}} |
|{{range .Align}}{{.}}|{{end}}
{{range .Rows}}| {{row .}} |
{{end}}| {{bold .Footer}} |
{{if .Missing}}
_No encontrados en el catálogo:_ {{list .Missing}}
{{end}}`

var markdownTmpl = template.Must(template.New("statement").Funcs(template.FuncMap{
	"join": func(cells []string) string {
		return strings.Join(escapeCells(cells), " | ")
	},
	"bold": boldCells,
	"row": func(r tableRow) string {
		if r.Total {
			return boldCells(r.Cells)
		}
		return strings.Join(escapeCells(r.Cells), " | ")
	},
	"list": func(items []string) string {
		return strings.Join(escapeCells(items), ", ")
	},
}).Parse(markdownTemplate))

type markdownView struct {
	Title   string
	Client  string
	Date    string
	Rate    string
	Columns []string
	Align   []string
	Rows    []tableRow
	Footer  []string
	Missing []string
}

// ToMarkdown renders the statement as a Markdown document with a TOTALES footer.
func ToMarkdown(st *models.Statement, f Formatter) ([]byte, error) {
	view := markdownView{
		Title:   escape(st.Header.Title),
		Client:  escape(st.Header.Client),
		Date:    f.Date(st.Header.Date),
		Rate:    f.Rate(st.Valuation.ExchangeRate),
		Columns: Columns,
		Align:   []string{"---", "---:", "---:", "---:", "---:", "---:", "---:", "---", "---"},
		Rows:    f.table(st),
		Footer:  f.footer(st),
		Missing: st.Missing,
	}

	var buf bytes.Buffer
	if err := markdownTmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

func boldCells(cells []string) string {
	out := escapeCells(cells)
	for i, c := range out {
		if c != "" {
			out[i] = "**" + c + "**"
		}
	}
	return strings.Join(out, " | ")
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = escape(c)
	}
	return out
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "\n", " ")

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
