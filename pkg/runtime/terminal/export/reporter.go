package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/erp-tools/costboard/pkg/format"
	"github.com/erp-tools/costboard/pkg/models/domain"
)

// Reporter outputs dashboard summaries and simulation results to the
// console in a formatted text form
type Reporter struct {
	writer    io.Writer
	formatter *format.Formatter
}

func NewReporter(writer io.Writer, formatter *format.Formatter) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer, formatter: formatter}
}

func (c *Reporter) HandleSummary(summary *domain.CostSummary, top []domain.AggregateBucket) error {
	tmpl := `
Cost center: {{.Summary.CostCenter}}
Period: {{.Summary.Period.Start.Format "2006-01-02"}} to {{.Summary.Period.End.Format "2006-01-02"}}
Total: {{money .Summary.Total.Current}} ({{percent .Summary.Total.DeltaPercent}} vs previous period)
Items: {{.Summary.Count}}

=== By category ===
{{range .Summary.ByCategory}}
- {{.Key}}: {{money .Total}} ({{.Count}} items)
{{end}}
{{if .Top}}
=== Top groups ===
{{range .Top}}
- {{.Key}}: {{money .Total}}
{{end}}
{{end}}
`
	t, err := template.New("summary").Funcs(c.funcs()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, struct {
		Summary *domain.CostSummary
		Top     []domain.AggregateBucket
	}{summary, top})
}

func (c *Reporter) HandleSimulation(result *domain.SimulationResult) error {
	tmpl := `
Recipe {{.RecipeID}} simulation
Original total: {{money .OriginalTotal}}
Test total: {{money .TestTotal}} ({{money .TotalDelta}} delta)

{{range .Deltas}}
- [{{.Status}}] {{if .Name}}{{.Name}}{{else}}supply {{.SupplyID}}{{end}}: {{.OriginalQuantity}} -> {{.NewQuantity}} ({{percent .QuantityDeltaPercent}}), cost {{money .CostDelta}}
{{end}}
`
	t, err := template.New("simulation").Funcs(c.funcs()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, result)
}

func (c *Reporter) funcs() template.FuncMap {
	return template.FuncMap{
		"money":   c.formatter.Money,
		"percent": c.formatter.Percent,
	}
}
