package codec

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"paxflow/internal/core/flowgraph"
	"paxflow/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginTop(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF"))

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	negativeStyle = cellStyle.Foreground(lipgloss.Color("#FF5555"))
)

// TextCodec renders a report as styled console tables
type TextCodec struct{}

// NewTextCodec creates a new text codec
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Format returns the codec format identifier
func (c *TextCodec) Format() string {
	return "text"
}

// Export renders the report
func (c *TextCodec) Export(report *domain.Report, w io.Writer) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Passenger Flow Report"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("run %s at %s, anchor %s, %d records (%d skipped from graph)",
		report.RunID, report.GeneratedAt.Format("2006-01-02 15:04:05Z07:00"), report.Anchor,
		report.Stats.Total, report.Stats.GraphSkipped)))
	b.WriteString("\n")

	section(&b, "Flow edges", renderTable(
		[]string{"From", "To", "Passengers"},
		edgeRows(report.Edges),
		nil,
	))

	section(&b, "Centrality", renderTable(
		[]string{"Id", "Node", "Score"},
		centralityRows(report),
		nil,
	))

	section(&b, "Monthly totals", renderTable(
		[]string{"Period", "Passengers"},
		monthlyRows(report.Monthly),
		nil,
	))

	b.WriteString(mutedStyle.Render(fmt.Sprintf("trend: %s passengers/month, intercept %s",
		humanize.CommafWithDigits(report.Trend.Slope, 2),
		humanize.CommafWithDigits(report.Trend.Intercept, 2))))
	b.WriteString("\n")

	negative := make(map[int]bool)
	for i, fp := range report.Forecast {
		if fp.Passengers < 0 {
			negative[i] = true
		}
	}
	section(&b, "Forecast", renderTable(
		[]string{"Period", "Predicted"},
		forecastRows(report.Forecast),
		negative,
	))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}

func section(b *strings.Builder, title, body string) {
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
}

// renderTable draws rows under headers; rows listed in highlight use the negative style
func renderTable(headers []string, rows [][]string, highlight map[int]bool) string {
	if len(rows) == 0 {
		return mutedStyle.Render("(none)")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Bold(true)
			}
			if highlight[row] {
				return negativeStyle
			}
			return cellStyle
		})

	return t.Render()
}

func edgeRows(edges []domain.ReportEdge) [][]string {
	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []string{e.Source, e.Destination, commaUint(e.Weight)})
	}
	return rows
}

func centralityRows(report *domain.Report) [][]string {
	ids := make(map[string]int, len(report.Nodes))
	for _, n := range report.Nodes {
		ids[n.Label] = n.ID
	}

	ranked := flowgraph.CentralityTable(report.Centrality).Ranked()
	rows := make([][]string, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, []string{
			strconv.Itoa(ids[r.Label]),
			r.Label,
			humanize.CommafWithDigits(r.Score, 2),
		})
	}
	return rows
}

func monthlyRows(monthly []domain.MonthlyTotal) [][]string {
	rows := make([][]string, 0, len(monthly))
	for _, m := range monthly {
		rows = append(rows, []string{m.Period, commaUint(m.Passengers)})
	}
	return rows
}

func forecastRows(points []domain.ForecastPoint) [][]string {
	rows := make([][]string, 0, len(points))
	for _, fp := range points {
		rows = append(rows, []string{fp.Period, humanize.Comma(fp.Passengers)})
	}
	return rows
}

// commaUint formats the full uint64 range; humanize.Comma takes an int64
func commaUint(v uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(v))
}
