package render

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/yigit/extension-registry/internal/app/models"
)

// DefaultWidth is the console width charts and markdown are laid out for
const DefaultWidth = 80

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Title renders a section heading
func Title(text string) string {
	return titleStyle.Render(text)
}

// Success renders a confirmation line
func Success(text string) string {
	return successStyle.Render(text)
}

// Warning renders a warning line
func Warning(text string) string {
	return warningStyle.Render("Warning: " + text)
}

// Error renders an error line
func Error(text string) string {
	return errorStyle.Render("Error: " + text)
}

// Table renders rows under headers with a rounded border
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// QueryTable renders the result set of a generated statement, or its command tag when
// the statement returned no rows.
func QueryTable(result *models.QueryResult) string {
	if !result.HasRows() {
		tag := result.CommandTag
		if tag == "" {
			tag = "OK"
		}
		return mutedStyle.Render(fmt.Sprintf("Statement executed with no result set (%s).", tag))
	}

	rows := make([][]string, 0, len(result.Rows))
	for _, values := range result.Rows {
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = FormatValue(v)
		}
		rows = append(rows, row)
	}
	return Table(result.Columns, rows) + "\n" + mutedStyle.Render(fmt.Sprintf("%d row(s)", len(rows)))
}

// FormatValue renders one database value for display
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	case driver.Valuer:
		// pgtype values such as Numeric and Date carry their text form in Value
		dv, err := val.Value()
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return FormatValue(dv)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// BarChart draws a report as horizontal bars scaled to the largest value
func BarChart(report *models.Report, width int) string {
	var b strings.Builder
	b.WriteString(Title(report.Title))
	b.WriteString("\n")

	if len(report.Rows) == 0 {
		b.WriteString(mutedStyle.Render("(no data)"))
		return b.String()
	}

	labelWidth, maxValue := 0, 0
	for _, row := range report.Rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Label))
		maxValue = max(maxValue, row.Value)
	}
	labelWidth = min(labelWidth, width/3)
	barWidth := max(width-labelWidth-12, 10)

	for _, row := range report.Rows {
		length := 0
		if maxValue > 0 {
			length = row.Value * barWidth / maxValue
		}
		if row.Value > 0 && length == 0 {
			length = 1
		}
		fmt.Fprintf(&b, "%s %s %d\n",
			padRight(truncate(row.Label, labelWidth), labelWidth),
			barStyle.Render(strings.Repeat("█", length)),
			row.Value,
		)
	}
	b.WriteString(mutedStyle.Render("values: " + report.ValueName))
	return b.String()
}

// Markdown renders generated markdown for the terminal, falling back to the raw text
func Markdown(text string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
