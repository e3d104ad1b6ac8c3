// Package output renders admin CLI results either as styled terminal text
// or, with --json, as indented JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Printer writes to w. In JSON mode the message helpers stay silent and
// only data is written, so output can be piped into jq.
type Printer struct {
	w    io.Writer
	json bool
}

func New(w io.Writer, jsonMode bool) *Printer {
	return &Printer{w: w, json: jsonMode}
}

func (p *Printer) JSONMode() bool { return p.json }

func (p *Printer) line(style lipgloss.Style, icon, format string, args ...any) {
	if p.json {
		return
	}
	fmt.Fprintln(p.w, style.Render(icon)+" "+fmt.Sprintf(format, args...))
}

func (p *Printer) Success(format string, args ...any) { p.line(successStyle, "✓", format, args...) }
func (p *Printer) Warning(format string, args ...any) { p.line(warningStyle, "⚠", format, args...) }
func (p *Printer) Error(format string, args ...any)   { p.line(errorStyle, "✗", format, args...) }
func (p *Printer) Info(format string, args ...any)    { p.line(infoStyle, "ℹ", format, args...) }

// Section prints an underlined heading.
func (p *Printer) Section(title string) {
	if p.json {
		return
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, primaryStyle.Render(title))
	fmt.Fprintln(p.w, mutedStyle.Render(strings.Repeat("═", lipgloss.Width(title))))
}

// JSON writes v as indented JSON regardless of mode.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders rows under headers with a rounded border.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(p.w, mutedStyle.Render("(no rows)"))
		return
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(p.w, t.Render())
}

// Rows prints generic table rows from the inspector.
func (p *Printer) Rows(rows []repository.TableRow) error {
	if p.json {
		out := make([]map[string]string, len(rows))
		for i, r := range rows {
			out[i] = rowMap(r)
		}
		return p.JSON(out)
	}
	if len(rows) == 0 {
		p.Table(nil, nil)
		return nil
	}
	values := make([][]string, len(rows))
	for i, r := range rows {
		values[i] = r.Values
	}
	p.Table(rows[0].Columns, values)
	return nil
}

// Row prints a single row as a column/value listing.
func (p *Printer) Row(row *repository.TableRow) error {
	if p.json {
		return p.JSON(rowMap(*row))
	}
	pairs := make([][]string, len(row.Columns))
	for i, c := range row.Columns {
		pairs[i] = []string{c, row.Values[i]}
	}
	p.Table([]string{"column", "value"}, pairs)
	return nil
}

func rowMap(r repository.TableRow) map[string]string {
	m := make(map[string]string, len(r.Columns))
	for i, c := range r.Columns {
		m[c] = r.Values[i]
	}
	return m
}

// Summary prints the three dashboard series.
func (p *Printer) Summary(userID int64, days int, s *model.Summary) error {
	if p.json {
		return p.JSON(s)
	}

	p.Section(fmt.Sprintf("Summary for user %d, last %d days", userID, days))

	fmt.Fprintln(p.w, infoStyle.Render("Sleep"))
	sleep := make([][]string, len(s.Sleep))
	for i, e := range s.Sleep {
		quality := "-"
		if e.QualityScore != nil {
			quality = strconv.Itoa(*e.QualityScore)
		}
		sleep[i] = []string{e.Date, strconv.FormatFloat(e.Hours, 'f', 2, 64), quality}
	}
	p.Table([]string{"date", "hours", "quality"}, sleep)

	fmt.Fprintln(p.w, infoStyle.Render("Workouts"))
	workouts := make([][]string, len(s.WorkoutsPerDay))
	for i, e := range s.WorkoutsPerDay {
		workouts[i] = []string{e.Date, strconv.Itoa(e.Count), num(e.TotalWeight)}
	}
	p.Table([]string{"date", "count", "total weight"}, workouts)

	fmt.Fprintln(p.w, infoStyle.Render("Nutrition"))
	calories := make([][]string, len(s.CaloriesPerDay))
	for i, e := range s.CaloriesPerDay {
		calories[i] = []string{e.Date, num(e.Calories), num(e.Carbs), num(e.Fats), num(e.Protein)}
	}
	p.Table([]string{"date", "calories", "carbs", "fats", "protein"}, calories)
	return nil
}

// Foods prints catalog foods.
func (p *Printer) Foods(foods []model.Food) error {
	if p.json {
		return p.JSON(foods)
	}
	rows := make([][]string, len(foods))
	for i, f := range foods {
		rows[i] = []string{
			strconv.FormatInt(f.ID, 10), f.Name, f.Category,
			num(f.Calories), num(f.Carbs), num(f.Fats), num(f.Protein), num(f.ServingSizeGrams),
		}
	}
	p.Table([]string{"id", "name", "category", "kcal", "carbs", "fats", "protein", "serving g"}, rows)
	return nil
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
