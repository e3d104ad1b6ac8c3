package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sakif/workoutify/internal/repository"
)

// ConfirmationDialog is a yes/no prompt. No is selected initially so an
// accidental enter never deletes anything.
type ConfirmationDialog struct {
	Title       string
	Message     string
	YesSelected bool
	OnConfirm   func() tea.Cmd
	OnCancel    func() tea.Cmd
}

func NewConfirmationDialog(title, message string) ConfirmationDialog {
	return ConfirmationDialog{Title: title, Message: message}
}

func (d *ConfirmationDialog) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "left", "h", "y":
		d.YesSelected = true
	case "right", "l", "n":
		d.YesSelected = false
	case "esc", "q":
		if d.OnCancel != nil {
			return d.OnCancel()
		}
	case "enter":
		if d.YesSelected && d.OnConfirm != nil {
			return d.OnConfirm()
		}
		if !d.YesSelected && d.OnCancel != nil {
			return d.OnCancel()
		}
	}
	return nil
}

func (d ConfirmationDialog) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	yes := inactiveButtonStyle.Render("Yes")
	no := inactiveButtonStyle.Render("No")
	if d.YesSelected {
		yes = activeButtonStyle.Render("Yes")
	} else {
		no = activeButtonStyle.Render("No")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, yes, "  ", no))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(formatKey("←/→", "choose") + " • " + formatKey("enter", "confirm") + " • " + formatKey("esc", "cancel")))

	return boxStyle.Render(b.String())
}

// tableItem is one entry of the table picker.
type tableItem string

func (i tableItem) FilterValue() string { return string(i) }
func (i tableItem) Title() string       { return string(i) }
func (i tableItem) Description() string { return "" }

// rowItem is one row of the selected table.
type rowItem struct {
	row repository.TableRow
}

func (i rowItem) FilterValue() string { return strings.Join(i.row.Values, " ") }
func (i rowItem) Title() string       { return fmt.Sprintf("#%d", i.row.ID) }

// Description previews the first few non-key columns.
func (i rowItem) Description() string {
	var parts []string
	for c := 1; c < len(i.row.Columns) && len(parts) < 4; c++ {
		parts = append(parts, i.row.Columns[c]+"="+i.row.Values[c])
	}
	return strings.Join(parts, "  ")
}

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 2 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(list.DefaultItem)
	if !ok {
		return
	}

	title := "  " + it.Title()
	style := unselectedItemStyle
	if index == m.Index() {
		title = "▸ " + it.Title()
		style = selectedItemStyle
	}
	_, _ = fmt.Fprint(w, style.Render(title)+"\n"+mutedStyle.Render("    "+it.Description()))
}

// rowDetail renders every column of a row.
func rowDetail(table string, row repository.TableRow) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s #%d", table, row.ID)))
	b.WriteString("\n")
	for i, c := range row.Columns {
		b.WriteString(columnNameStyle.Render(c))
		b.WriteString(row.Values[i])
		b.WriteString("\n")
	}
	return boxStyle.Render(b.String())
}
