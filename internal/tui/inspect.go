// Package tui implements the interactive database inspector: pick a
// table, browse its rows, view one, delete with confirmation.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sakif/workoutify/internal/repository"
)

type Mode int

const (
	ModeTables Mode = iota
	ModeRows
	ModeDetail
	ModeConfirm
)

// InspectModel is the Bubbletea model behind `workoutify inspect`.
type InspectModel struct {
	ctx       context.Context
	inspector repository.Inspector

	mode    Mode
	tables  list.Model
	rows    list.Model
	table   string
	current *repository.TableRow
	confirm ConfirmationDialog
	status  string
	err     error
}

func NewInspectModel(ctx context.Context, inspector repository.Inspector) InspectModel {
	names := inspector.Tables()
	items := make([]list.Item, len(names))
	for i, n := range names {
		items[i] = tableItem(n)
	}

	tables := list.New(items, itemDelegate{}, 0, 0)
	tables.Title = "Workoutify tables"
	tables.SetShowStatusBar(false)
	tables.Styles.Title = titleStyle

	rows := list.New(nil, itemDelegate{}, 0, 0)
	rows.SetShowStatusBar(true)
	rows.Styles.Title = titleStyle

	return InspectModel{ctx: ctx, inspector: inspector, mode: ModeTables, tables: tables, rows: rows}
}

// Run starts the inspector in the terminal's alternate screen and blocks
// until the user quits.
func Run(ctx context.Context, inspector repository.Inspector) error {
	_, err := tea.NewProgram(NewInspectModel(ctx, inspector), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Messages
type rowsLoadedMsg struct {
	table string
	rows  []repository.TableRow
}

type rowDeletedMsg struct {
	table string
	id    int64
}

type errMsg struct{ err error }

type cancelMsg struct{}

// Commands
func (m InspectModel) loadRowsCmd(table string) tea.Cmd {
	return func() tea.Msg {
		rows, err := m.inspector.ListRows(m.ctx, table)
		if err != nil {
			return errMsg{err}
		}
		return rowsLoadedMsg{table: table, rows: rows}
	}
}

func (m InspectModel) deleteRowCmd(table string, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.inspector.DeleteRow(m.ctx, table, id); err != nil {
			return errMsg{err}
		}
		return rowDeletedMsg{table: table, id: id}
	}
}

func (m InspectModel) Init() tea.Cmd { return nil }

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.tables.SetSize(msg.Width-4, msg.Height-4)
		m.rows.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case rowsLoadedMsg:
		items := make([]list.Item, len(msg.rows))
		for i, r := range msg.rows {
			items[i] = rowItem{row: r}
		}
		m.table = msg.table
		m.rows.Title = msg.table
		cmd := m.rows.SetItems(items)
		m.mode = ModeRows
		return m, cmd

	case rowDeletedMsg:
		m.status = successStyle.Render(fmt.Sprintf("deleted %s #%d", msg.table, msg.id))
		m.err = nil
		m.current = nil
		return m, m.loadRowsCmd(msg.table)

	case errMsg:
		m.err = msg.err
		if m.mode == ModeConfirm {
			m.mode = ModeRows
		}
		return m, nil

	case cancelMsg:
		m.mode = ModeRows
		m.status = mutedStyle.Render("delete cancelled")
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeTables:
			return m.updateTables(msg)
		case ModeRows:
			return m.updateRows(msg)
		case ModeDetail:
			return m.updateDetail(msg)
		case ModeConfirm:
			return m, m.confirm.Update(msg)
		}
	}
	return m, nil
}

func (m InspectModel) updateTables(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tables.FilterState() != list.Filtering {
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "enter":
			if it, ok := m.tables.SelectedItem().(tableItem); ok {
				m.status, m.err = "", nil
				return m, m.loadRowsCmd(string(it))
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.tables, cmd = m.tables.Update(msg)
	return m, cmd
}

func (m InspectModel) updateRows(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.rows.FilterState() != list.Filtering {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc", "backspace":
			if m.rows.FilterState() == list.FilterApplied {
				break
			}
			m.mode = ModeTables
			m.status, m.err = "", nil
			return m, nil
		case "r":
			return m, m.loadRowsCmd(m.table)
		case "enter":
			if it, ok := m.rows.SelectedItem().(rowItem); ok {
				row := it.row
				m.current = &row
				m.mode = ModeDetail
			}
			return m, nil
		case "d", "delete":
			if it, ok := m.rows.SelectedItem().(rowItem); ok {
				row := it.row
				m.current = &row
				return m.askDelete()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m InspectModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.mode = ModeRows
	case "d", "delete":
		return m.askDelete()
	}
	return m, nil
}

func (m InspectModel) askDelete() (tea.Model, tea.Cmd) {
	table, id := m.table, m.current.ID
	m.confirm = NewConfirmationDialog(
		"Delete entry?",
		fmt.Sprintf("About to delete %s #%d. Rows that depend on it are deleted too.", table, id),
	)
	m.confirm.OnConfirm = func() tea.Cmd { return m.deleteRowCmd(table, id) }
	m.confirm.OnCancel = func() tea.Cmd { return func() tea.Msg { return cancelMsg{} } }
	m.mode = ModeConfirm
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	switch m.mode {
	case ModeTables:
		b.WriteString(m.tables.View())
		b.WriteString(helpStyle.Render(formatKey("enter", "open") + " • " + formatKey("/", "filter") + " • " + formatKey("q", "quit")))
	case ModeRows:
		b.WriteString(m.rows.View())
		b.WriteString(helpStyle.Render(formatKey("enter", "view") + " • " + formatKey("d", "delete") + " • " +
			formatKey("r", "reload") + " • " + formatKey("esc", "tables") + " • " + formatKey("q", "quit")))
	case ModeDetail:
		if m.current != nil {
			b.WriteString(rowDetail(m.table, *m.current))
		}
		b.WriteString(helpStyle.Render(formatKey("d", "delete") + " • " + formatKey("esc", "back") + " • " + formatKey("q", "quit")))
	case ModeConfirm:
		b.WriteString(m.confirm.View())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(dangerStyle.Render("✗ " + m.err.Error()))
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	return b.String()
}

// Mode reports the current screen; used by tests.
func (m InspectModel) Mode() Mode { return m.mode }
