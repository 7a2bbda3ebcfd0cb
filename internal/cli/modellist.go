package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/curatr/internal/controller"
	"github.com/inovacc/curatr/internal/model"
	"github.com/inovacc/curatr/internal/notify"
	"github.com/inovacc/curatr/internal/permission"
	"github.com/inovacc/curatr/internal/poller"
)

// listColumn ties a table column to its controller identifier.
type listColumn struct {
	id    string
	key   string
	title string
	width int
}

var listColumns = []listColumn{
	{id: "id", key: model.SortByID, title: "ID", width: 6},
	{id: "name", key: model.SortByName, title: "Name", width: 24},
	{id: "description", key: model.SortByDescription, title: "Description", width: 32},
	{id: "versions", key: model.SortByNumVersions, title: "Versions", width: 8},
	{id: "lastUpdated", key: model.SortByLastUpdated, title: "Last Updated", width: 17},
}

type filterKind int

const (
	filterNone filterKind = iota
	filterName
	filterDescription
	filterLabels
	filterUsers
)

type listSnapshotMsg controller.ListSnapshot

// ModelListModel is the TUI model for the registry model list page.
type ModelListModel struct {
	ctrl   *controller.ListController
	user   model.User
	events *notify.Memory

	ctx      context.Context
	cancel   context.CancelFunc
	stopPoll func()

	table   table.Model
	input   textinput.Model
	editing filterKind
	confirm *confirmState

	snap  controller.ListSnapshot
	snaps chan controller.ListSnapshot

	selected *model.ModelItem
	quitting bool
	width    int
	height   int
}

// NewModelList creates the list page. The page starts its own poller and
// cancels all in-flight requests on teardown.
func NewModelList(ctrl *controller.ListController, user model.User, events *notify.Memory, pollEvery time.Duration) ModelListModel {
	ctx, cancel := context.WithCancel(context.Background())

	columns := make([]table.Column, len(listColumns))
	for i, col := range listColumns {
		columns[i] = table.Column{Title: col.title, Width: col.width}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(model.DefaultPageLimit),
	)

	t.SetStyles(defaultTableStyles())

	ti := textinput.New()
	ti.CharLimit = 128

	m := ModelListModel{
		ctrl:   ctrl,
		user:   user,
		events: events,
		ctx:    ctx,
		cancel: cancel,
		table:  t,
		input:  ti,
		snap:   ctrl.Snapshot(),
		snaps:  make(chan controller.ListSnapshot, 16),
	}

	ctrl.Subscribe(func(s controller.ListSnapshot) {
		select {
		case m.snaps <- s:
		default:
		}
	})

	p := poller.New(pollEvery)
	m.stopPoll = p.Start(ctx, ctrl.Refresh)

	return m
}

// Selected returns the model the user opened, if any.
func (m ModelListModel) Selected() *model.ModelItem {
	return m.selected
}

func (m ModelListModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.waitSnapshot())
}

func (m ModelListModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.Refresh(m.ctx)

		return nil
	}
}

func (m ModelListModel) waitSnapshot() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.snaps
		if !ok {
			return nil
		}

		return listSnapshotMsg(s)
	}
}

func (m ModelListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - h)
		m.table.SetHeight(msg.Height - v - 6)

		return m, nil

	case listSnapshotMsg:
		m.snap = controller.ListSnapshot(msg)
		m.table.SetRows(listRows(m.snap.Models))

		return m, m.waitSnapshot()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd

	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ModelListModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		cmd, done := m.confirm.handleKey(msg)
		if done {
			m.confirm = nil
		}

		return m, cmd
	}

	if m.editing != filterNone {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m.teardown()

	case "enter":
		if item, ok := m.selectedItem(); ok {
			m.selected = &item

			return m.teardown()
		}

		return m, nil

	case "/":
		return m.startFilter(filterName, "filter by name", m.snap.Settings.Name), nil

	case "f":
		return m.startFilter(filterDescription, "filter by description", m.snap.Settings.Description), nil

	case "t":
		return m.startFilter(filterLabels, "filter by labels (comma-separated)", strings.Join(m.snap.Settings.Labels, ",")), nil

	case "u":
		return m.startFilter(filterUsers, "filter by users (comma-separated)", strings.Join(m.snap.Settings.Users, ",")), nil

	case "a":
		archived := !m.snap.Settings.Archived

		return m, m.controllerCmd(func() { _ = m.ctrl.SetArchived(m.ctx, archived) })

	case "1", "2", "3", "4", "5":
		idx, _ := strconv.Atoi(msg.String())

		return m, m.sortCmd(listColumns[idx-1])

	case "right", "n":
		offset := m.snap.Settings.Offset + m.snap.Settings.Limit
		if offset < m.snap.Total {
			return m, m.controllerCmd(func() { _ = m.ctrl.SetPage(m.ctx, offset) })
		}

		return m, nil

	case "left", "p":
		offset := max(m.snap.Settings.Offset-m.snap.Settings.Limit, 0)

		return m, m.controllerCmd(func() { _ = m.ctrl.SetPage(m.ctx, offset) })

	case "+":
		return m, m.controllerCmd(func() { _ = m.ctrl.SetPageSize(m.ctx, m.snap.Settings.Limit+10) })

	case "-":
		if limit := m.snap.Settings.Limit - 10; limit > 0 {
			return m, m.controllerCmd(func() { _ = m.ctrl.SetPageSize(m.ctx, limit) })
		}

		return m, nil

	case "[":
		return m, m.controllerCmd(func() { _ = m.ctrl.Back(m.ctx) })

	case "]":
		return m, m.controllerCmd(func() { _ = m.ctrl.Forward(m.ctx) })

	case "A":
		if item, ok := m.selectedItem(); ok {
			verb := "Archive"
			if item.Archived {
				verb = "Unarchive"
			}

			m.confirm = newConfirm(
				fmt.Sprintf("%s model %q?", verb, item.Name),
				func() tea.Cmd {
					return m.controllerCmd(func() { m.ctrl.ToggleArchive(m.ctx, item) })
				},
			)
		}

		return m, nil

	case "D":
		item, ok := m.selectedItem()
		if !ok || !permission.CanDeleteModel(m.user, item.Username) {
			return m, nil
		}

		m.confirm = newConfirm(
			fmt.Sprintf("Delete model %q and all its versions?", item.Name),
			func() tea.Cmd {
				return m.controllerCmd(func() { m.ctrl.DeleteModel(m.ctx, item.ID) })
			},
		)

		return m, nil

	case "r":
		return m, m.refreshCmd()
	}

	var cmd tea.Cmd

	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ModelListModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		kind := m.editing
		value := m.input.Value()
		m.editing = filterNone
		m.input.Blur()

		return m, m.controllerCmd(func() { m.applyFilter(kind, value) })

	case "esc":
		m.editing = filterNone
		m.input.Blur()

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m ModelListModel) applyFilter(kind filterKind, value string) {
	switch kind {
	case filterName:
		_ = m.ctrl.SetNameFilter(m.ctx, value)
	case filterDescription:
		_ = m.ctrl.SetDescriptionFilter(m.ctx, value)
	case filterLabels:
		_ = m.ctrl.SetLabelFilter(m.ctx, splitCSV(value))
	case filterUsers:
		_ = m.ctrl.SetUserFilter(m.ctx, splitCSV(value))
	case filterNone:
	}
}

func (m ModelListModel) startFilter(kind filterKind, placeholder, current string) ModelListModel {
	m.editing = kind
	m.input.Placeholder = placeholder
	m.input.SetValue(current)
	m.input.Focus()

	return m
}

// sortCmd emulates a column-header click: same column toggles direction,
// a new column starts ascending.
func (m ModelListModel) sortCmd(col listColumn) tea.Cmd {
	order := "ascend"
	if m.snap.Settings.SortKey == col.key && !m.snap.Settings.SortDesc {
		order = controller.OrderDescend
	}

	return m.controllerCmd(func() { _ = m.ctrl.SortBy(m.ctx, col.id, order) })
}

// controllerCmd runs a controller call off the UI loop. Resulting state
// arrives back as a snapshot message.
func (m ModelListModel) controllerCmd(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()

		return nil
	}
}

func (m ModelListModel) selectedItem() (model.ModelItem, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.snap.Models) {
		return model.ModelItem{}, false
	}

	return m.snap.Models[idx], true
}

func (m ModelListModel) teardown() (tea.Model, tea.Cmd) {
	m.quitting = true

	// Abort all in-flight requests and stop polling.
	m.cancel()
	m.stopPoll()

	return m, tea.Quit
}

func (m ModelListModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Model Registry"))
	b.WriteString("\n")
	b.WriteString(m.headerLine())
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.footerLine())

	if m.editing != filterNone {
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}

	if m.confirm != nil {
		b.WriteString("\n")
		b.WriteString(m.confirm.view())
	}

	if ev, ok := m.events.Latest(); ok {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(fmt.Sprintf("! %s: %v", ev.Message, ev.Err)))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter open · / name · f desc · t labels · u users · a archived · 1-5 sort · n/p page · +/- size · [ ] history · A archive · D delete · q quit"))

	return docStyle.Render(b.String())
}

// headerLine shows the active sort and filters. The indicator is derived
// solely from the persisted settings.
func (m ModelListModel) headerLine() string {
	vs := m.snap.Settings

	dir := "↑"
	if vs.SortDesc {
		dir = "↓"
	}

	parts := []string{fmt.Sprintf("sort: %s %s", vs.SortKey, dir)}

	if vs.Name != "" {
		parts = append(parts, "name~"+vs.Name)
	}

	if vs.Description != "" {
		parts = append(parts, "desc~"+vs.Description)
	}

	if len(vs.Labels) > 0 {
		parts = append(parts, "labels:"+strings.Join(vs.Labels, ","))
	}

	if len(vs.Users) > 0 {
		parts = append(parts, "users:"+strings.Join(vs.Users, ","))
	}

	if vs.Archived {
		parts = append(parts, "archived shown")
	}

	line := strings.Join(parts, " · ")

	if m.snap.Loading {
		line += statusStyle.Render("  fetching…")
	}

	return line
}

func (m ModelListModel) footerLine() string {
	vs := m.snap.Settings

	from := vs.Offset + 1
	to := min(vs.Offset+vs.Limit, m.snap.Total)

	if m.snap.Total == 0 {
		from = 0
	}

	return fmt.Sprintf("%d-%d of %d · page size %d", from, to, m.snap.Total, vs.Limit)
}

func listRows(models []model.ModelItem) []table.Row {
	rows := make([]table.Row, len(models))

	for i, item := range models {
		name := item.Name
		if item.Archived {
			name += archivedBadge.Render("archived")
		}

		rows[i] = table.Row{
			strconv.Itoa(item.ID),
			name,
			item.Description,
			strconv.Itoa(item.NumVersions),
			item.LastUpdatedTime.Format("2006-01-02 15:04"),
		}
	}

	return rows
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
