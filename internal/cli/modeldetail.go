package cli

import (
	"context"
	"fmt"
	"log/slog"
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
	"github.com/inovacc/curatr/internal/registry"
)

type editKind int

const (
	editNone editKind = iota
	editDescription
	editLabels
	editVersionLabels
)

type detailSnapshotMsg controller.DetailSnapshot

// navigateAwayMsg is emitted after the model itself was deleted.
type navigateAwayMsg struct{}

// ModelDetailModel is the TUI model for the model detail page.
type ModelDetailModel struct {
	ctrl   *controller.DetailController
	user   model.User
	events *notify.Memory

	ctx      context.Context
	cancel   context.CancelFunc
	stopPoll func()

	table   table.Model
	input   textinput.Model
	editing editKind
	editVer int
	confirm *confirmState

	snap  controller.DetailSnapshot
	snaps chan controller.DetailSnapshot
	nav   chan struct{}

	deleted  bool
	quitting bool
}

// NewModelDetail creates the detail page for one model. The page owns its
// controller; deleting the model navigates back to the caller.
func NewModelDetail(api registry.API, modelID int, user model.User, events *notify.Memory, pollEvery time.Duration, logger *slog.Logger) ModelDetailModel {
	ctx, cancel := context.WithCancel(context.Background())

	nav := make(chan struct{}, 1)

	ctrl := controller.NewDetailController(api, modelID, controller.DetailControllerOptions{
		Logger:   logger,
		Notifier: notify.Multi{notify.NewSlog(logger), events},
		NavigateAway: func() {
			select {
			case nav <- struct{}{}:
			default:
			}
		},
	})

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "V", Width: 4},
			{Title: "Name", Width: 24},
			{Title: "Labels", Width: 24},
			{Title: "Uploader", Width: 12},
			{Title: "Last Updated", Width: 17},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(defaultTableStyles())

	ti := textinput.New()
	ti.CharLimit = 256

	m := ModelDetailModel{
		ctrl:   ctrl,
		user:   user,
		events: events,
		ctx:    ctx,
		cancel: cancel,
		table:  t,
		input:  ti,
		snaps:  make(chan controller.DetailSnapshot, 16),
		nav:    nav,
	}

	ctrl.Subscribe(func(s controller.DetailSnapshot) {
		select {
		case m.snaps <- s:
		default:
		}
	})

	p := poller.New(pollEvery)
	m.stopPoll = p.Start(ctx, ctrl.Refresh)

	return m
}

// Deleted reports whether the page was left because the model was deleted.
func (m ModelDetailModel) Deleted() bool {
	return m.deleted
}

func (m ModelDetailModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.waitSnapshot(), m.waitNavigate())
}

func (m ModelDetailModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.Refresh(m.ctx)

		return nil
	}
}

func (m ModelDetailModel) waitSnapshot() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.snaps
		if !ok {
			return nil
		}

		return detailSnapshotMsg(s)
	}
}

func (m ModelDetailModel) waitNavigate() tea.Cmd {
	return func() tea.Msg {
		<-m.nav

		return navigateAwayMsg{}
	}
}

func (m ModelDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.table.SetWidth(msg.Width - h)
		m.table.SetHeight(msg.Height - v - 10)

		return m, nil

	case detailSnapshotMsg:
		m.snap = controller.DetailSnapshot(msg)
		m.table.SetRows(versionRows(m.snap.Versions))

		return m, m.waitSnapshot()

	case navigateAwayMsg:
		m.deleted = true

		return m.teardown()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd

	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ModelDetailModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		cmd, done := m.confirm.handleKey(msg)
		if done {
			m.confirm = nil
		}

		return m, cmd
	}

	if m.editing != editNone {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m.teardown()

	case "e":
		if permission.CanEditModel(m.user, m.snap.Model.Username) {
			return m.startEdit(editDescription, "description", m.snap.Model.Description), nil
		}

		return m, nil

	case "l":
		if permission.CanEditModel(m.user, m.snap.Model.Username) {
			return m.startEdit(editLabels, "labels (comma-separated)", strings.Join(m.snap.Model.Labels, ",")), nil
		}

		return m, nil

	case "v":
		ver, ok := m.selectedVersion()
		if !ok {
			return m, nil
		}

		m.editVer = ver.ID

		return m.startEdit(editVersionLabels, "version labels (comma-separated)", strings.Join(ver.Labels, ",")), nil

	case "x":
		ver, ok := m.selectedVersion()
		if !ok || !permission.CanDeleteVersion(m.user, m.snap.Model.Username, ver.Username) {
			return m, nil
		}

		m.confirm = newConfirm(
			fmt.Sprintf("Delete version %d of %q?", ver.Version, m.snap.Model.Name),
			func() tea.Cmd {
				return m.controllerCmd(func() { m.ctrl.DeleteVersion(m.ctx, ver.ID) })
			},
		)

		return m, nil

	case "D":
		if !permission.CanDeleteModel(m.user, m.snap.Model.Username) {
			return m, nil
		}

		m.confirm = newConfirm(
			fmt.Sprintf("Delete model %q and all its versions?", m.snap.Model.Name),
			func() tea.Cmd {
				return m.controllerCmd(func() { m.ctrl.DeleteModel(m.ctx) })
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

func (m ModelDetailModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		kind := m.editing
		value := m.input.Value()
		verID := m.editVer
		m.editing = editNone
		m.input.Blur()

		return m, m.controllerCmd(func() {
			switch kind {
			case editDescription:
				m.ctrl.UpdateDescription(m.ctx, value)
			case editLabels:
				m.ctrl.UpdateLabels(m.ctx, splitCSV(value))
			case editVersionLabels:
				m.ctrl.UpdateVersionLabels(m.ctx, verID, splitCSV(value))
			case editNone:
			}
		})

	case "esc":
		m.editing = editNone
		m.input.Blur()

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m ModelDetailModel) startEdit(kind editKind, placeholder, current string) ModelDetailModel {
	m.editing = kind
	m.input.Placeholder = placeholder
	m.input.SetValue(current)
	m.input.Focus()

	return m
}

func (m ModelDetailModel) controllerCmd(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()

		return nil
	}
}

func (m ModelDetailModel) selectedVersion() (model.ModelVersion, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.snap.Versions) {
		return model.ModelVersion{}, false
	}

	return m.snap.Versions[idx], true
}

func (m ModelDetailModel) teardown() (tea.Model, tea.Cmd) {
	m.quitting = true

	// Abort all in-flight requests and stop polling.
	m.cancel()
	m.stopPoll()

	return m, tea.Quit
}

func (m ModelDetailModel) View() string {
	if m.quitting {
		return ""
	}

	if msg := m.snap.ErrorMessage(m.ctrl.ModelID()); msg != "" {
		return docStyle.Render(errorStyle.Render(msg))
	}

	var b strings.Builder

	item := m.snap.Model

	title := item.Name
	if item.Archived {
		title += archivedBadge.Render("archived")
	}

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("owner: %s · versions: %d · updated: %s",
		item.Username, item.NumVersions, item.LastUpdatedTime.Format("2006-01-02 15:04")))
	b.WriteString("\n")

	if item.Description != "" {
		b.WriteString(item.Description)
		b.WriteString("\n")
	}

	if len(item.Labels) > 0 {
		b.WriteString("labels: " + strings.Join(item.Labels, ", "))
		b.WriteString("\n")
	}

	if m.snap.Loading {
		b.WriteString(statusStyle.Render("fetching…"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.table.View())

	if m.editing != editNone {
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
	b.WriteString(helpStyle.Render("e description · l labels · v version labels · x delete version · D delete model · r refresh · q back"))

	return docStyle.Render(b.String())
}

func versionRows(versions []model.ModelVersion) []table.Row {
	rows := make([]table.Row, len(versions))

	for i, v := range versions {
		rows[i] = table.Row{
			strconv.Itoa(v.Version),
			v.Name,
			strings.Join(v.Labels, ","),
			v.Username,
			v.LastUpdatedTime.Format("2006-01-02 15:04"),
		}
	}

	return rows
}
