package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/api"
	"github.com/spec-kit/ticket-dashboard/internal/charts"
	"github.com/spec-kit/ticket-dashboard/internal/dashboard"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/store"
	"github.com/spec-kit/ticket-dashboard/internal/view"
)

// modal identifies which overlay, if any, is active.
type modal int

const (
	modalNone modal = iota
	modalCreate
	modalUpdate
)

// refreshDoneMsg signals that a fetch kicked off by this model
// finished; outcome details travel through the notification sink.
type refreshDoneMsg struct{}

// createDoneMsg carries the create flow outcome. On failure the form
// stays open with its values intact.
type createDoneMsg struct{ err error }

// updateDoneMsg carries the update flow outcome. On failure the modal
// stays open for retry.
type updateDoneMsg struct{ err error }

// noticeClearMsg clears the status-bar notice after a delay.
type noticeClearMsg struct{}

// noticeLifetime is how long a notice stays on the status bar.
const noticeLifetime = 4 * time.Second

// Model is the terminal dashboard. All on-screen views are recomputed
// from the store snapshot after every message; nothing derived is
// cached across updates.
type Model struct {
	ctrl   *dashboard.Controller
	store  *store.TicketStore
	logger *zap.Logger

	table       table.Model
	filterInput textinput.Model
	titleInput  textinput.Model
	descInput   textinput.Model
	spin        spinner.Model

	criteria view.Criteria
	pager    view.Pagination

	page          []domain.Ticket
	filteredCount int
	totalPages    int

	modal        modal
	updateTarget domain.Ticket
	updateChoice int
	filterFocus  bool
	descFocus    bool
	showCharts   bool

	notice    string
	noticeErr bool

	session string
	width   int
	now     func() time.Time
}

// NewModel constructs the dashboard model. session is the optional
// header line describing the current credential.
func NewModel(ctrl *dashboard.Controller, ticketStore *store.TicketStore, rowsPerPage int, session string, logger *zap.Logger) Model {
	columns := []table.Column{
		{Title: "Code", Width: 13},
		{Title: "Title", Width: 36},
		{Title: "Status", Width: 10},
		{Title: "Priority", Width: 10},
		{Title: "Created", Width: 12},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(rowsPerPage),
	)

	filterInput := textinput.New()
	filterInput.Placeholder = "search title, description, or code"
	filterInput.CharLimit = 120

	titleInput := textinput.New()
	titleInput.Placeholder = "title"
	titleInput.CharLimit = 200

	descInput := textinput.New()
	descInput.Placeholder = "description"
	descInput.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctrl:        ctrl,
		store:       ticketStore,
		logger:      logger,
		table:       t,
		filterInput: filterInput,
		titleInput:  titleInput,
		descInput:   descInput,
		spin:        sp,
		pager:       view.NewPagination(rowsPerPage),
		session:     session,
		now:         time.Now,
	}
}

// Init kicks off the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.spin.Tick)
}

func (m Model) refreshCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		// Errors surface through the notification sink; the fetch
		// leaves prior state untouched on failure.
		_ = ctrl.Refresh(context.Background())
		return refreshDoneMsg{}
	}
}

func (m Model) createCmd(input api.CreateTicketInput) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return createDoneMsg{err: ctrl.CreateTicket(context.Background(), input)}
	}
}

func (m Model) updateCmd(ticketID string, status domain.Status) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return updateDoneMsg{err: ctrl.UpdateStatus(context.Background(), ticketID, status)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)

	case NoticeMsg:
		m.notice = msg.Text
		m.noticeErr = msg.Err
		cmds = append(cmds, tea.Tick(noticeLifetime, func(time.Time) tea.Msg {
			return noticeClearMsg{}
		}))

	case noticeClearMsg:
		m.notice = ""
		m.noticeErr = false

	case refreshDoneMsg:
		// Derived views resync below.

	case createDoneMsg:
		if msg.err == nil {
			m.titleInput.SetValue("")
			m.descInput.SetValue("")
			m.titleInput.Blur()
			m.descInput.Blur()
			m.modal = modalNone
		}

	case updateDoneMsg:
		if msg.err == nil {
			m.modal = modalNone
		}

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)
	}

	m = m.syncDerived()
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.modal == modalCreate {
		return m.handleCreateKey(msg)
	}
	if m.modal == modalUpdate {
		return m.handleUpdateKey(msg)
	}
	if m.filterFocus {
		return m.handleFilterKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.refreshCmd()
	case "/":
		m.filterFocus = true
		return m, m.filterInput.Focus()
	case "s":
		m.criteria.Status = cycleStatus(m.criteria.Status)
		m.pager.Page = 1
	case "p":
		m.criteria.Priority = cyclePriority(m.criteria.Priority)
		m.pager.Page = 1
	case "[":
		m.pager.Prev()
	case "]":
		m.pager.Next(m.totalPages)
	case "+":
		m.pager.SetRowsPerPage(m.pager.RowsPerPage + 5)
		m.table.SetHeight(m.pager.RowsPerPage)
	case "-":
		m.pager.SetRowsPerPage(m.pager.RowsPerPage - 5)
		m.table.SetHeight(m.pager.RowsPerPage)
	case "c":
		m.showCharts = !m.showCharts
	case "n":
		m.modal = modalCreate
		m.descFocus = false
		m.descInput.Blur()
		return m, m.titleInput.Focus()
	case "u", "enter":
		if ticket, ok := m.selectedTicket(); ok {
			m.modal = modalUpdate
			m.updateTarget = ticket
			m.updateChoice = statusIndex(ticket.Status)
		}
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filterFocus = false
		m.filterInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.criteria.Search = m.filterInput.Value()
	m.pager.Page = 1
	return m, cmd
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Closing does not cancel an outstanding request; a late
		// result still lands through the sink.
		m.modal = modalNone
		m.titleInput.Blur()
		m.descInput.Blur()
		return m, nil
	case "tab":
		m.descFocus = !m.descFocus
		if m.descFocus {
			m.titleInput.Blur()
			return m, m.descInput.Focus()
		}
		m.descInput.Blur()
		return m, m.titleInput.Focus()
	case "enter":
		title := strings.TrimSpace(m.titleInput.Value())
		description := strings.TrimSpace(m.descInput.Value())
		if title == "" || description == "" || m.ctrl.Creating() {
			return m, nil
		}
		return m, m.createCmd(api.CreateTicketInput{Title: title, Description: description})
	}

	var cmd tea.Cmd
	if m.descFocus {
		m.descInput, cmd = m.descInput.Update(msg)
	} else {
		m.titleInput, cmd = m.titleInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleUpdateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return m, nil
	case "up", "k":
		m.updateChoice = (m.updateChoice + len(domain.Statuses) - 1) % len(domain.Statuses)
	case "down", "j":
		m.updateChoice = (m.updateChoice + 1) % len(domain.Statuses)
	case "enter":
		if m.ctrl.Updating() {
			return m, nil
		}
		return m, m.updateCmd(m.updateTarget.ID, domain.Statuses[m.updateChoice])
	}
	return m, nil
}

// syncDerived recomputes every view from the store snapshot: filtered
// list, pagination slice, and table rows.
func (m Model) syncDerived() Model {
	snapshot := m.store.Snapshot()
	filtered := view.Filter(snapshot, m.criteria)
	m.filteredCount = len(filtered)
	m.totalPages = view.TotalPages(m.filteredCount, m.pager.RowsPerPage)
	m.pager.Clamp(m.totalPages)
	m.page = view.Paginate(filtered, m.pager.Page, m.pager.RowsPerPage)

	rows := make([]table.Row, 0, len(m.page))
	for _, ticket := range m.page {
		rows = append(rows, table.Row{
			ticket.TicketID,
			ticket.Title,
			string(ticket.Status),
			string(ticket.Priority),
			ticket.CreatedAt.Format("2006-01-02"),
		})
	}
	m.table.SetRows(rows)
	return m
}

func (m Model) selectedTicket() (domain.Ticket, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.page) {
		return domain.Ticket{}, false
	}
	return m.page[cursor], true
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")

	if m.modal == modalCreate {
		b.WriteString(m.createModalView())
		return b.String()
	}
	if m.modal == modalUpdate {
		b.WriteString(m.updateModalView())
		return b.String()
	}

	b.WriteString(m.filterView())
	b.WriteString("\n")

	if m.showCharts {
		snapshot := m.store.Snapshot()
		b.WriteString(renderDistribution("Status", charts.StatusDistribution(snapshot)))
		b.WriteString("\n")
		b.WriteString(renderDistribution("Priority", charts.PriorityDistribution(snapshot)))
		b.WriteString("\n")
		b.WriteString(renderTrend(charts.MonthlyTrend(snapshot, m.now())))
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusBarView())
	return b.String()
}

func (m Model) headerView() string {
	stats := m.store.Stats()
	line := fmt.Sprintf("My Tickets  total %d  │  %s %d  %s %d  %s %d  %s %d  %s %d",
		stats.Total,
		StatusBadge(domain.StatusOpen).Render("open"), stats.Open,
		StatusBadge(domain.StatusPending).Render("pending"), stats.Pending,
		StatusBadge(domain.StatusSolved).Render("solved"), stats.Solved,
		StatusBadge(domain.StatusClosed).Render("closed"), stats.Closed,
		StatusBadge(domain.StatusBreached).Render("breached"), stats.Breached,
	)
	header := headerStyle.Render(line)
	if m.session != "" {
		header += "\n" + dimStyle.Render(m.session)
	}
	return header
}

func (m Model) filterView() string {
	parts := []string{"filter: " + m.filterInput.View()}
	if m.criteria.Status != nil {
		parts = append(parts, "status="+string(*m.criteria.Status))
	}
	if m.criteria.Priority != nil {
		parts = append(parts, "priority="+string(*m.criteria.Priority))
	}
	return strings.Join(parts, "  ")
}

func (m Model) statusBarView() string {
	pages := m.totalPages
	if pages < 1 {
		pages = 1
	}
	left := fmt.Sprintf("page %d/%d  %d of %d tickets", m.pager.Page, pages, len(m.page), m.filteredCount)
	if m.ctrl.Loading() {
		left = m.spin.View() + " fetching  " + left
	}

	if m.notice != "" {
		style := successStyle
		if m.noticeErr {
			style = errorStyle
		}
		left += "   " + style.Render(m.notice)
	}

	help := dimStyle.Render("r refresh  / search  s status  p priority  [ ] page  +/- rows  n new  u update  c charts  q quit")
	return left + "\n" + help
}

func (m Model) createModalView() string {
	busy := ""
	if m.ctrl.Creating() {
		busy = "\n" + m.spin.View() + " submitting..."
	}
	body := fmt.Sprintf("New ticket\n\ntitle: %s\ndescription: %s%s\n\n%s",
		m.titleInput.View(),
		m.descInput.View(),
		busy,
		dimStyle.Render("tab switch field  enter submit  esc close"),
	)
	return modalStyle.Render(body)
}

func (m Model) updateModalView() string {
	var choices []string
	for i, status := range domain.Statuses {
		marker := "  "
		if i == m.updateChoice {
			marker = "> "
		}
		choices = append(choices, marker+StatusBadge(status).Render(string(status)))
	}
	busy := ""
	if m.ctrl.Updating() {
		busy = "\n" + m.spin.View() + " submitting..."
	}
	body := fmt.Sprintf("Update %s\n%s\n\n%s%s\n\n%s",
		m.updateTarget.TicketID,
		dimStyle.Render(m.updateTarget.Title),
		lipgloss.JoinVertical(lipgloss.Left, choices...),
		busy,
		dimStyle.Render("j/k select  enter submit  esc close"),
	)
	return modalStyle.Render(body)
}

func cycleStatus(current *domain.Status) *domain.Status {
	if current == nil {
		status := domain.Statuses[0]
		return &status
	}
	for i, status := range domain.Statuses {
		if status == *current {
			if i == len(domain.Statuses)-1 {
				return nil
			}
			next := domain.Statuses[i+1]
			return &next
		}
	}
	return nil
}

func cyclePriority(current *domain.Priority) *domain.Priority {
	if current == nil {
		priority := domain.Priorities[0]
		return &priority
	}
	for i, priority := range domain.Priorities {
		if priority == *current {
			if i == len(domain.Priorities)-1 {
				return nil
			}
			next := domain.Priorities[i+1]
			return &next
		}
	}
	return nil
}

func statusIndex(status domain.Status) int {
	for i, known := range domain.Statuses {
		if known == status {
			return i
		}
	}
	return 0
}
