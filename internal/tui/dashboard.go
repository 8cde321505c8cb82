// Package tui renders the live console dashboard: the terminal stand-in for
// the authenticated application shell. The view holds no fetching logic of
// its own; it consumes the shared values published by the providers and
// re-renders on every transition.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xeonx/timeago"

	"github.com/cyberb/web/internal/api"
	"github.com/cyberb/web/internal/shared"
	"github.com/cyberb/web/internal/tui/colors"
)

// StatusMsg delivers a published status transition into the view.
type StatusMsg shared.Value[api.ServiceStatus]

// PrefsMsg delivers a published preferences transition into the view.
type PrefsMsg shared.Value[api.Preferences]

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.White).
			Background(colors.Blue).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Gray).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(colors.LightGray)
	dimStyle   = lipgloss.NewStyle().Foreground(colors.Gray)
	helpStyle  = lipgloss.NewStyle().Foreground(colors.Gray).Padding(1, 0, 0, 0)
)

// DashboardView is the bubbletea model for `webctl dashboard`.
type DashboardView struct {
	refresh func()

	spin   spinner.Model
	width  int
	status shared.Value[api.ServiceStatus]
	prefs  shared.Value[api.Preferences]
}

// NewDashboardView creates the view. The refresh callback re-issues the
// providers' fetches; the view never touches the network itself.
func NewDashboardView(refresh func()) *DashboardView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colors.Blue)
	return &DashboardView{
		refresh: refresh,
		spin:    sp,
		status:  shared.Value[api.ServiceStatus]{Value: api.StatusUnknown},
		prefs:   shared.Value[api.Preferences]{Value: api.DefaultPreferences()},
	}
}

func (v *DashboardView) Init() tea.Cmd {
	return v.spin.Tick
}

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return v, tea.Quit
		case "r":
			v.refresh()
			return v, nil
		}
	case tea.WindowSizeMsg:
		v.width = msg.Width
	case StatusMsg:
		v.status = shared.Value[api.ServiceStatus](msg)
	case PrefsMsg:
		v.prefs = shared.Value[api.Preferences](msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *DashboardView) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Web Console"))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(v.statusPanel()))
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(v.prefsPanel()))
	b.WriteString(helpStyle.Render("r refresh • q quit"))
	b.WriteString("\n")
	return b.String()
}

func (v *DashboardView) statusPanel() string {
	line := fmt.Sprintf("%s %s",
		labelStyle.Render("Service:"),
		statusStyle(v.status.Value).Render(string(v.status.Value)))
	if !v.status.Live {
		line += " " + v.spin.View()
	}
	line += "\n" + dimStyle.Render("updated "+freshness(v.status.UpdatedAt))
	return line
}

func (v *DashboardView) prefsPanel() string {
	return fmt.Sprintf("%s %s\n%s %s",
		labelStyle.Render("Layout:"), v.prefs.Value.Layout,
		labelStyle.Render("Language:"), v.prefs.Value.Language)
}

func statusStyle(status api.ServiceStatus) lipgloss.Style {
	switch status {
	case api.StatusActive:
		return lipgloss.NewStyle().Foreground(colors.Green).Bold(true)
	case api.StatusActivating:
		return lipgloss.NewStyle().Foreground(colors.Orange).Bold(true)
	case api.StatusDegraded:
		return lipgloss.NewStyle().Foreground(colors.Orange).Bold(true)
	case api.StatusError:
		return lipgloss.NewStyle().Foreground(colors.Red).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(colors.Gray)
	}
}

func freshness(updatedAt time.Time) string {
	if updatedAt.IsZero() {
		return "never"
	}
	return timeago.NoMax(timeago.English).Format(updatedAt)
}
