package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fydblock/fydadmin/internal/collection"
	"github.com/fydblock/fydadmin/internal/domain"
)

func (a *App) View() string {
	if a.screen == screenLogin {
		return "\n\n" + a.login.view(a.width)
	}
	if a.confirm != nil {
		return a.confirm.view(a.width, a.height)
	}
	if a.botForm != nil {
		return a.botForm.view(a.width, a.height)
	}
	if a.userForm != nil {
		return a.userForm.view(a.width, a.height)
	}

	var body string
	switch a.screen {
	case screenOverview:
		body = a.viewOverview()
	case screenBots:
		body = a.viewBots()
	case screenUsers:
		body = a.viewUsers()
	case screenLogs:
		body = a.viewLogs()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.viewTabs(),
		body,
		a.viewStatusBar(),
	)
}

func (a *App) viewTabs() string {
	parts := make([]string, 0, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t.label)
		if t.screen == a.screen {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return titleStyle.Render("FydBlock Admin") + "  " + strings.Join(parts, " ")
}

func (a *App) viewStatusBar() string {
	if a.searching {
		return statusBarStyle.Render("search: " + a.searchInput.value + "_")
	}
	hint := "tab switch  / search  f filter  r refresh  q quit"
	switch a.screen {
	case screenBots:
		hint = "n new  e edit  d delete  " + hint
	case screenUsers:
		hint = "e edit  d delete  " + hint
	}
	if a.status != "" {
		return statusBarStyle.Render(a.status + "  |  " + hint)
	}
	return statusBarStyle.Render(hint)
}

func (a *App) viewOverview() string {
	switch a.overviewPhase {
	case collection.Loading, collection.Idle:
		return borderStyle.Render("loading overview...")
	case collection.Failed:
		return borderStyle.Render(errorStyle.Render("overview unavailable: " + a.overviewErr.Error()))
	}

	ov := a.overview
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Users", fmt.Sprintf("%d", ov.TotalUsers)),
		" ",
		statCard("Revenue", "$"+ov.Revenue.StringFixed(2)),
		" ",
		statCard("Active Sessions", fmt.Sprintf("%d", ov.ActiveSessions)),
	)

	var activity strings.Builder
	activity.WriteString(headerRowStyle.Render("System Activity") + "\n")
	for _, p := range ov.SystemActivity {
		activity.WriteString(fmt.Sprintf("%5s  %s%s\n",
			p.Time,
			okStyle.Render(strings.Repeat("█", min(p.Login, 40))),
			dimStyle.Render(strings.Repeat("█", min(p.API, 40))),
		))
	}

	var recent strings.Builder
	recent.WriteString(headerRowStyle.Render("Recent Actions") + "\n")
	for _, r := range ov.RecentLogs {
		status := okStyle.Render(r.Status)
		if r.Status != "Success" {
			status = errorStyle.Render(r.Status)
		}
		recent.WriteString(fmt.Sprintf("%-12s %-40s %s\n", r.Time, truncate(r.Action, 40), status))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		borderStyle.Render(activity.String()),
		borderStyle.Render(recent.String()),
	)
}

func statCard(label, value string) string {
	return borderStyle.Render(
		dimStyle.Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(value),
	)
}

func (a *App) viewBots() string {
	if banner, done := collectionBanner(&a.bots, "bots"); done {
		return banner
	}
	var b strings.Builder
	b.WriteString(headerRowStyle.Render(fmt.Sprintf("%-24s %-8s %-8s %-10s %10s", "NAME", "TYPE", "STATUS", "RUN", "PROFIT")) + "\n")
	for i, bot := range a.bots.Visible() {
		row := fmt.Sprintf("%-24s %-8s %-8s %-10s %10s",
			truncate(bot.Name, 24), bot.Type, bot.Status, bot.RunStatus, bot.Profit.StringFixed(2))
		if i == a.botCursor {
			row = selectedRowStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n" + a.filterLine(a.bots.SearchTerm, a.bots.StatusFilter, a.bots.Len(), len(a.bots.Visible())))
	return borderStyle.Render(b.String())
}

func (a *App) viewUsers() string {
	if banner, done := collectionBanner(&a.users, "users"); done {
		return banner
	}
	var b strings.Builder
	b.WriteString(headerRowStyle.Render(fmt.Sprintf("%-10s %-28s %-20s %-7s %-10s %-6s", "ID", "EMAIL", "NAME", "ROLE", "STATUS", "PLAN")) + "\n")
	for i, u := range a.users.Visible() {
		row := fmt.Sprintf("%-10s %-28s %-20s %-7s %-10s %-6s",
			u.DisplayID, truncate(u.Email, 28), truncate(u.FullName, 20), u.Role, u.Status, u.Plan)
		if i == a.userCursor {
			row = selectedRowStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n" + a.filterLine(a.users.SearchTerm, a.users.StatusFilter, a.users.Len(), len(a.users.Visible())))
	return borderStyle.Render(b.String())
}

func (a *App) viewLogs() string {
	if banner, done := collectionBanner(&a.logs, "logs"); done {
		return banner
	}
	stats := domain.StatsFor(a.logs.Items())
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s  %s\n\n",
		dimStyle.Render(fmt.Sprintf("total %d", stats.Total)),
		errorStyle.Render(fmt.Sprintf("errors %d", stats.Errors)),
		warnStyle.Render(fmt.Sprintf("warnings %d", stats.Warnings)),
	))
	for i, l := range a.logs.Visible() {
		row := fmt.Sprintf("%s %s %-10s %s",
			dimStyle.Render(l.Timestamp.Format("15:04:05")),
			levelStyle(l.Level).Render(fmt.Sprintf("%-7s", l.Level)),
			l.Service,
			truncate(l.Message, 70),
		)
		if i == a.logCursor {
			row = selectedRowStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n" + a.filterLine(a.logs.SearchTerm, a.logs.StatusFilter, a.logs.Len(), len(a.logs.Visible())))
	return borderStyle.Render(b.String())
}

// collectionBanner renders the non-loaded phases. Failed shows the error
// with no placeholder rows.
func collectionBanner[T collection.Resource](m *collection.Model[T], noun string) (string, bool) {
	switch m.Phase() {
	case collection.Idle, collection.Loading:
		return borderStyle.Render("loading " + noun + "..."), true
	case collection.Failed:
		return borderStyle.Render(errorStyle.Render(noun + " unavailable: " + m.Err().Error())), true
	}
	if m.Len() == 0 {
		return borderStyle.Render(dimStyle.Render("no " + noun + " yet")), true
	}
	return "", false
}

func (a *App) filterLine(term, status string, total, visible int) string {
	parts := []string{fmt.Sprintf("%d/%d", visible, total)}
	if term != "" {
		parts = append(parts, "search="+term)
	}
	if status != "" && status != domain.FilterStatusAll {
		parts = append(parts, "status="+status)
	}
	return dimStyle.Render(strings.Join(parts, "  "))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
