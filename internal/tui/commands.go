package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fydblock/fydadmin/internal/api"
	"github.com/fydblock/fydadmin/internal/domain"
)

const requestTimeout = 10 * time.Second

func fetchUsers(client *api.Client, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := client.ListUsers(ctx)
		return usersFetchedMsg{gen: gen, items: items, err: err}
	}
}

func fetchBots(client *api.Client, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := client.ListBots(ctx)
		return botsFetchedMsg{gen: gen, items: items, err: err}
	}
}

func fetchLogs(client *api.Client, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := client.ListLogs(ctx)
		return logsFetchedMsg{gen: gen, items: items, err: err}
	}
}

func fetchOverview(client *api.Client, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		data, err := client.Overview(ctx)
		return overviewFetchedMsg{gen: gen, data: data, err: err}
	}
}

func doLogin(client *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return loginDoneMsg{err: client.Login(ctx, email, password)}
	}
}

func saveBot(client *api.Client, draft domain.BotDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if draft.ID == "" {
			return botSavedMsg{draft: draft, created: true, err: client.CreateBot(ctx, draft)}
		}
		return botSavedMsg{id: draft.ID, draft: draft, err: client.UpdateBot(ctx, draft.ID, draft)}
	}
}

func saveUser(client *api.Client, id string, draft domain.UserDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return userSavedMsg{id: id, draft: draft, err: client.UpdateUser(ctx, id, draft)}
	}
}

func deleteBot(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return botDeletedMsg{id: id, err: client.DeleteBot(ctx, id)}
	}
}

func deleteUser(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return userDeletedMsg{id: id, err: client.DeleteUser(ctx, id)}
	}
}

func logsTick() tea.Cmd {
	return tea.Tick(30*time.Second, func(time.Time) tea.Msg {
		return logsTickMsg{}
	})
}
