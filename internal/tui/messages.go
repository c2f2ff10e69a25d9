package tui

import (
	"github.com/fydblock/fydadmin/internal/domain"
)

// Fetch results carry the generation counter they were issued with so
// that stale responses can be discarded after a newer fetch started.
type usersFetchedMsg struct {
	gen   int
	items []domain.User
	err   error
}

type botsFetchedMsg struct {
	gen   int
	items []domain.Bot
	err   error
}

type logsFetchedMsg struct {
	gen   int
	items []domain.LogEntry
	err   error
}

type overviewFetchedMsg struct {
	gen  int
	data domain.Overview
	err  error
}

type loginDoneMsg struct {
	err error
}

type botSavedMsg struct {
	id      string
	draft   domain.BotDraft
	created bool
	err     error
}

type userSavedMsg struct {
	id    string
	draft domain.UserDraft
	err   error
}

type botDeletedMsg struct {
	id  string
	err error
}

type userDeletedMsg struct {
	id  string
	err error
}

type logsTickMsg struct{}
