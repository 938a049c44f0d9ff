package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pawmatch/internal/breeds"
	"github.com/five82/pawmatch/internal/catalog"
	"github.com/five82/pawmatch/internal/filter"
	"github.com/five82/pawmatch/internal/logtail"
	"github.com/five82/pawmatch/internal/search"
)

// Messages

type loginResultMsg struct {
	user string
	err  error
}

type logoutMsg struct{ err error }

type sessionExpiredMsg struct{ err error }

type breedsLoadedMsg struct {
	matcher *breeds.Matcher
	err     error
}

type suggestionsMsg breeds.Suggestions

type searchResultMsg struct {
	page search.Page
	err  error
}

type matchResultMsg struct {
	dog catalog.Dog
	err error
}

type activityMsg struct {
	lines []string
	err   error
}

type activityTickMsg time.Time

// Commands

func (m Model) loginCmd(name, email string) tea.Cmd {
	auth := m.auth
	ctx := m.ctx
	return func() tea.Msg {
		if auth == nil {
			return loginResultMsg{user: name}
		}
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		if err := auth.Login(ctx, name, email); err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{user: auth.User()}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	auth := m.auth
	ctx := m.ctx
	return func() tea.Msg {
		if auth == nil {
			return logoutMsg{}
		}
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		return logoutMsg{err: auth.Logout(ctx)}
	}
}

func (m Model) loadBreedsCmd() tea.Cmd {
	src := m.breedSrc
	ctx := m.ctx
	return func() tea.Msg {
		if src == nil {
			return breedsLoadedMsg{matcher: breeds.New(nil)}
		}
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		matcher, err := src.Load(ctx)
		return breedsLoadedMsg{matcher: matcher, err: err}
	}
}

func (m Model) searchCmd(f filter.State) tea.Cmd {
	searcher := m.searcher
	ctx := m.ctx
	return func() tea.Msg {
		if searcher == nil {
			return searchResultMsg{page: search.Page{Filter: f}}
		}
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		page, err := searcher.Search(ctx, f)
		return searchResultMsg{page: page, err: err}
	}
}

func (m Model) matchCmd(ids []string) tea.Cmd {
	matcher := m.matcher
	ctx := m.ctx
	return func() tea.Msg {
		if matcher == nil {
			return matchResultMsg{err: catalog.ErrSessionExpired}
		}
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		dog, err := matcher.Match(ctx, ids)
		return matchResultMsg{dog: dog, err: err}
	}
}

func readActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		lines, err := logtail.Read(path, ActivityLineLimit)
		return activityMsg{lines: lines, err: err}
	}
}

func activityTickCmd() tea.Cmd {
	return tea.Tick(ActivityRefreshInterval, func(t time.Time) tea.Msg {
		return activityTickMsg(t)
	})
}
