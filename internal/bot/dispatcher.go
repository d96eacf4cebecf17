// Package bot routes inbound Telegram updates to the license gate, the
// search client, and the pagination engine.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anonm/ticketbot/internal/domain"
	"github.com/anonm/ticketbot/internal/pagination"
	"github.com/anonm/ticketbot/internal/session"
	"github.com/anonm/ticketbot/internal/store"
	"github.com/anonm/ticketbot/internal/telegram"
)

const recentLimit = 10

// Transport is the slice of the Telegram client the dispatcher itself
// uses; sends and edits for pagination go through the engine.
type Transport interface {
	GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]telegram.Update, error)
	SendText(ctx context.Context, chatID int64, text string) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
}

// Gate decides whether a privileged command may run for a session.
type Gate interface {
	Check(ctx context.Context, s *domain.Session) bool
}

// Searcher runs a vendor search query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.Event, error)
}

// Dispatcher consumes inbound updates and drives the domain components.
type Dispatcher struct {
	tg       Transport
	sessions *session.Store
	gate     Gate
	engine   *pagination.Engine
	search   Searcher
	history  store.Repository
	contact  string
}

// NewDispatcher wires the dispatcher to its collaborators.
func NewDispatcher(tg Transport, sessions *session.Store, gate Gate, engine *pagination.Engine, search Searcher, history store.Repository, contact string) *Dispatcher {
	return &Dispatcher{
		tg:       tg,
		sessions: sessions,
		gate:     gate,
		engine:   engine,
		search:   search,
		history:  history,
		contact:  contact,
	}
}

// Run long-polls for updates until ctx is cancelled. Each update is
// handled on its own goroutine; the per-session mutex keeps events for
// the same chat ordered while different chats proceed concurrently.
func (d *Dispatcher) Run(ctx context.Context) error {
	var offset int64
	for {
		updates, err := d.tg.GetUpdates(ctx, offset, 60)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("Polling for updates failed", "error", err)
			select {
			case <-time.After(3 * time.Second):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			go d.HandleUpdate(ctx, u)
		}
	}
}

// HandleUpdate routes a single inbound update.
func (d *Dispatcher) HandleUpdate(ctx context.Context, u telegram.Update) {
	switch {
	case u.CallbackQuery != nil:
		d.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil && u.Message.Text != "":
		d.handleMessage(ctx, u.Message)
	}
}

func (d *Dispatcher) handleMessage(ctx context.Context, msg *telegram.Message) {
	cmd, arg := parseCommand(msg.Text)
	if cmd == "" {
		return
	}

	s := d.sessions.GetOrCreate(msg.Chat.ID)
	s.Lock()
	defer s.Unlock()
	s.Touch()

	switch cmd {
	case "/start":
		d.handleStart(ctx, s)
	case "/key":
		d.handleKey(ctx, s)
	case "/search":
		d.handleSearch(ctx, s, arg)
	case "/recent":
		d.handleRecent(ctx, s)
	}
}

// parseCommand splits a message into its command and trailing argument.
// A "@botname" suffix on the command is stripped. Non-command text maps
// to an empty command.
func parseCommand(text string) (cmd, arg string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	cmd, arg, _ = strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	return cmd, arg
}

func (d *Dispatcher) handleStart(ctx context.Context, s *domain.Session) {
	if err := d.tg.SendText(ctx, s.ChatID, fmtWelcome(d.contact)); err != nil {
		slog.Error("Failed to send welcome", "chat_id", s.ChatID, "error", err)
		return
	}
	// Activation runs inline right after the welcome, the same flow as
	// an explicit /key.
	d.handleKey(ctx, s)
}

func (d *Dispatcher) handleKey(ctx context.Context, s *domain.Session) {
	if !d.gate.Check(ctx, s) {
		return
	}
	if err := d.tg.SendText(ctx, s.ChatID, msgActivated); err != nil {
		slog.Error("Failed to send activation confirmation", "chat_id", s.ChatID, "error", err)
	}
}

func (d *Dispatcher) handleSearch(ctx context.Context, s *domain.Session, query string) {
	if !d.gate.Check(ctx, s) {
		return
	}

	// A bare /search gets a usage hint; an argument of pure whitespace
	// gets the invalid-keyword message.
	if query == "" {
		d.reply(ctx, s.ChatID, msgSearchUsage)
		return
	}
	query = strings.TrimSpace(query)
	if query == "" {
		d.reply(ctx, s.ChatID, msgSearchEmpty)
		return
	}

	events, err := d.search.Search(ctx, query)
	if err != nil {
		slog.Error("Search failed", "chat_id", s.ChatID, "query", query, "error", err)
		d.reply(ctx, s.ChatID, msgSearchError)
		return
	}

	slog.Info("Search completed", "chat_id", s.ChatID, "query", query, "results", len(events))
	d.recordSearch(ctx, s.ChatID, query, len(events))

	if len(events) == 0 {
		d.reply(ctx, s.ChatID, msgNoResults)
		return
	}

	if _, err := d.engine.Present(ctx, s, events); err != nil {
		slog.Error("Failed to present results", "chat_id", s.ChatID, "error", err)
		d.reply(ctx, s.ChatID, msgSearchError)
	}
}

func (d *Dispatcher) recordSearch(ctx context.Context, chatID int64, query string, count int) {
	rec := &domain.SearchRecord{
		ID:          uuid.NewString(),
		ChatID:      chatID,
		Query:       query,
		ResultCount: count,
		CreatedAt:   time.Now(),
	}
	if err := d.history.RecordSearch(ctx, rec); err != nil {
		// History is best-effort; the search result still goes out.
		slog.Warn("Failed to record search history", "chat_id", chatID, "error", err)
	}
}

func (d *Dispatcher) handleRecent(ctx context.Context, s *domain.Session) {
	records, err := d.history.RecentSearches(ctx, s.ChatID, recentLimit)
	if err != nil {
		slog.Error("Failed to load search history", "chat_id", s.ChatID, "error", err)
		d.reply(ctx, s.ChatID, msgHistoryError)
		return
	}
	if len(records) == 0 {
		d.reply(ctx, s.ChatID, msgNoHistory)
		return
	}
	d.reply(ctx, s.ChatID, fmtRecent(records))
}

func (d *Dispatcher) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	// Always acknowledge so the client drops its progress spinner, even
	// when the press turns out to be a no-op.
	defer func() {
		if err := d.tg.AnswerCallbackQuery(ctx, cb.ID, ""); err != nil {
			slog.Warn("Failed to answer callback", "callback_id", cb.ID, "error", err)
		}
	}()

	if cb.Message == nil {
		return
	}

	var dir domain.Direction
	switch cb.Data {
	case "prev":
		dir = domain.DirectionPrev
	case "next":
		dir = domain.DirectionNext
	default:
		return
	}

	s := d.sessions.Get(cb.Message.Chat.ID)
	if s == nil {
		return
	}

	s.Lock()
	defer s.Unlock()
	s.Touch()

	if err := d.engine.Navigate(ctx, s, dir); err != nil {
		slog.Error("Failed to navigate results", "chat_id", s.ChatID, "error", err)
	}
}

func (d *Dispatcher) reply(ctx context.Context, chatID int64, text string) {
	if err := d.tg.SendText(ctx, chatID, text); err != nil {
		slog.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}
