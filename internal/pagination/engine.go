// Package pagination renders a session's result set one item at a time,
// editing a single chat message in place as the user navigates.
package pagination

import (
	"context"
	"fmt"

	"github.com/anonm/ticketbot/internal/domain"
	"github.com/anonm/ticketbot/internal/telegram"
)

// Messenger is the outbound surface the engine drives: one send per
// Present, one edit per Navigate. Satisfied by the Telegram client.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) (int, error)
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, markup *telegram.InlineKeyboardMarkup) error
}

// Engine owns the paginated view of a session's results. Editing one
// message instead of sending one per page is the point: chat history
// stays clean, at the cost of tracking the rendered message ID per
// session.
type Engine struct {
	msgr Messenger
}

// NewEngine creates a pagination engine on top of msgr.
func NewEngine(msgr Messenger) *Engine {
	return &Engine{msgr: msgr}
}

// Present replaces the session's result set, resets the cursor to the
// first item, and sends a fresh message rendering it. The returned
// message ID is recorded on the session; every later Navigate edits that
// exact message. results must be non-empty — the empty case is the
// caller's to message. The caller must hold the session lock.
func (e *Engine) Present(ctx context.Context, s *domain.Session, results []domain.Event) (int, error) {
	if len(results) == 0 {
		return 0, fmt.Errorf("present: empty result set for chat %d", s.ChatID)
	}

	s.SetResults(results)

	msgID, err := e.msgr.SendMessage(ctx, s.ChatID, renderEvent(s), keyboard(s))
	if err != nil {
		return 0, fmt.Errorf("send result page: %w", err)
	}

	s.MessageID = msgID
	return msgID, nil
}

// Navigate moves the cursor and re-renders by editing the message sent
// by the last Present. With no active result set it does nothing; at a
// boundary the cursor stays put and the edit re-sends identical content,
// which the transport absorbs. The caller must hold the session lock.
func (e *Engine) Navigate(ctx context.Context, s *domain.Session, dir domain.Direction) error {
	if !s.HasResults() || s.MessageID == 0 {
		return nil
	}

	s.Advance(dir)

	if err := e.msgr.EditMessageText(ctx, s.ChatID, s.MessageID, renderEvent(s), keyboard(s)); err != nil {
		return fmt.Errorf("edit result page: %w", err)
	}
	return nil
}

func keyboard(s *domain.Session) *telegram.InlineKeyboardMarkup {
	indicator := fmt.Sprintf("%d/%d", s.Cursor+1, len(s.Results))
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{{
			{Text: "⬅️", CallbackData: "prev"},
			{Text: indicator, CallbackData: "noop"},
			{Text: "➡️", CallbackData: "next"},
		}},
	}
}
