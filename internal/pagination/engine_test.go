package pagination

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/anonm/ticketbot/internal/domain"
	"github.com/anonm/ticketbot/internal/telegram"
)

type sentMessage struct {
	chatID int64
	text   string
	markup *telegram.InlineKeyboardMarkup
}

type editedMessage struct {
	chatID    int64
	messageID int
	text      string
	markup    *telegram.InlineKeyboardMarkup
}

type fakeMessenger struct {
	nextID int
	sends  []sentMessage
	edits  []editedMessage
}

func (f *fakeMessenger) SendMessage(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) (int, error) {
	f.nextID++
	f.sends = append(f.sends, sentMessage{chatID: chatID, text: text, markup: markup})
	return f.nextID, nil
}

func (f *fakeMessenger) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, markup *telegram.InlineKeyboardMarkup) error {
	f.edits = append(f.edits, editedMessage{chatID: chatID, messageID: messageID, text: text, markup: markup})
	return nil
}

func events(names ...string) []domain.Event {
	out := make([]domain.Event, len(names))
	for i, name := range names {
		out[i] = domain.Event{
			ID:       int64(i + 1),
			Name:     name,
			Day:      time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC),
			Price:    250000,
			Deeplink: "https://example.com/" + name,
		}
	}
	return out
}

func indicator(markup *telegram.InlineKeyboardMarkup) string {
	return markup.InlineKeyboard[0][1].Text
}

func TestEngine_PresentSendsFirstItem(t *testing.T) {
	msgr := &fakeMessenger{}
	e := NewEngine(msgr)
	s := &domain.Session{ChatID: 5}

	msgID, err := e.Present(context.Background(), s, events("A", "B", "C"))
	if err != nil {
		t.Fatalf("Present returned error: %v", err)
	}

	if s.MessageID != msgID {
		t.Errorf("Expected message ID %d recorded on session, got %d", msgID, s.MessageID)
	}
	if s.Cursor != 0 {
		t.Errorf("Expected cursor 0, got %d", s.Cursor)
	}
	if len(msgr.sends) != 1 {
		t.Fatalf("Expected one send, got %d", len(msgr.sends))
	}
	if !strings.Contains(msgr.sends[0].text, "A") {
		t.Errorf("Expected first item rendered, got %q", msgr.sends[0].text)
	}
	if got := indicator(msgr.sends[0].markup); got != "1/3" {
		t.Errorf("Expected page indicator 1/3, got %q", got)
	}
}

func TestEngine_PresentRejectsEmptyResults(t *testing.T) {
	e := NewEngine(&fakeMessenger{})
	s := &domain.Session{ChatID: 5}

	if _, err := e.Present(context.Background(), s, nil); err == nil {
		t.Fatal("Expected error for empty result set, got nil")
	}
}

func TestEngine_PresentResetsCursor(t *testing.T) {
	msgr := &fakeMessenger{}
	e := NewEngine(msgr)
	s := &domain.Session{ChatID: 5}

	if _, err := e.Present(context.Background(), s, events("A", "B", "C", "D")); err != nil {
		t.Fatalf("Present returned error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := e.Navigate(context.Background(), s, domain.DirectionNext); err != nil {
			t.Fatalf("Navigate returned error: %v", err)
		}
	}
	if s.Cursor != 3 {
		t.Fatalf("Expected cursor 3 before the new search, got %d", s.Cursor)
	}

	if _, err := e.Present(context.Background(), s, events("V", "W", "X", "Y", "Z")); err != nil {
		t.Fatalf("Present returned error: %v", err)
	}

	if s.Cursor != 0 {
		t.Errorf("Expected cursor reset to 0, got %d", s.Cursor)
	}
	last := msgr.sends[len(msgr.sends)-1]
	if !strings.Contains(last.text, "V") {
		t.Errorf("Expected new first item rendered, got %q", last.text)
	}
	if got := indicator(last.markup); got != "1/5" {
		t.Errorf("Expected page indicator 1/5, got %q", got)
	}
}

func TestEngine_NavigateWithoutResults(t *testing.T) {
	msgr := &fakeMessenger{}
	e := NewEngine(msgr)
	s := &domain.Session{ChatID: 5}

	if err := e.Navigate(context.Background(), s, domain.DirectionNext); err != nil {
		t.Fatalf("Navigate returned error: %v", err)
	}
	if len(msgr.sends) != 0 || len(msgr.edits) != 0 {
		t.Errorf("Expected no outbound traffic, got %d sends and %d edits", len(msgr.sends), len(msgr.edits))
	}
}

// Walks the full scenario: present three items, page past the end, then
// back to the start, checking every render along the way.
func TestEngine_EndToEndNavigation(t *testing.T) {
	msgr := &fakeMessenger{}
	e := NewEngine(msgr)
	s := &domain.Session{ChatID: 5}
	ctx := context.Background()

	msgID, err := e.Present(ctx, s, events("A", "B", "C"))
	if err != nil {
		t.Fatalf("Present returned error: %v", err)
	}

	steps := []struct {
		dir       domain.Direction
		wantItem  string
		wantLabel string
	}{
		{domain.DirectionNext, "B", "2/3"},
		{domain.DirectionNext, "C", "3/3"},
		{domain.DirectionNext, "C", "3/3"}, // boundary no-op
		{domain.DirectionPrev, "B", "2/3"},
		{domain.DirectionPrev, "A", "1/3"},
	}

	for i, step := range steps {
		if err := e.Navigate(ctx, s, step.dir); err != nil {
			t.Fatalf("step %d: Navigate returned error: %v", i, err)
		}
		edit := msgr.edits[len(msgr.edits)-1]
		if edit.messageID != msgID {
			t.Errorf("step %d: expected edit of message %d, got %d", i, msgID, edit.messageID)
		}
		if !strings.Contains(edit.text, step.wantItem) {
			t.Errorf("step %d: expected item %s rendered, got %q", i, step.wantItem, edit.text)
		}
		if got := indicator(edit.markup); got != step.wantLabel {
			t.Errorf("step %d: expected indicator %s, got %q", i, step.wantLabel, got)
		}
	}

	// Single-message invariant: one send, every navigation an edit of it.
	if len(msgr.sends) != 1 {
		t.Errorf("Expected exactly one send, got %d", len(msgr.sends))
	}
	if len(msgr.edits) != len(steps) {
		t.Errorf("Expected %d edits, got %d", len(steps), len(msgr.edits))
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0 VND"},
		{950, "950 VND"},
		{250000, "250.000 VND"},
		{1234567, "1.234.567 VND"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.amount), func(t *testing.T) {
			if got := FormatPrice(tt.amount); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
