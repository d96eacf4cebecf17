package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token")
}

func TestClient_SendMessage(t *testing.T) {
	var gotPath string
	var gotParams map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotParams)
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":77,"chat":{"id":5}}}`))
	})

	msgID, err := c.SendMessage(context.Background(), 5, "*hello*", nil)
	if err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}
	if msgID != 77 {
		t.Errorf("Expected message ID 77, got %d", msgID)
	}
	if gotPath != "/bottest-token/sendMessage" {
		t.Errorf("Unexpected request path: %s", gotPath)
	}
	if gotParams["parse_mode"] != "Markdown" {
		t.Errorf("Expected Markdown parse mode, got %v", gotParams["parse_mode"])
	}
}

func TestClient_EditMessageText_NotModified(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: message is not modified"}`))
	})

	// Identical edits happen on boundary navigation; they must not error.
	if err := c.EditMessageText(context.Background(), 5, 77, "same", nil); err != nil {
		t.Errorf("Expected identical edit to be absorbed, got %v", err)
	}
}

func TestClient_EditMessageText_OtherError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: message to edit not found"}`))
	})

	if err := c.EditMessageText(context.Background(), 5, 77, "text", nil); err == nil {
		t.Error("Expected error for a genuine edit failure, got nil")
	}
}

func TestClient_GetUpdates(t *testing.T) {
	var gotParams map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotParams)
		_, _ = w.Write([]byte(`{"ok":true,"result":[
			{"update_id":10,"message":{"message_id":1,"chat":{"id":5},"text":"/start"}},
			{"update_id":11,"callback_query":{"id":"cb1","data":"next","message":{"message_id":2,"chat":{"id":5}}}}
		]}`))
	})

	updates, err := c.GetUpdates(context.Background(), 10, 60)
	if err != nil {
		t.Fatalf("GetUpdates returned error: %v", err)
	}
	if gotParams["offset"] != float64(10) {
		t.Errorf("Expected offset 10, got %v", gotParams["offset"])
	}

	if len(updates) != 2 {
		t.Fatalf("Expected 2 updates, got %d", len(updates))
	}
	if updates[0].Message == nil || updates[0].Message.Text != "/start" {
		t.Errorf("Unexpected first update: %+v", updates[0])
	}
	if updates[1].CallbackQuery == nil || updates[1].CallbackQuery.Data != "next" {
		t.Errorf("Unexpected second update: %+v", updates[1])
	}
}

func TestClient_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
	})

	if err := c.SendText(context.Background(), 5, "hi"); err == nil {
		t.Error("Expected error for api failure, got nil")
	}
}
