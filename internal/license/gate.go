package license

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/anonm/ticketbot/internal/domain"
)

// Messenger delivers gate verdicts to the user. Satisfied by the
// Telegram client.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Config carries the remote-authority parameters for the gate.
type Config struct {
	BaseURL        string
	ProductLabel   string
	VersionLabel   string
	ArtifactPath   string
	SupportContact string
}

// Gate verifies entitlement and artifact integrity against the remote
// authority. Both stages must pass before a privileged command runs, and
// both are re-checked on every call so a server-side revocation takes
// effect on the very next command; only the boolean outcome is cached on
// the session.
type Gate struct {
	cfg  Config
	http *http.Client
	msgr Messenger
}

// NewGate creates a gate talking to the authority at cfg.BaseURL.
func NewGate(cfg Config, msgr Messenger) *Gate {
	return &Gate{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
		msgr: msgr,
	}
}

type keyStatusRequest struct {
	MachineHash string `json:"machineHash"`
	Game        string `json:"game"`
}

type keyStatusResponse struct {
	Status bool `json:"status"`
}

type hashStatusRequest struct {
	Hash string `json:"hash"`
	Game string `json:"game"`
}

type hashStatusResponse struct {
	Modified bool `json:"modified"`
}

// Check runs the two-stage gate for the session's chat. It never returns
// an error: every failure mode collapses to false after messaging the
// user, so the gate fails closed. The caller must hold the session lock.
func (g *Gate) Check(ctx context.Context, s *domain.Session) bool {
	ok, err := g.check(ctx, s)
	if err != nil {
		slog.Error("License check failed", "chat_id", s.ChatID, "error", err)
		if sendErr := g.msgr.SendText(ctx, s.ChatID, msgGenericError); sendErr != nil {
			slog.Error("Failed to deliver gate error message", "chat_id", s.ChatID, "error", sendErr)
		}
		return false
	}
	return ok
}

func (g *Gate) check(ctx context.Context, s *domain.Session) (bool, error) {
	key, err := MachineID()
	if err != nil {
		return false, err
	}

	var keyStatus keyStatusResponse
	err = g.post(ctx, "/check_key", keyStatusRequest{
		MachineHash: key,
		Game:        g.cfg.ProductLabel,
	}, &keyStatus)
	if err != nil {
		return false, err
	}

	if !keyStatus.Status {
		s.Activation = domain.ActivationInactive
		if err := g.msgr.SendText(ctx, s.ChatID, fmtNotActivated(key, g.cfg.SupportContact)); err != nil {
			slog.Error("Failed to deliver activation message", "chat_id", s.ChatID, "error", err)
		}
		return false, nil
	}

	s.Activation = domain.ActivationActive

	hash, err := Digest(g.cfg.ArtifactPath)
	if err != nil {
		return false, err
	}

	var hashStatus hashStatusResponse
	err = g.post(ctx, "/check_hash", hashStatusRequest{
		Hash: hash,
		Game: g.cfg.VersionLabel,
	}, &hashStatus)
	if err != nil {
		return false, err
	}

	if !hashStatus.Modified {
		if err := g.msgr.SendText(ctx, s.ChatID, msgVersionMismatch); err != nil {
			slog.Error("Failed to deliver version message", "chat_id", s.ChatID, "error", err)
		}
		return false, nil
	}

	return true, nil
}

func (g *Gate) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("call %s: unexpected status %d", path, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
