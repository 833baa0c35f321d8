package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/squaredrill/internal/board"
	"github.com/playperu/squaredrill/internal/drill"
)

// Command is a client message on the session WebSocket.
type Command struct {
	Type  string `json:"type"` // "mode", "toggle" or "answer"
	Mode  string `json:"mode,omitempty"`
	Color string `json:"color,omitempty"`
}

var errUnknownCommand = errors.New("unknown command")

func (cmd Command) apply(c *drill.Controller) error {
	switch cmd.Type {
	case "mode":
		m, err := drill.ParseMode(cmd.Mode)
		if err != nil {
			return err
		}
		c.SelectMode(m)
	case "toggle":
		c.StartOrStop()
	case "answer":
		color, err := board.ParseColor(cmd.Color)
		if err != nil {
			return err
		}
		c.SubmitAnswer(color)
	default:
		return errUnknownCommand
	}
	return nil
}

// handleWS accepts commands and streams snapshots over one connection.
// Snapshots arrive through the broker, so every tab subscribed to the
// session sees the same updates.
func handleWS(logger *slog.Logger, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		c := sessionFrom(r)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Minute)
		defer cancel()

		ch := broker.Subscribe(id)
		defer broker.Unsubscribe(id, ch)

		if err := wsjson.Write(ctx, conn, c.Snapshot()); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}

		readErr := make(chan error, 1)
		go func() { readErr <- readCommands(ctx, conn, c) }()

		for {
			select {
			case <-ctx.Done():
				conn.Close(websocket.StatusGoingAway, "session timeout")
				return
			case err := <-readErr:
				logger.Debug("websocket read ended", "session_id", id, "error", err)
				return
			case data, ok := <-ch:
				if !ok {
					conn.Close(websocket.StatusNormalClosure, "session closed")
					return
				}
				if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}

func readCommands(ctx context.Context, conn *websocket.Conn, c *drill.Controller) error {
	for {
		var cmd Command
		if err := wsjson.Read(ctx, conn, &cmd); err != nil {
			return err
		}
		before := c.Snapshot().Seq
		if err := cmd.apply(c); err != nil {
			if werr := wsjson.Write(ctx, conn, ErrorResponse{Error: err.Error()}); werr != nil {
				return werr
			}
			continue
		}

		// Ignored commands publish nothing; answer with the unchanged
		// state as the HTTP endpoints do.
		if snap := c.Snapshot(); snap.Seq == before {
			if err := wsjson.Write(ctx, conn, snap); err != nil {
				return err
			}
		}
	}
}
