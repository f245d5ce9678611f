// Package feed implements the Event Feed: a WebSocket endpoint that
// ingests passenger event messages into a network.Server, one goroutine
// per connection.
package feed

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/transitnet/network-monitor/internal/logging"
	"github.com/transitnet/network-monitor/network"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Handler upgrades incoming HTTP connections to WebSocket and feeds
// decoded passenger events into top. Malformed messages are logged and
// skipped; they do not close the connection. A connection is only
// dropped when the client disconnects or the socket itself errors.
type Handler struct {
	top    *network.Server
	logger *slog.Logger
}

// NewHandler builds a feed Handler backed by top.
func NewHandler(top *network.Server, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{top: top, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.LogError(h.logger, "websocket upgrade failed", err)
		return
	}
	defer conn.Close()

	h.logger.Info("passenger feed connection opened", slog.String("remote", r.RemoteAddr))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.logger.Info("passenger feed connection closed", slog.String("remote", r.RemoteAddr), slog.String("reason", err.Error()))
			return
		}

		evt, err := network.DecodePassengerEvent(data)
		if err != nil {
			logging.LogError(h.logger, "dropping malformed passenger event", err)
			continue
		}
		if err := h.top.RecordEvent(evt); err != nil {
			logging.LogError(h.logger, "dropping passenger event", err, slog.String("station_id", string(evt.StationID)))
			continue
		}
	}
}
