package ws

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/calcdeck/backend/internal/infrastructure/logging"
	"github.com/calcdeck/backend/internal/infrastructure/monitoring"
	"github.com/calcdeck/backend/internal/providers/calc"
	"github.com/calcdeck/backend/internal/service"
	"github.com/calcdeck/backend/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// keyTools maps key actions to calculator tools
var keyTools = map[string]string{
	"digit":         "calc.input",
	"operator":      "calc.operator",
	"paren":         "calc.paren",
	"function":      "calc.function",
	"sign":          "calc.sign",
	"backspace":     "calc.backspace",
	"clear":         "calc.clear",
	"equals":        "calc.equals",
	"state":         "calc.state",
	"history":       "calc.history.list",
	"recall":        "calc.history.recall",
	"history_clear": "calc.history.clear",
}

// Handler manages WebSocket connections. Each connection owns an
// isolated calculator session, discarded on disconnect.
type Handler struct {
	registry *service.Registry
	sessions *calc.Manager
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(registry *service.Registry, sessions *calc.Manager, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		registry: registry,
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
	}
}

// HandleConnection handles WebSocket upgrade and key messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.WSConnected()
		defer h.metrics.WSDisconnected()
	}

	sess := h.sessions.Create()
	defer h.sessions.Close(sess.ID)

	reqCtx := c.Request.Context()

	h.send(conn, types.WSFrame{
		Type: "system",
		Data: map[string]interface{}{
			"message":    "Connected to Calcdeck Service (Go)",
			"session_id": sess.ID,
		},
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			break
		}

		var msg types.KeyMessage
		if err := sonic.Unmarshal(raw, &msg); err != nil {
			h.sendError(conn, "malformed message")
			continue
		}

		if h.metrics != nil {
			h.metrics.RecordWSMessage(msg.Type)
		}

		switch msg.Type {
		case "key":
			h.handleKey(conn, sess.ID, msg, reqCtx)
		case "ping":
			h.send(conn, types.WSFrame{Type: "pong"})
		default:
			h.sendError(conn, "unknown message type")
		}
	}
}

func (h *Handler) handleKey(conn *websocket.Conn, sessionID string, msg types.KeyMessage, reqCtx context.Context) {
	toolID, ok := keyTools[msg.Action]
	if !ok {
		h.sendError(conn, "unknown key action: "+msg.Action)
		return
	}

	params := map[string]interface{}{"session_id": sessionID}
	switch msg.Action {
	case "digit", "operator":
		params["value"] = msg.Value
	case "function":
		params["name"] = msg.Value
	case "recall":
		index, err := strconv.Atoi(msg.Value)
		if err != nil {
			h.sendError(conn, "recall index must be a number")
			return
		}
		params["index"] = index
	}

	appCtx := &types.Context{SessionID: &sessionID}
	result, err := h.registry.Execute(reqCtx, toolID, params, appCtx)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}
	if !result.Success {
		errMsg := "execution failed"
		if result.Error != nil {
			errMsg = *result.Error
		}
		h.sendError(conn, errMsg)
		return
	}

	h.send(conn, types.WSFrame{
		Type: "state",
		Data: result.Data,
	})
}

func (h *Handler) send(conn *websocket.Conn, frame types.WSFrame) {
	data, err := sonic.Marshal(frame)
	if err != nil {
		h.logger.Error("websocket marshal failed", zap.Error(err))
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.logger.Debug("websocket write failed", zap.Error(err))
	}
}

func (h *Handler) sendError(conn *websocket.Conn, msg string) {
	h.send(conn, types.WSFrame{Type: "error", Error: msg})
}
