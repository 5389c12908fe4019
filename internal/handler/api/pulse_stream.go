package api

import (
	"context"
	"net/http"
	"time"

	"ArgPulse/internal/service/metrics"
	"ArgPulse/internal/usecase"
	xlogger "ArgPulse/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 10 * time.Second

// PulseStreamHandler pushes the pulse score to each client on connect and
// then every interval until the client goes away.
type PulseStreamHandler struct {
	logger   *xlogger.Logger
	uc       *usecase.DashboardUseCase
	interval time.Duration
}

func NewPulseStreamHandler(logger *xlogger.Logger, uc *usecase.DashboardUseCase, interval time.Duration) *PulseStreamHandler {
	metrics.Register()
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &PulseStreamHandler{logger: logger, uc: uc, interval: interval}
}

func (h *PulseStreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/pulse", h.Stream)
}

func (h *PulseStreamHandler) Stream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("pulse stream upgrade failed", xlogger.Error(err))
		return nil
	}
	metrics.WSClients.Inc()
	defer func() {
		metrics.WSClients.Dec()
		conn.Close()
	}()

	// The read loop only exists to notice the client closing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Debug("pulse stream read error", xlogger.Error(err))
				}
				return
			}
		}
	}()

	ctx := c.Request().Context()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if !h.push(ctx, conn) {
			return nil
		}
		select {
		case <-closed:
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (h *PulseStreamHandler) push(ctx context.Context, conn *websocket.Conn) bool {
	res := h.uc.Pulse(ctx)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(res); err != nil {
		metrics.WSMessages.WithLabelValues("error").Inc()
		h.logger.Debug("pulse stream write failed", xlogger.Error(err))
		return false
	}
	metrics.WSMessages.WithLabelValues("sent").Inc()
	return true
}
