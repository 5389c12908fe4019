package api

import (
	"errors"
	"sync/atomic"
	"time"

	models "ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
	"ArgPulse/internal/service/metrics"
	"ArgPulse/internal/service/ratelimit"
	"ArgPulse/internal/usecase"
	xhttp "ArgPulse/pkg/http"
	xlogger "ArgPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Idle limiter buckets are dropped every pruneEvery vote attempts.
const (
	pruneEvery = 512
	pruneIdle  = 10 * time.Minute
)

type PollHandler struct {
	logger   *xlogger.Logger
	uc       *usecase.PollUseCase
	rl       *ratelimit.Limiter
	attempts atomic.Int64
}

// NewPollHandler limits each client address to a short burst of vote attempts.
func NewPollHandler(logger *xlogger.Logger, uc *usecase.PollUseCase) *PollHandler {
	metrics.Register()
	return &PollHandler{logger: logger, uc: uc, rl: ratelimit.New(5, 0.2)}
}

func (h *PollHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/poll", h.Results)
	g.POST("/poll", h.Vote)
}

func (h *PollHandler) Results(c echo.Context) error {
	res, err := h.uc.Results(c.Request().Context())
	if err != nil {
		h.logger.Error("poll results error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PollHandler) Vote(c echo.Context) error {
	voter := c.RealIP()
	if h.attempts.Add(1)%pruneEvery == 0 {
		h.rl.Prune(pruneIdle)
	}
	if !h.rl.Allow(voter) {
		metrics.PollVotes.WithLabelValues("rate_limited").Inc()
		h.logger.Warn("poll vote rate_limited", xlogger.String("remote", voter))
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many vote attempts"))
	}

	req := &models.VoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.PollVotes.WithLabelValues("invalid").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.uc.Vote(c.Request().Context(), req.OptionID, voter)
	switch {
	case errors.Is(err, domrepo.ErrAlreadyVoted):
		metrics.PollVotes.WithLabelValues("duplicate").Inc()
		return xhttp.AppErrorResponse(c, xhttp.ConflictError("already voted").WithError(err))
	case errors.Is(err, domrepo.ErrInvalidVote):
		metrics.PollVotes.WithLabelValues("invalid").Inc()
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("unknown poll option").WithError(err))
	case err != nil:
		h.logger.Error("poll vote error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	metrics.PollVotes.WithLabelValues("accepted").Inc()
	return xhttp.SuccessResponse(c, res)
}
