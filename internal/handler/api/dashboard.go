package api

import (
	"errors"

	models "ArgPulse/internal/domain/models"
	domrepo "ArgPulse/internal/domain/repository"
	"ArgPulse/internal/usecase"
	xhttp "ArgPulse/pkg/http"
	xlogger "ArgPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler exposes the read side of the dashboard.
type DashboardHandler struct {
	logger *xlogger.Logger
	uc     *usecase.DashboardUseCase
}

func NewDashboardHandler(logger *xlogger.Logger, uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{logger: logger, uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/pulse", h.Pulse)
	g.GET("/snapshot", h.Snapshot)
	g.GET("/analysis/today", h.Today)
	g.GET("/analysis", h.History)
	g.GET("/analysis/:id", h.Post)
	g.GET("/news", h.News)
	g.GET("/convert", h.Convert)
}

func (h *DashboardHandler) Pulse(c echo.Context) error {
	res := h.uc.Pulse(c.Request().Context())
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardHandler) Snapshot(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.uc.Snapshot(c.Request().Context()))
}

func (h *DashboardHandler) Today(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.uc.Today(c.Request().Context()))
}

func (h *DashboardHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	posts := h.uc.History(c.Request().Context(), *req)
	return xhttp.ListResponse(c, posts, int64(len(posts)))
}

func (h *DashboardHandler) Post(c echo.Context) error {
	id := c.Param("id")
	post, err := h.uc.GetPost(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domrepo.ErrPostNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("analysis %s not found", id))
		}
		h.logger.Error("get post error", xlogger.String("id", id), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, post)
}

func (h *DashboardHandler) News(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.uc.News(c.Request().Context()))
}

func (h *DashboardHandler) Convert(c echo.Context) error {
	req := &models.ConvertRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.uc.Convert(c.Request().Context(), *req))
}
