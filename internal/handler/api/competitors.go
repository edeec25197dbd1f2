package api

import (
	"context"

	"MarketIntel/internal/domain/models"
	xhttp "MarketIntel/pkg/http"
	applogger "MarketIntel/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CompetitorManager is the competitor use case consumed by the handler.
type CompetitorManager interface {
	Create(ctx context.Context, req models.CompetitorRequest) (models.Competitor, error)
	List(ctx context.Context, limit, offset int) ([]models.Competitor, error)
	Get(ctx context.Context, id string) (models.Competitor, error)
	Update(ctx context.Context, id string, req models.CompetitorRequest) (models.Competitor, error)
	Delete(ctx context.Context, id string) error
	AddMentions(ctx context.Context, id string, in []models.MentionInput) (int, error)
}

// CompetitorsHandler serves /api/competitors.
type CompetitorsHandler struct {
	logger *applogger.Logger
	svc    CompetitorManager
}

func NewCompetitorsHandler(logger *applogger.Logger, svc CompetitorManager) *CompetitorsHandler {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &CompetitorsHandler{logger: logger.With(applogger.String("handler", "competitors")), svc: svc}
}

func (h *CompetitorsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/competitors")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/mentions", h.AddMentions)
}

func (h *CompetitorsHandler) Create(c echo.Context) error {
	req := &models.CompetitorRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.svc.Create(c.Request().Context(), *req)
	if err != nil {
		return respondError(c, h.logger, "", err)
	}
	return xhttp.CreatedResponse(c, res)
}

func (h *CompetitorsHandler) List(c echo.Context) error {
	req := &models.ListCompetitorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	rows, err := h.svc.List(c.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		return respondError(c, h.logger, "", err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *CompetitorsHandler) Get(c echo.Context) error {
	res, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, "", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CompetitorsHandler) Update(c echo.Context) error {
	req := &models.CompetitorRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.svc.Update(c.Request().Context(), c.Param("id"), *req)
	if err != nil {
		return respondError(c, h.logger, "", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *CompetitorsHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.logger, "", err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"message": "Competitor deleted successfully"})
}

// AddMentions ingests public mentions used by sentiment analysis.
func (h *CompetitorsHandler) AddMentions(c echo.Context) error {
	req := &models.MentionsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	n, err := h.svc.AddMentions(c.Request().Context(), c.Param("id"), req.Mentions)
	if err != nil {
		return respondError(c, h.logger, "", err)
	}
	return xhttp.CreatedResponse(c, map[string]int{"accepted": n})
}
