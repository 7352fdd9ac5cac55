package api

import (
	"net/url"

	models "GreeksBoard/internal/domain/models"
	"GreeksBoard/internal/handler"
	"GreeksBoard/internal/usecase"
	xhttp "GreeksBoard/pkg/http"
	xlogger "GreeksBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GreeksHandler serves the dashboard data as JSON.
type GreeksHandler struct {
	logger  *xlogger.Logger
	uc      *usecase.DashboardUseCase
	limiter echo.MiddlewareFunc
}

func NewGreeksHandler(logger *xlogger.Logger, uc *usecase.DashboardUseCase, limiter echo.MiddlewareFunc) *GreeksHandler {
	return &GreeksHandler{logger: logger, uc: uc, limiter: limiter}
}

func (h *GreeksHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	if h.limiter != nil {
		g.Use(h.limiter)
	}
	g.GET("/dates", h.Dates)
	g.GET("/greeks", h.Greeks)
}

func (h *GreeksHandler) Dates(c echo.Context) error {
	d, err := h.uc.Build(c.Request().Context(), "")
	if err != nil {
		h.logger.Error("dates usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, handler.MapError(err))
	}
	dates := d.Dates
	if dates == nil {
		dates = []models.DateKey{}
	}
	return xhttp.SuccessResponse(c, models.DatesResponse{Dates: dates, Selected: d.Selected})
}

func (h *GreeksHandler) Greeks(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	d, err := h.uc.Build(c.Request().Context(), models.DateKey(req.Date))
	if err != nil {
		h.logger.Error("greeks usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, handler.MapError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, toGreeksResponse(d))
}

func toGreeksResponse(d *models.Dashboard) models.GreeksResponse {
	res := models.GreeksResponse{
		Status:   d.Status,
		Message:  d.Message,
		Date:     d.Selected,
		Dates:    d.Dates,
		Columns:  d.Columns,
		Rows:     make([]map[string]string, 0, len(d.Rows)),
		Panels:   make([]models.PanelResponse, 0, len(d.Panels)),
		LoadedAt: d.LoadedAt,
	}
	if res.Dates == nil {
		res.Dates = []models.DateKey{}
	}
	if res.Columns == nil {
		res.Columns = []string{}
	}
	if d.Status != models.StatusOK {
		return res
	}

	date := url.Values{"date": {string(d.Selected)}}.Encode()
	for _, r := range d.Rows {
		res.Rows = append(res.Rows, r.Cells)
	}
	for _, p := range d.Panels {
		res.Panels = append(res.Panels, models.PanelResponse{
			Metric:  p.Metric,
			Side:    p.Side,
			Title:   p.Title,
			Columns: p.Columns,
			YRange:  p.YRange,
			Chart:   "/charts/" + url.PathEscape(p.Metric) + "/" + string(p.Side) + "?" + date,
		})
	}
	res.Export = "/export.csv?" + date
	return res
}
