package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"GreeksBoard/internal/domain/models"
	"GreeksBoard/internal/handler"
	"GreeksBoard/internal/service/charts"
	"GreeksBoard/internal/usecase"
	xhttp "GreeksBoard/pkg/http"
	xlogger "GreeksBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type panelView struct {
	Title string
	SVG   template.HTML
	Note  string
}

type metricView struct {
	Caption string
	CE      *panelView
	PE      *panelView
}

type pageView struct {
	Title      string
	Error      string
	Info       string
	Warning    string
	Dates      []models.DateKey
	Selected   models.DateKey
	Columns    []string
	Rows       [][]string
	Metrics    []metricView
	ExportURL  string
	ExportName string
	LoadedAt   time.Time
}

// DashboardHandler serves the HTML dashboard, its charts and the CSV download.
type DashboardHandler struct {
	logger  *xlogger.Logger
	uc      *usecase.DashboardUseCase
	limiter echo.MiddlewareFunc
}

// NewDashboardHandler creates the page handler. limiter guards routes that read the source and may be nil.
func NewDashboardHandler(logger *xlogger.Logger, uc *usecase.DashboardUseCase, limiter echo.MiddlewareFunc) *DashboardHandler {
	return &DashboardHandler{logger: logger, uc: uc, limiter: limiter}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	var mw []echo.MiddlewareFunc
	if h.limiter != nil {
		mw = append(mw, h.limiter)
	}
	e.GET("/", h.Index, mw...)
	e.GET("/export.csv", h.Export, mw...)
	e.GET("/charts/:metric/:side", h.Chart, mw...)
}

func (h *DashboardHandler) Index(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.render(c, http.StatusBadRequest, pageView{
			Title: h.uc.Config().Title,
			Error: "Invalid date, expected YYYY-MM-DD",
		})
	}

	d, err := h.uc.Build(c.Request().Context(), models.DateKey(req.Date))
	if err != nil {
		appErr := handler.MapError(err)
		h.logger.Error("dashboard build error", xlogger.Error(err), xlogger.Int("status", appErr.Status))
		return h.render(c, appErr.Status, pageView{Title: h.uc.Config().Title, Error: appErr.Message})
	}

	v := pageView{
		Title:    d.Title,
		Dates:    d.Dates,
		Selected: d.Selected,
		LoadedAt: d.LoadedAt,
	}
	switch d.Status {
	case models.StatusNoData:
		v.Info = d.Message
		return h.render(c, http.StatusOK, v)
	case models.StatusNoRows:
		v.Warning = d.Message
		return h.render(c, http.StatusOK, v)
	}

	v.Columns = d.Columns
	v.Rows = make([][]string, 0, len(d.Rows))
	for _, r := range d.Rows {
		cells := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			cells[i] = r.Cells[col]
		}
		v.Rows = append(v.Rows, cells)
	}
	v.Metrics = h.metricViews(d.Panels)
	v.ExportName = d.ExportName
	v.ExportURL = "/export.csv?" + url.Values{"date": {string(d.Selected)}}.Encode()
	return h.render(c, http.StatusOK, v)
}

func (h *DashboardHandler) metricViews(panels []models.Panel) []metricView {
	out := make([]metricView, 0, len(panels))
	index := map[string]int{}
	for _, p := range panels {
		i, ok := index[p.Metric]
		if !ok {
			i = len(out)
			index[p.Metric] = i
			out = append(out, metricView{Caption: p.Caption})
		}

		pv := &panelView{Title: p.Title}
		svg, err := h.uc.RenderPanel(p, charts.FormatSVG)
		switch {
		case err == nil:
			// the renderer escapes titles and series names in SVG output
			pv.SVG = template.HTML(svg)
		case errors.Is(err, charts.ErrNoPoints):
			pv.Note = "No numeric values to plot."
		default:
			h.logger.Error("chart render error", xlogger.String("title", p.Title), xlogger.Error(err))
			pv.Note = "Chart could not be rendered."
		}

		if p.Side == models.SidePE {
			out[i].PE = pv
		} else {
			out[i].CE = pv
		}
	}
	return out
}

// Export serves the selected date's rows as a CSV attachment.
func (h *DashboardHandler) Export(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	exp, err := h.uc.Export(c.Request().Context(), models.DateKey(req.Date))
	if err != nil {
		h.logger.Error("export usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, dateError(err, req.Date))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exp.Filename+`"`)
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", exp.Data)
}

// Chart serves one (metric, side) chart as PNG or SVG.
func (h *DashboardHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	side, _ := models.ParseSide(req.Side)

	ch, err := h.uc.Chart(c.Request().Context(), models.DateKey(req.Date), req.Metric, side, charts.Format(req.Format))
	if err != nil {
		h.logger.Error("chart usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, dateError(err, req.Date))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.Blob(http.StatusOK, ch.ContentType, ch.Data)
}

// dateError maps err and echoes the requested date back to the client.
func dateError(err error, date string) *xhttp.AppError {
	appErr := handler.MapError(err)
	if date != "" {
		appErr.WithParam("date", date)
	}
	return appErr
}

func (h *DashboardHandler) render(c echo.Context, status int, v pageView) error {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, v); err != nil {
		h.logger.Error("template execute error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return c.HTMLBlob(status, buf.Bytes())
}
