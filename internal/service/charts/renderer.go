package charts

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"time"

	"GreeksBoard/internal/domain/models"

	"github.com/wcharczuk/go-chart/v2"
)

// Format is the image encoding of a chart.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// ErrNoPoints means no series of the chart has a plottable value.
var ErrNoPoints = errors.New("no numeric values to plot")

// Spec describes one line chart.
type Spec struct {
	Title  string
	XLabel string
	YLabel string
	Series []models.Series
	YRange *models.YRange
}

// Renderer draws time series line charts with go-chart.
type Renderer struct {
	width  int
	height int
}

func New(width, height int) *Renderer {
	if width <= 0 {
		width = 720
	}
	if height <= 0 {
		height = 360
	}
	return &Renderer{width: width, height: height}
}

// Render writes the chart to w.
func (r *Renderer) Render(w io.Writer, spec Spec, format Format) error {
	if format == FormatSVG {
		// go-chart writes SVG text nodes verbatim; names come from sheet headers
		spec = escapeText(spec)
	}
	series := make([]chart.Series, 0, len(spec.Series))
	var minT, maxT time.Time
	for _, s := range spec.Series {
		if len(s.Times) == 0 || len(s.Times) != len(s.Values) {
			continue
		}
		ts := chart.TimeSeries{Name: s.Name, XValues: s.Times, YValues: s.Values}
		if len(s.Times) == 1 {
			// a lone point draws no line segment
			ts.Style = chart.Style{DotWidth: 3}
		}
		series = append(series, ts)

		for _, t := range s.Times {
			if minT.IsZero() || t.Before(minT) {
				minT = t
			}
			if maxT.IsZero() || t.After(maxT) {
				maxT = t
			}
		}
	}
	if len(series) == 0 {
		return ErrNoPoints
	}

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           spec.XLabel,
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04"),
			Range:          xRange(minT, maxT),
		},
		YAxis: chart.YAxis{
			Name:  spec.YLabel,
			Range: yRange(spec.YRange, spec.Series),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	provider := chart.PNG
	if format == FormatSVG {
		provider = chart.SVG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render chart %q: %w", spec.Title, err)
	}
	return nil
}

func escapeText(spec Spec) Spec {
	spec.Title = html.EscapeString(spec.Title)
	spec.XLabel = html.EscapeString(spec.XLabel)
	spec.YLabel = html.EscapeString(spec.YLabel)
	series := make([]models.Series, len(spec.Series))
	for i, s := range spec.Series {
		s.Name = html.EscapeString(s.Name)
		series[i] = s
	}
	spec.Series = series
	return spec
}

// RenderBytes renders the chart into memory.
func (r *Renderer) RenderBytes(spec Spec, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, spec, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// xRange spans the timestamps, padded when they all coincide.
func xRange(minT, maxT time.Time) *chart.ContinuousRange {
	if !maxT.After(minT) {
		minT = minT.Add(-30 * time.Second)
		maxT = maxT.Add(30 * time.Second)
	}
	return &chart.ContinuousRange{Min: chart.TimeToFloat64(minT), Max: chart.TimeToFloat64(maxT)}
}

// yRange applies the shared range, computing one from the series when none is given.
// A zero-height range is widened so the axis can be drawn.
func yRange(shared *models.YRange, series []models.Series) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	if shared != nil {
		lo, hi = shared.Min, shared.Max
	} else {
		for _, s := range series {
			for _, v := range s.Values {
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
		}
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	if hi <= lo {
		pad := math.Abs(lo) * 0.05
		if pad == 0 {
			pad = 1
		}
		lo, hi = lo-pad, hi+pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
