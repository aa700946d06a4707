package api

import (
	"fmt"
	"time"

	models "EconPull/internal/domain/models"
	domrepo "EconPull/internal/domain/repository"
	"EconPull/internal/usecase"
	xhttp "EconPull/pkg/http"
	xlogger "EconPull/pkg/logger"
	"EconPull/pkg/util"

	"github.com/labstack/echo/v4"
)

// CalendarEchoHandler exposes the reconstructed dataset over HTTP.
type CalendarEchoHandler struct {
	logger *xlogger.Logger
	store  domrepo.DatasetStore
	prices domrepo.PriceSource
}

func NewCalendarEchoHandler(logger *xlogger.Logger, store domrepo.DatasetStore, prices domrepo.PriceSource) *CalendarEchoHandler {
	return &CalendarEchoHandler{logger: logger, store: store, prices: prices}
}

func (h *CalendarEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/events", h.Events)
	g.GET("/aligned", h.Aligned)
	g.GET("/bars", h.Bars)
	e.GET("/health", h.Health)
}

func (h *CalendarEchoHandler) Events(c echo.Context) error {
	req := &models.EventsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_TIME_RANGE",
			Message: err.Error(),
		}})
	}

	events, err := h.store.QueryEvents(c.Request().Context(), req.Currency, models.Impact(req.Impact), from, to, req.Limit)
	if err != nil {
		h.logger.Error("query events error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, events, int64(len(events)))
}

func (h *CalendarEchoHandler) Aligned(c echo.Context) error {
	req := &models.AlignedRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_TIME_RANGE",
			Message: err.Error(),
		}})
	}

	records, err := h.store.QueryAligned(c.Request().Context(), req.Pair, req.Currency, from, to, req.Limit)
	if err != nil {
		h.logger.Error("query aligned error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, records, int64(len(records)))
}

func (h *CalendarEchoHandler) Bars(c echo.Context) error {
	req := &models.BarsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_TIME_RANGE",
			Message: err.Error(),
		}})
	}

	bars, err := h.prices.LoadBars(c.Request().Context(), req.Pair, domrepo.NormalizePeriod(req.Period))
	if err != nil {
		h.logger.Error("load bars error",
			xlogger.String("pair", req.Pair),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no price data for %s", req.Pair).WithError(err))
	}

	bars = usecase.DeriveLag(bars)
	out := make([]models.PriceBar, 0, len(bars))
	for _, b := range bars {
		if b.BarStart.Before(from) || b.BarStart.After(to) {
			continue
		}
		out = append(out, b)
		if len(out) >= req.Limit {
			break
		}
	}
	return xhttp.ListResponse(c, out, int64(len(out)))
}

func (h *CalendarEchoHandler) Health(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		return xhttp.AppErrorResponse(c, xhttp.InternalError("storage unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// parseRange accepts RFC3339, date-only, or unix-second bounds; empty
// bounds default to a wide range.
func parseRange(from, to string) (time.Time, time.Time, error) {
	f := time.Unix(0, 0).UTC()
	if from != "" {
		t, ok := util.ParseTime(from)
		if !ok {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from bound %q", from)
		}
		f = t.UTC()
	}

	u := time.Now().UTC().Add(366 * 24 * time.Hour)
	if to != "" {
		t, ok := util.ParseTime(to)
		if !ok {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to bound %q", to)
		}
		u = t.UTC()
	}
	return f, u, nil
}
