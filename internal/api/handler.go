package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/findim/internal/calendar"
	"github.com/guttosm/findim/internal/domain/dto"
	"github.com/guttosm/findim/internal/middleware"
	"github.com/guttosm/findim/internal/series"
	"github.com/guttosm/findim/internal/service"
)

const (
	// maxCalendarSpan bounds a single calendar request.
	maxCalendarSpan = 50 * 366 * 24 * time.Hour

	defaultBusinessDays = 5
	maxBusinessDays     = 60
)

// Handler serves the calendar and time series endpoints.
//
// Responsibilities:
//   - Validate path and query parameters
//   - Delegate to the calendar and series services
//   - Translate results into response DTOs with the right status codes
type Handler struct {
	calendar service.CalendarService
	series   service.SeriesService
	now      func() time.Time
}

// NewHandler constructs a Handler over the given services.
func NewHandler(cal service.CalendarService, ser service.SeriesService) *Handler {
	return &Handler{calendar: cal, series: ser, now: time.Now}
}

// GetCalendar godoc
// @Summary      Build the date dimension
// @Description  Returns one row per day in [start, end] with calendar attributes and the national holiday flag. An inverted range returns an empty list.
// @Tags         calendar
// @Produce      json
// @Param        start  query     string  true  "First day (YYYY-MM-DD)" example(2023-01-01)
// @Param        end    query     string  true  "Last day (YYYY-MM-DD)"  example(2025-12-31)
// @Success      200    {object}  dto.CalendarResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse     "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/v1/calendar [get]
func (h *Handler) GetCalendar(c *gin.Context) {
	start, ok := parseDateQuery(c, "start", true)
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end", true)
	if !ok {
		return
	}
	if end.Sub(start) > maxCalendarSpan {
		middleware.AbortWithError(c, http.StatusBadRequest, "range too large, at most 50 years per request", nil)
		return
	}

	days, err := h.calendar.BuildDimension(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, calendar.ErrYearOutOfRange) {
			middleware.AbortWithError(c, http.StatusBadRequest, "year out of range", err)
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to build date dimension", err)
		return
	}

	c.JSON(http.StatusOK, dto.CalendarResponse{
		Start: start.Format(calendar.DateLayout),
		End:   end.Format(calendar.DateLayout),
		Count: len(days),
		Days:  days,
	})
}

// GetHolidays godoc
// @Summary      National holidays of a year
// @Description  Returns the fixed and Easter-based Brazilian national holidays, sorted by date
// @Tags         calendar
// @Produce      json
// @Param        year  path      int  true  "Year (1..9999)" example(2024)
// @Success      200   {object}  dto.HolidaysResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse     "Bad Request"
// @Router       /api/v1/holidays/{year} [get]
func (h *Handler) GetHolidays(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "year must be an integer", err)
		return
	}

	hs, err := h.calendar.Holidays(c.Request.Context(), year)
	if err != nil {
		if errors.Is(err, calendar.ErrYearOutOfRange) {
			middleware.AbortWithError(c, http.StatusBadRequest, "year out of range", err)
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to compute holidays", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewHolidaysResponse(year, hs, calendar.DateLayout))
}

// GetBusinessDays godoc
// @Summary      Last business days
// @Description  Returns the last n business days up to and including from, most recent first
// @Tags         calendar
// @Produce      json
// @Param        n     query     int     false  "How many days (1..60, default 5)" example(5)
// @Param        from  query     string  false  "Reference day (YYYY-MM-DD, default today)" example(2024-01-02)
// @Success      200   {object}  dto.BusinessDaysResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse         "Bad Request"
// @Router       /api/v1/business-days [get]
func (h *Handler) GetBusinessDays(c *gin.Context) {
	n := defaultBusinessDays
	if s := c.Query("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > maxBusinessDays {
			middleware.AbortWithError(c, http.StatusBadRequest, "n must be an integer between 1 and 60", err)
			return
		}
		n = v
	}

	from, ok := parseDateQuery(c, "from", false)
	if !ok {
		return
	}
	if from.IsZero() {
		from = h.now().UTC()
	}

	days, err := h.calendar.LastBusinessDays(c.Request.Context(), n, from)
	if err != nil {
		if errors.Is(err, calendar.ErrYearOutOfRange) {
			middleware.AbortWithError(c, http.StatusBadRequest, "year out of range", err)
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to compute business days", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBusinessDaysResponse(from, days, calendar.DateLayout))
}

// GetSeries godoc
// @Summary      Normalized economic series
// @Description  Fetches an SGS series from the Central Bank of Brazil, sorts it by date and flags every value change
// @Tags         series
// @Produce      json
// @Param        name        path      string  true   "Series name" Enums(ipca, selic)
// @Param        start_year  query     int     false  "First year (default end_year)" example(2023)
// @Param        end_year    query     int     false  "Last year (default current year)" example(2025)
// @Success      200         {object}  dto.SeriesResponse  "Success"
// @Failure      400         {object}  dto.ErrorResponse   "Bad Request"
// @Failure      404         {object}  dto.ErrorResponse   "Not Found"
// @Failure      500         {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/series/{name} [get]
func (h *Handler) GetSeries(c *gin.Context) {
	name := strings.ToLower(strings.TrimSpace(c.Param("name")))

	endYear, ok := parseYearQuery(c, "end_year", h.now().UTC().Year())
	if !ok {
		return
	}
	startYear, ok := parseYearQuery(c, "start_year", endYear)
	if !ok {
		return
	}

	s, err := h.series.Get(c.Request.Context(), name, startYear, endYear)
	switch {
	case errors.Is(err, series.ErrUnknownSeries):
		middleware.AbortWithError(c, http.StatusNotFound, "unknown series", err)
		return
	case errors.Is(err, service.ErrInvalidRange):
		middleware.AbortWithError(c, http.StatusBadRequest, "start_year must not be after end_year", err)
		return
	case err != nil:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch series", err)
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no data found", nil))
		return
	}

	c.JSON(http.StatusOK, dto.NewSeriesResponse(s, startYear, endYear, calendar.DateLayout))
}

// parseDateQuery reads a YYYY-MM-DD query parameter. Optional parameters that
// are absent yield the zero time. On failure it writes a 400 and returns false.
func parseDateQuery(c *gin.Context, key string, required bool) (time.Time, bool) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		if required {
			middleware.AbortWithError(c, http.StatusBadRequest, key+" is required", nil)
			return time.Time{}, false
		}
		return time.Time{}, true
	}
	t, err := time.Parse(calendar.DateLayout, s)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid "+key+" format, expected YYYY-MM-DD", err)
		return time.Time{}, false
	}
	return t, true
}

func parseYearQuery(c *gin.Context, key string, def int) (int, bool) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return def, true
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > 9999 {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid "+key, err)
		return 0, false
	}
	return v, true
}
