package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/weekly", h.GetWeeklyStats)
}

// GetWeeklyStats godoc
// @Summary      Daily completion of every active habit
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD, defaults to end_date minus 6 days"
// @Param        end_date    query  string  false  "YYYY-MM-DD, defaults to today"
// @Param        tz          query  string  false  "IANA zone used to resolve today"
// @Success      200  {object}  services.WeeklyStats
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /stats/weekly [get]
func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	today, ok := callerToday(c)
	if !ok {
		return
	}
	endDate, ok := dateQuery(c, "end_date", today)
	if !ok {
		return
	}
	defaultStart, err := endDate.AddDays(-6)
	if err != nil {
		respondError(c, err)
		return
	}
	startDate, ok := dateQuery(c, "start_date", defaultStart)
	if !ok {
		return
	}

	stats, err := h.svc.GetWeeklyStats(c.Request.Context(), services.StatsInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
