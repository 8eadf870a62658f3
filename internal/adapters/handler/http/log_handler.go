package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
)

type LogHandler struct {
	svc *services.HabitLogService
}

func NewLogHandler(svc *services.HabitLogService) *LogHandler {
	return &LogHandler{svc: svc}
}

type recordLogRequest struct {
	HabitID   string `json:"habit_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Completed bool   `json:"completed"`
}

type updateLogRequest struct {
	Completed bool `json:"completed"`
	Version   int  `json:"version"`
}

func (h *LogHandler) RegisterRoutes(router *gin.RouterGroup) {
	logs := router.Group("/logs")
	{
		logs.POST("", h.Record)
		logs.GET("", h.List)
		logs.GET("/sync", h.Sync)
		logs.GET("/:id", h.Get)
		logs.PUT("/:id", h.Update)
		logs.DELETE("/:id", h.Delete)
	}
}

// Record godoc
// @Summary      Mark a habit done or missed for a day
// @Description  Upserts the single log of (habit_id, date). Repeating the same state is a no-op.
// @Tags         logs
// @Accept       json
// @Produce      json
// @Param        body  body      recordLogRequest  true  "Log"
// @Success      200   {object}  domain.HabitLog
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Security     BearerAuth
// @Router       /logs [post]
func (h *LogHandler) Record(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req recordLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l, err := h.svc.Record(c.Request.Context(), services.RecordLogInput{
		HabitID:   req.HabitID,
		UserID:    userID,
		Date:      req.Date,
		Completed: req.Completed,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

// List godoc
// @Summary      Logs of one habit in a date window
// @Tags         logs
// @Produce      json
// @Param        habit_id  query  string  true   "Habit ID"
// @Param        from      query  string  false  "YYYY-MM-DD"
// @Param        to        query  string  false  "YYYY-MM-DD, defaults to today"
// @Success      200  {array}  domain.HabitLog
// @Security     BearerAuth
// @Router       /logs [get]
func (h *LogHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	habitID := c.Query("habit_id")
	if habitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "habit_id is required"})
		return
	}

	today, ok := callerToday(c)
	if !ok {
		return
	}
	from, ok := dateQuery(c, "from", domain.MinDate)
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to", today)
	if !ok {
		return
	}

	logs, err := h.svc.ListByHabitID(c.Request.Context(), habitID, userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	if logs == nil {
		logs = []domain.HabitLog{}
	}

	c.JSON(http.StatusOK, logs)
}

func (h *LogHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	l, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

func (h *LogHandler) Sync(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	since, ok := lastSync(c)
	if !ok {
		return
	}

	deltas, err := h.svc.GetDelta(c.Request.Context(), userID, since)
	if err != nil {
		respondError(c, err)
		return
	}

	syncResponse(c, deltas)
}

func (h *LogHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l, err := h.svc.Update(c.Request.Context(), services.UpdateLogInput{
		ID:        c.Param("id"),
		UserID:    userID,
		Completed: req.Completed,
		Version:   req.Version,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

func (h *LogHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
