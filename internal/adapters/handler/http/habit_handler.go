package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
)

type HabitHandler struct {
	svc       *services.HabitService
	analytics *services.AnalyticsService
}

func NewHabitHandler(svc *services.HabitService, analytics *services.AnalyticsService) *HabitHandler {
	return &HabitHandler{
		svc:       svc,
		analytics: analytics,
	}
}

type createHabitRequest struct {
	ID          string `json:"id" binding:"omitempty,uuid"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`
}

type updateHabitRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	SortOrder   *int    `json:"sort_order"`
	Version     int     `json:"version"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/sync", h.Sync)
		habits.GET("/dashboard", h.Dashboard)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
		habits.POST("/:id/archive", h.Archive)
		habits.POST("/:id/restore", h.Restore)
		habits.GET("/:id/stats", h.Stats)
	}
}

// Create godoc
// @Summary      Create a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        body  body      createHabitRequest  true  "Habit"
// @Success      201   {object}  domain.Habit
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		ID:          req.ID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List godoc
// @Summary      List the caller's habits
// @Tags         habits
// @Produce      json
// @Success      200  {array}  domain.Habit
// @Security     BearerAuth
// @Router       /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []*domain.Habit{}
	}

	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	habit, err := h.svc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Sync godoc
// @Summary      Habits changed since last_sync, deletions included
// @Tags         habits
// @Produce      json
// @Param        last_sync  query  string  false  "RFC3339 timestamp"
// @Security     BearerAuth
// @Router       /habits/sync [get]
func (h *HabitHandler) Sync(c *gin.Context) {
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

// Update godoc
// @Summary      Partially update a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Habit ID"
// @Param        body  body      updateHabitRequest  true  "Changed fields"
// @Success      200   {object}  domain.Habit
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /habits/{id} [put]
func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:          c.Param("id"),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		SortOrder:   req.SortOrder,
		Version:     req.Version,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
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

func (h *HabitHandler) Archive(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	habit, err := h.svc.Archive(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Restore(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	habit, err := h.svc.Restore(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// Stats godoc
// @Summary      Streak, permanence and risk of one habit
// @Tags         analytics
// @Produce      json
// @Param        id    path   string  true   "Habit ID"
// @Param        from  query  string  false  "YYYY-MM-DD, defaults to the whole history"
// @Param        to    query  string  false  "YYYY-MM-DD, clamped to today"
// @Param        tz    query  string  false  "IANA zone used to resolve today"
// @Success      200   {object}  services.HabitInsights
// @Security     BearerAuth
// @Router       /habits/{id}/stats [get]
func (h *HabitHandler) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	today, ok := callerToday(c)
	if !ok {
		return
	}
	from, ok := dateQuery(c, "from", "")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to", "")
	if !ok {
		return
	}

	insights, err := h.analytics.HabitInsights(c.Request.Context(), services.InsightsInput{
		UserID:  userID,
		HabitID: c.Param("id"),
		From:    from,
		To:      to,
		Today:   today,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}

// Dashboard godoc
// @Summary      Analytics for every active habit as of today
// @Tags         analytics
// @Produce      json
// @Param        tz  query  string  false  "IANA zone used to resolve today"
// @Success      200  {object}  services.Dashboard
// @Security     BearerAuth
// @Router       /habits/dashboard [get]
func (h *HabitHandler) Dashboard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	today, ok := callerToday(c)
	if !ok {
		return
	}

	dash, err := h.analytics.Dashboard(c.Request.Context(), userID, today)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}
