package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
)

const defaultJournalWindowDays = 30

type JournalHandler struct {
	svc *services.JournalService
}

func NewJournalHandler(svc *services.JournalService) *JournalHandler {
	return &JournalHandler{svc: svc}
}

type createJournalRequest struct {
	ID      string `json:"id" binding:"omitempty,uuid"`
	Date    string `json:"entry_date" binding:"required"`
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
	Mood    *int   `json:"mood"`
}

type updateJournalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
	Mood    *int   `json:"mood"`
	Version int    `json:"version"`
}

func (h *JournalHandler) RegisterRoutes(router *gin.RouterGroup) {
	journal := router.Group("/journal")
	{
		journal.POST("", h.Create)
		journal.GET("", h.List)
		journal.GET("/sync", h.Sync)
		journal.GET("/date/:date", h.GetByDate)
		journal.GET("/:id", h.Get)
		journal.PUT("/:id", h.Update)
		journal.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary      Write the journal entry of a day
// @Tags         journal
// @Accept       json
// @Produce      json
// @Param        body  body      createJournalRequest  true  "Entry"
// @Success      201   {object}  domain.JournalEntry
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /journal [post]
func (h *JournalHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.svc.Create(c.Request.Context(), services.CreateJournalInput{
		ID:      req.ID,
		UserID:  userID,
		Date:    req.Date,
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// List godoc
// @Summary      Journal entries in a date window, newest first
// @Tags         journal
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD, defaults to 30 days before to"
// @Param        to    query  string  false  "YYYY-MM-DD, defaults to today"
// @Success      200  {array}  domain.JournalEntry
// @Security     BearerAuth
// @Router       /journal [get]
func (h *JournalHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	today, ok := callerToday(c)
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to", today)
	if !ok {
		return
	}
	defaultFrom, err := to.AddDays(-defaultJournalWindowDays)
	if err != nil {
		respondError(c, err)
		return
	}
	from, ok := dateQuery(c, "from", defaultFrom)
	if !ok {
		return
	}

	entries, err := h.svc.ListByDateRange(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	if entries == nil {
		entries = []*domain.JournalEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

func (h *JournalHandler) Sync(c *gin.Context) {
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

func (h *JournalHandler) GetByDate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.svc.GetByDate(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *JournalHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.svc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *JournalHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.svc.Update(c.Request.Context(), services.UpdateJournalInput{
		ID:      c.Param("id"),
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
		Version: req.Version,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *JournalHandler) Delete(c *gin.Context) {
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
