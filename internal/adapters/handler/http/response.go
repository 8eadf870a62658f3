package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-journal/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

var badRequestErrors = []error{
	domain.ErrHabitTitleEmpty,
	domain.ErrHabitTitleTooLong,
	domain.ErrHabitDescTooLong,
	domain.ErrHabitInvalidUserID,
	domain.ErrInvalidColor,
	domain.ErrJournalContentEmpty,
	domain.ErrJournalTitleTooLong,
	domain.ErrJournalTooLong,
	domain.ErrInvalidMood,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrUserInvalidID,
}

var notFoundErrors = []error{
	domain.ErrHabitNotFound,
	domain.ErrLogNotFound,
	domain.ErrJournalEntryNotFound,
	domain.ErrUserNotFound,
}

var conflictErrors = []error{
	domain.ErrHabitConflict,
	domain.ErrLogConflict,
	domain.ErrJournalConflict,
	domain.ErrJournalEntryExists,
	domain.ErrEmailAlreadyExists,
	domain.ErrHabitArchived,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError maps service errors to status codes. Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err), isAny(err, badRequestErrors):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case isAny(err, notFoundErrors):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isAny(err, conflictErrors):
		c.JSON(http.StatusConflict, gin.H{
			"error":   err.Error(),
			"message": "Data has been modified elsewhere. Please sync.",
		})
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}

// lastSync parses the optional last_sync query; empty means a full sync.
func lastSync(c *gin.Context) (time.Time, bool) {
	raw := c.Query("last_sync")
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid last_sync format, use RFC3339"})
		return time.Time{}, false
	}
	return t, true
}

// callerToday resolves the caller's current day from the optional tz query (IANA name).
func callerToday(c *gin.Context) (domain.Date, bool) {
	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tz, expected an IANA zone name"})
			return "", false
		}
		loc = l
	}
	return domain.DateOf(time.Now().In(loc)), true
}

// dateQuery reads an optional YYYY-MM-DD query parameter.
func dateQuery(c *gin.Context, key string, fallback domain.Date) (domain.Date, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key + " format, expected YYYY-MM-DD"})
		return "", false
	}
	return d, true
}

func syncResponse(c *gin.Context, changes any) {
	c.JSON(http.StatusOK, gin.H{
		"changes":   changes,
		"timestamp": time.Now().UTC(),
	})
}
