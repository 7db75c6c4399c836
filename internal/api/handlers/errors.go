package handlers

import (
	"net/http"

	"energyhub/internal/model"

	"github.com/gin-gonic/gin"
)

// writeErr maps a core SchedulerError to the ErrorResponse envelope and an
// appropriate HTTP status, or falls back to 500 for an error the core
// never documented producing for this path.
func writeErr(c *gin.Context, err error) {
	kind, ok := model.KindOf(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "INTERNAL_ERROR", "message": err.Error()},
		})
		return
	}

	status := http.StatusInternalServerError
	switch kind {
	case model.ErrInvalidRequest:
		status = http.StatusBadRequest
	case model.ErrInfeasibleSchedule:
		status = http.StatusUnprocessableEntity
	case model.ErrSolverFailure:
		status = http.StatusInternalServerError
	case model.ErrUnknownSource:
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{
		"error": gin.H{"code": kind.String(), "message": err.Error()},
	})
}
