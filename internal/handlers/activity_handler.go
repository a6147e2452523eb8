package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "assetledger/internal/errors"
	"assetledger/internal/pagination"
	"assetledger/internal/services"
)

// ActivityHandler serves the caller's activity history.
type ActivityHandler struct {
	activity services.ActivityRecorder
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activity services.ActivityRecorder) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// ListActivity handles listing activity entries.
// @Summary     List activity
// @Description Get the authenticated user's asset activity, newest first
// @Tags        activity
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.ActivityLog] "Paginated activity"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /activity/ [get]
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.activity.ListActivity(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
