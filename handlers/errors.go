package handlers

import (
	"errors"
	"net/http"

	"salonbook/services/booking"
	"salonbook/services/salon"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var kindStatus = map[booking.ErrorKind]int{
	booking.KindValidation:         http.StatusBadRequest,
	booking.KindForbidden:          http.StatusForbidden,
	booking.KindNotFound:           http.StatusNotFound,
	booking.KindConflict:           http.StatusConflict,
	booking.KindCancellationWindow: http.StatusUnprocessableEntity,
	booking.KindDependency:         http.StatusBadGateway,
}

// respondError translates service errors into the shared error body.
func respondError(c *gin.Context, err error) {
	logger := getLogger(c)

	if be, ok := booking.AsBookingError(err); ok {
		status, known := kindStatus[be.Kind]
		if !known {
			status = http.StatusInternalServerError
		}
		if status >= http.StatusInternalServerError {
			logger.Error("booking operation failed", zap.String("code", be.Code), zap.Error(err))
		}
		utils.JSONError(c, status, be.Code, be.Message, be.Field)
		return
	}

	var ce *salon.CatalogueError
	switch {
	case errors.As(err, &ce):
		utils.JSONError(c, http.StatusBadRequest, "invalid_service", ce.Message, "")
	case errors.Is(err, salon.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "salon_not_found", "salon not found", "")
	case errors.Is(err, salon.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "forbidden", "salon belongs to another owner", "")
	default:
		logger.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal", "Internal Server Error", "")
	}
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid_body", "Invalid request body", err.Error())
}
