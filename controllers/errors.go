package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"services-backend/services"
	"services-backend/utils"
)

// handleServiceError maps the service-layer error families onto HTTP
// statuses. Anything unrecognized is a 500 with a generic message.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyExists):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrBusinessRule):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
