package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"roomify-backend/services"
	"roomify-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the service failure taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, services.ErrAuth):
		code = http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, services.ErrPersistence):
		code = http.StatusInternalServerError
	}
	utils.JSONError(c, code, err.Error())
}

// idParam parses the numeric :id path parameter.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
