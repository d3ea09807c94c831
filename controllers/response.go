package controllers

import (
	"errors"
	"net/http"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Response struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Data       interface{}        `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Errors     map[string]string  `json:"errors,omitempty"`
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

func respondList(c *gin.Context, data interface{}, pagination *models.Pagination) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Pagination: pagination})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

// respondBindError maps gin binding failures to field messages.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "invalid request body",
			Errors:  utils.ProcessValidationErrors(err),
		})
		return
	}
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
}

// respondError maps the model error taxonomy onto HTTP statuses.
// Scope mismatches surface as 404 so a foreign org id is
// indistinguishable from a missing record.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Message: "record not found"})
	case errors.Is(err, utils.ErrorInsufficientStock),
		errors.Is(err, utils.ErrorInsufficientReserved):
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
	case utils.IsValidationError(err), utils.IsStateError(err):
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
	case utils.IsConflictError(err):
		c.JSON(http.StatusConflict, Response{Success: false, Message: err.Error()})
	default:
		logger := config.GetLogger()
		config.LogError(logger, "controllers", c.FullPath(), "handler", nil, err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "internal server error"})
	}
}
