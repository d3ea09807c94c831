package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type toggleActiveInput struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// toggleActiveHandler adapts a model's ToggleActiveX function into a handler.
func toggleActiveHandler[T any](toggle func(ctx context.Context, id int, isActive bool) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input toggleActiveInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		result, err := toggle(c.Request.Context(), id, *input.IsActive)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, result)
	}
}

// getHandler adapts a model's GetX function into a detail handler.
func getHandler[T any](get func(ctx context.Context, id int) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		result, err := get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, result)
	}
}
