package controllers

import (
	"strconv"

	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/gin-gonic/gin"
)

func paramId(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, utils.NewValidationError("id", "invalid id")
	}
	return id, nil
}

func queryInt(c *gin.Context, name string) *int {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func queryString(c *gin.Context, name string) *string {
	return utils.NilIfEmpty(c.Query(name))
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}
