package controllers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateUnit() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewUnit
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		unit, err := models.CreateUnit(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, unit)
	}
}

func UpdateUnit() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewUnit
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		unit, err := models.UpdateUnit(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, unit)
	}
}

func DeleteUnit() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if _, err := models.DeleteUnit(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "unit deleted")
	}
}

func ListUnit() gin.HandlerFunc {
	return func(c *gin.Context) {
		units, err := models.ListUnit(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, units)
	}
}

func CreateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCategory
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		category, err := models.CreateCategory(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, category)
	}
}

func UpdateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewCategory
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		category, err := models.UpdateCategory(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, category)
	}
}

func DeleteCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if _, err := models.DeleteCategory(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "category deleted")
	}
}

func ListCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := models.ListCategory(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, categories)
	}
}

func CreateMaterial() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewMaterial
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		material, err := models.CreateMaterial(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, material)
	}
}

func UpdateMaterial() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var input models.NewMaterial
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		material, err := models.UpdateMaterial(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, material)
	}
}

func DeleteMaterial() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if _, err := models.DeleteMaterial(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "material deleted")
	}
}

func GetMaterial() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramId(c)
		if err != nil {
			respondError(c, err)
			return
		}
		material, err := models.GetMaterial(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, material)
	}
}

func ListMaterial() gin.HandlerFunc {
	return func(c *gin.Context) {
		materials, err := models.ListMaterial(c.Request.Context(),
			queryString(c, "name"), queryInt(c, "category_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, materials)
	}
}
