package controllers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/bizmanage_backend/middlewares"
	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/gin-gonic/gin"
)

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerInput struct {
	Organization  models.NewOrganization `json:"organization" binding:"required"`
	AdminName     string                 `json:"admin_name" binding:"required"`
	AdminEmail    string                 `json:"admin_email" binding:"required"`
	AdminPassword string                 `json:"admin_password" binding:"required,min=8"`
}

func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input loginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		user, err := models.GetUserByEmail(c.Request.Context(), input.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "invalid credentials"})
			return
		}
		if user.IsActive != nil && !*user.IsActive {
			c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "account is inactive"})
			return
		}
		if err := utils.ComparePassword(user.Password, input.Password); err != nil {
			c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "invalid credentials"})
			return
		}

		token, err := utils.JwtGenerate(user.ID, user.Name, user.Email, user.OrgId, user.Role)
		if err != nil {
			respondError(c, err)
			return
		}

		respondData(c, http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":     user.ID,
				"name":   user.Name,
				"email":  user.Email,
				"org_id": user.OrgId,
				"role":   user.Role,
			},
		})
	}
}

// Me returns the account behind the current token.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		claim := middlewares.CtxValue(c.Request.Context())
		if claim == nil {
			c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "unauthorized"})
			return
		}
		user, err := models.GetUser(c.Request.Context(), claim.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, user)
	}
}

// Register bootstraps a new organization with its admin user.
func Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input registerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}

		org, admin, err := models.CreateOrganization(c.Request.Context(),
			&input.Organization, input.AdminName, input.AdminEmail, input.AdminPassword)
		if err != nil {
			respondError(c, err)
			return
		}

		respondData(c, http.StatusCreated, gin.H{
			"organization": org,
			"admin": gin.H{
				"id":    admin.ID,
				"name":  admin.Name,
				"email": admin.Email,
			},
		})
	}
}
