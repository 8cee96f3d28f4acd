// controllers/category.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"services-backend/services"
	"services-backend/utils"
)

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
}

type CategoryController struct {
	Categories *services.CategoryService
}

// CreateCategory registers a new service category
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category, err := cc.Categories.Create(input.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategories retrieves all categories
func (cc *CategoryController) GetCategories(c *gin.Context) {
	list, err := cc.Categories.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
