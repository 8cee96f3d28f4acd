// controllers/service.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"services-backend/models"
	"services-backend/services"
	"services-backend/utils"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Duration    int             `json:"duration" binding:"required,min=1"` // in minutes
	CategoryID  uuid.UUID       `json:"categoryId" binding:"required"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name               string          `json:"name" binding:"required"`
	Description        string          `json:"description" binding:"required"`
	Price              decimal.Decimal `json:"price"`
	Duration           int             `json:"duration" binding:"required,min=1"`
	CategoryID         uuid.UUID       `json:"categoryId" binding:"required"`
	AvailabilityStatus string          `json:"availabilityStatus" binding:"required"`
}

// AssignBarbersInput carries the full replacement list of barber ids
type AssignBarbersInput struct {
	BarberIDs []string `json:"barberIds" binding:"required"`
}

// ServiceResponse is the API shape of a service, statuses in display form
type ServiceResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	Duration           int             `json:"duration"`
	CategoryID         uuid.UUID       `json:"categoryId"`
	BarberIDs          []string        `json:"barberIds"`
	AvailabilityStatus string          `json:"availabilityStatus"`
	SystemStatus       string          `json:"systemStatus"`
}

func toServiceResponse(svc *models.Service, barberIDs []string) ServiceResponse {
	if barberIDs == nil {
		barberIDs = svc.BarberIDs()
	}
	return ServiceResponse{
		ID:                 svc.ID,
		Name:               svc.Name,
		Description:        svc.Description,
		Price:              svc.Price,
		Duration:           svc.Duration,
		CategoryID:         svc.CategoryID,
		BarberIDs:          barberIDs,
		AvailabilityStatus: svc.AvailabilityStatus.Display(),
		SystemStatus:       svc.SystemStatus.Display(),
	}
}

type ServiceController struct {
	Catalog *services.CatalogService
}

// CreateService registers a new service in the catalog
func (sc *ServiceController) CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.Price.IsPositive() {
		utils.RespondWithError(c, http.StatusBadRequest, "Price must be greater than zero")
		return
	}

	svc, err := sc.Catalog.Create(services.CreateServiceInput{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Duration:    input.Duration,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toServiceResponse(svc, []string{}))
}

// GetServices retrieves the catalog, active services only unless asked
func (sc *ServiceController) GetServices(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"

	list, err := sc.Catalog.List(includeInactive)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	out := make([]ServiceResponse, 0, len(list))
	for _, svc := range list {
		out = append(out, toServiceResponse(svc, nil))
	}
	c.JSON(http.StatusOK, out)
}

// GetService retrieves a specific service by ID
func (sc *ServiceController) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	svc, err := sc.Catalog.GetByID(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toServiceResponse(svc, nil))
}

// UpdateService updates an existing service
func (sc *ServiceController) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.Price.IsPositive() {
		utils.RespondWithError(c, http.StatusBadRequest, "Price must be greater than zero")
		return
	}

	svc, barberIDs, err := sc.Catalog.Update(id, services.UpdateServiceInput{
		Name:               input.Name,
		Description:        input.Description,
		Price:              input.Price,
		Duration:           input.Duration,
		CategoryID:         input.CategoryID,
		AvailabilityStatus: input.AvailabilityStatus,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toServiceResponse(svc, barberIDs))
}

// AssignBarbers replaces the barber list assigned to a service
func (sc *ServiceController) AssignBarbers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input AssignBarbersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc, barberIDs, err := sc.Catalog.AssignBarbers(id, input.BarberIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toServiceResponse(svc, barberIDs))
}

// GetServiceBarbers returns only the barber ids assigned to a service
func (sc *ServiceController) GetServiceBarbers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	ids, err := sc.Catalog.GetBarberIDs(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ids)
}

// DeleteService inactivates a service (soft delete)
func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	if err := sc.Catalog.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
