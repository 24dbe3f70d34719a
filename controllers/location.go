package controllers

import (
	"errors"
	"net/http"

	"airlast-backend/config"
	"airlast-backend/models"
	"airlast-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateLocationInput defines the expected JSON structure for creating a location
type CreateLocationInput struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	BuildingName string `json:"building_name"`
}

// UpdateLocationInput defines the expected JSON structure for updating a location
type UpdateLocationInput struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Zip          *string `json:"zip"`
	BuildingName *string `json:"building_name"`
}

// CreateUnitInput defines the expected JSON structure for adding a unit to a location
type CreateUnitInput struct {
	UnitNumber string `json:"unit_number" binding:"required"`
	Status     string `json:"status" binding:"omitempty,oneof=active inactive"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// CreateLocation creates a new customer location
func CreateLocation(c *gin.Context) {
	var input CreateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	location := models.Location{
		Name:         input.Name,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		Zip:          input.Zip,
		BuildingName: input.BuildingName,
	}

	if err := config.DB.Create(&location).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create location")
		return
	}

	c.JSON(http.StatusCreated, location)
}

// GetLocations lists all locations with their units
func GetLocations(c *gin.Context) {
	var locations []models.Location
	if err := config.DB.Preload("Units").Order("name ASC").Find(&locations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve locations")
		return
	}

	c.JSON(http.StatusOK, locations)
}

// GetLocation retrieves a specific location by ID
func GetLocation(c *gin.Context) {
	locationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid location ID format")
		return
	}

	var location models.Location
	if err := config.DB.Preload("Units").First(&location, "id = ?", locationUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Location not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, location)
}

// UpdateLocation updates an existing location
func UpdateLocation(c *gin.Context) {
	locationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid location ID format")
		return
	}

	var input UpdateLocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var location models.Location
	if err := config.DB.First(&location, "id = ?", locationUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Location not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		location.Name = *input.Name
	}
	if input.Address != nil {
		location.Address = *input.Address
	}
	if input.City != nil {
		location.City = *input.City
	}
	if input.State != nil {
		location.State = *input.State
	}
	if input.Zip != nil {
		location.Zip = *input.Zip
	}
	if input.BuildingName != nil {
		location.BuildingName = *input.BuildingName
	}

	if err := config.DB.Save(&location).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update location")
		return
	}

	c.JSON(http.StatusOK, location)
}

// AddUnit adds an HVAC unit to a location
func AddUnit(c *gin.Context) {
	locationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid location ID format")
		return
	}

	var input CreateUnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var location models.Location
	if err := config.DB.First(&location, "id = ?", locationUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Location not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	unit := models.Unit{
		LocationID: location.ID,
		UnitNumber: input.UnitNumber,
		Status:     input.Status,
		Email:      input.Email,
		Phone:      input.Phone,
	}
	if unit.Status == "" {
		unit.Status = "active"
	}

	if err := config.DB.Create(&unit).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create unit")
		return
	}

	c.JSON(http.StatusCreated, unit)
}

// DeleteLocation deletes a location
func DeleteLocation(c *gin.Context) {
	locationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid location ID format")
		return
	}

	result := config.DB.Where("id = ?", locationUUID).Delete(&models.Location{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete location")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Location not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}
