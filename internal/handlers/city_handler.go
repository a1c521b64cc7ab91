package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jpcarrillo/gastroguia/internal/helpers"
	"github.com/jpcarrillo/gastroguia/internal/middleware"
	"github.com/jpcarrillo/gastroguia/internal/models"
	"gorm.io/gorm"
)

type cityRequest struct {
	Name string `json:"name" binding:"required"`
}

func ListCities(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	cities := make([]models.City, 0)
	if err := db.Order("name ASC").Find(&cities).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving cities.")
		return
	}

	c.JSON(http.StatusOK, cities)
}

func GetCity(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid city id.")
		return
	}

	var city models.City
	if err := db.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "City not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving city.")
		return
	}

	c.JSON(http.StatusOK, city)
}

func SearchCities(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	cities := make([]models.City, 0)

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, cities)
		return
	}

	pattern := "%" + strings.ToLower(q) + "%"
	if err := db.Where("LOWER(name) LIKE ?", pattern).Order("name ASC").Find(&cities).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error searching cities.")
		return
	}

	c.JSON(http.StatusOK, cities)
}

func CreateCity(c *gin.Context) {
	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "City name must not be empty.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	city := models.City{Name: name}
	if err := db.Create(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusBadRequest, "A city with that name already exists.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create city.")
		return
	}

	if hub := middleware.GetNotifier(c); hub != nil {
		hub.Publish("ciudad_agregada", city)
	}

	c.JSON(http.StatusCreated, city)
}

func UpdateCity(c *gin.Context) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid city id.")
		return
	}

	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "City name must not be empty.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var city models.City
	if err := db.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "City not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding city.")
		return
	}

	city.Name = name
	if err := db.Save(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusBadRequest, "A city with that name already exists.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update city.")
		return
	}

	if hub := middleware.GetNotifier(c); hub != nil {
		hub.Publish("ciudad_actualizada", city)
	}

	c.JSON(http.StatusOK, city)
}

// DeleteCity removes a city. Association rows are cleared and restaurants
// pointing at the city keep existing with their reference nulled, all in one
// transaction.
func DeleteCity(c *gin.Context) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid city id.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var city models.City
	if err := db.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "City not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding city.")
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Restaurant{}).Where("city_id = ?", city.ID).Update("city_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM sponsor_cities WHERE city_id = ?", city.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&city).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete city.")
		return
	}

	message := "City deleted successfully."
	if hub := middleware.GetNotifier(c); hub != nil {
		hub.Publish("ciudad_eliminada", gin.H{"id": city.ID, "message": message})
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
