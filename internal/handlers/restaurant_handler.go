package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jpcarrillo/gastroguia/internal/helpers"
	"github.com/jpcarrillo/gastroguia/internal/middleware"
	"github.com/jpcarrillo/gastroguia/internal/models"
	"gorm.io/gorm"
)

type restaurantRequest struct {
	OfficialName   string          `json:"officialName" binding:"required"`
	DisplayName    string          `json:"displayName" binding:"required"`
	Description    string          `json:"description"`
	Representative string          `json:"representative"`
	TableCount     *int            `json:"tableCount"`
	CityID         *uint           `json:"cityId"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Website        string          `json:"website"`
	Address        string          `json:"address"`
	Sedes          json.RawMessage `json:"sedes"`
	Proposals      string          `json:"proposals"`
	Editions       string          `json:"editions"`
	Awards         string          `json:"awards"`
}

// serializedSedes keeps the submitted branch list as the exact JSON text it
// arrived with, so reads return it byte-for-byte.
func serializedSedes(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	return string(raw)
}

func applyRestaurantRequest(restaurant *models.Restaurant, req *restaurantRequest) {
	restaurant.OfficialName = strings.TrimSpace(req.OfficialName)
	restaurant.DisplayName = strings.TrimSpace(req.DisplayName)
	restaurant.Description = strings.TrimSpace(req.Description)
	restaurant.Representative = strings.TrimSpace(req.Representative)
	restaurant.TableCount = req.TableCount
	restaurant.CityID = req.CityID
	restaurant.Phone = strings.TrimSpace(req.Phone)
	restaurant.Email = strings.TrimSpace(req.Email)
	restaurant.Website = strings.TrimSpace(req.Website)
	restaurant.Address = strings.TrimSpace(req.Address)
	restaurant.Sedes = serializedSedes(req.Sedes)
	restaurant.Proposals = strings.TrimSpace(req.Proposals)
	restaurant.Editions = strings.TrimSpace(req.Editions)
	restaurant.Awards = strings.TrimSpace(req.Awards)
}

func cityExists(db *gorm.DB, id uint) (bool, error) {
	var city models.City
	err := db.First(&city, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func ListRestaurants(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var restaurants []models.Restaurant
	if err := db.Preload("City").Order("created_at DESC").Find(&restaurants).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving restaurants.")
		return
	}

	c.JSON(http.StatusOK, models.RestaurantViews(restaurants))
}

func GetRestaurant(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid restaurant id.")
		return
	}

	var restaurant models.Restaurant
	if err := db.Preload("City").First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Restaurant not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving restaurant.")
		return
	}

	c.JSON(http.StatusOK, restaurant.View())
}

func SearchRestaurants(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, []models.RestaurantView{})
		return
	}

	pattern := "%" + strings.ToLower(q) + "%"
	var restaurants []models.Restaurant
	err := db.Preload("City").
		Where("LOWER(official_name) LIKE ? OR LOWER(display_name) LIKE ? OR LOWER(representative) LIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&restaurants).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error searching restaurants.")
		return
	}

	c.JSON(http.StatusOK, models.RestaurantViews(restaurants))
}

func CreateRestaurant(c *gin.Context) {
	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	if strings.TrimSpace(req.OfficialName) == "" || strings.TrimSpace(req.DisplayName) == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Restaurant names must not be empty.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	if req.CityID != nil {
		exists, err := cityExists(db, *req.CityID)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error verifying city.")
			return
		}
		if !exists {
			helpers.RespondWithError(c, http.StatusBadRequest, "Referenced city does not exist.")
			return
		}
	}

	var restaurant models.Restaurant
	applyRestaurantRequest(&restaurant, &req)

	if err := db.Create(&restaurant).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create restaurant.")
		return
	}

	if err := db.Preload("City").First(&restaurant, restaurant.ID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving restaurant.")
		return
	}

	view := restaurant.View()
	if hub := middleware.GetNotifier(c); hub != nil {
		hub.Publish("restaurante_agregado", view)
	}

	c.JSON(http.StatusCreated, view)
}

func UpdateRestaurant(c *gin.Context) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid restaurant id.")
		return
	}

	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	if strings.TrimSpace(req.OfficialName) == "" || strings.TrimSpace(req.DisplayName) == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Restaurant names must not be empty.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var restaurant models.Restaurant
	if err := db.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Restaurant not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding restaurant.")
		return
	}

	if req.CityID != nil {
		exists, err := cityExists(db, *req.CityID)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error verifying city.")
			return
		}
		if !exists {
			helpers.RespondWithError(c, http.StatusBadRequest, "Referenced city does not exist.")
			return
		}
	}

	applyRestaurantRequest(&restaurant, &req)

	// Save writes every column, so a request that cleared cityId nulls the
	// reference here as well.
	if err := db.Save(&restaurant).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update restaurant.")
		return
	}

	if err := db.Preload("City").First(&restaurant, restaurant.ID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving restaurant.")
		return
	}

	view := restaurant.View()
	if hub := middleware.GetNotifier(c); hub != nil {
		hub.Publish("restaurante_actualizado", view)
	}

	c.JSON(http.StatusOK, view)
}

func DeleteRestaurant(c *gin.Context) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid restaurant id.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var restaurant models.Restaurant
	if err := db.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Restaurant not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding restaurant.")
		return
	}

	if err := db.Delete(&restaurant).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete restaurant.")
		return
	}

	message := "Restaurant deleted successfully."
	if hub := middleware.GetNotifier(c); hub != nil {
		hub.Publish("restaurante_eliminado", gin.H{"id": restaurant.ID, "message": message})
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
