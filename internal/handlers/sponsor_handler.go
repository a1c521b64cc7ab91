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

type sponsorRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Phone          string `json:"phone"`
	Representative string `json:"representative"`
	LogoLight      string `json:"logoLight"`
	LogoDark       string `json:"logoDark"`
	CityIDs        []uint `json:"cityIds"`
}

var errUnknownCity = errors.New("one or more cities do not exist")

// withCities preloads the association ordered by city name so the flattened
// cityIds/cityNames lists come out stable across reads.
func withCities(db *gorm.DB) *gorm.DB {
	return db.Preload("Cities", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("cities.name ASC")
	})
}

// syncSponsorCities replaces the sponsor's association set with exactly the
// requested cities. Must run inside a transaction: if any requested city is
// missing the whole replace rolls back and the previous set survives.
func syncSponsorCities(tx *gorm.DB, sponsor *models.Sponsor, cityIDs []uint) error {
	ids := helpers.UniqueIDs(cityIDs)

	cities := make([]models.City, 0, len(ids))
	if len(ids) > 0 {
		if err := tx.Where("id IN ?", ids).Find(&cities).Error; err != nil {
			return err
		}
		if len(cities) != len(ids) {
			return errUnknownCity
		}
	}

	if len(cities) == 0 {
		return tx.Model(sponsor).Association("Cities").Clear()
	}
	return tx.Model(sponsor).Association("Cities").Replace(cities)
}

func respondSponsorWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		helpers.RespondWithError(c, http.StatusBadRequest, "A sponsor with that email already exists.")
	case errors.Is(err, errUnknownCity):
		helpers.RespondWithError(c, http.StatusBadRequest, "One or more cities do not exist.")
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save sponsor.")
	}
}

func ListSponsors(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var sponsors []models.Sponsor
	if err := withCities(db).Order("created_at DESC").Find(&sponsors).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving sponsors.")
		return
	}

	c.JSON(http.StatusOK, models.SponsorViews(sponsors))
}

func GetSponsor(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid sponsor id.")
		return
	}

	var sponsor models.Sponsor
	if err := withCities(db).First(&sponsor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Sponsor not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving sponsor.")
		return
	}

	c.JSON(http.StatusOK, sponsor.View())
}

func SearchSponsors(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, []models.SponsorView{})
		return
	}

	pattern := "%" + strings.ToLower(q) + "%"
	var sponsors []models.Sponsor
	err := withCities(db).
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(representative) LIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&sponsors).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error searching sponsors.")
		return
	}

	c.JSON(http.StatusOK, models.SponsorViews(sponsors))
}

func CreateSponsor(c *gin.Context) {
	var req sponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing or invalid required fields.")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Sponsor name and email must not be empty.")
		return
	}
	if !helpers.IsValidEmail(email) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid email format.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	sponsor := models.Sponsor{
		Name:           name,
		Email:          email,
		Phone:          strings.TrimSpace(req.Phone),
		Representative: strings.TrimSpace(req.Representative),
		LogoLight:      strings.TrimSpace(req.LogoLight),
		LogoDark:       strings.TrimSpace(req.LogoDark),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sponsor).Error; err != nil {
			return err
		}
		return syncSponsorCities(tx, &sponsor, req.CityIDs)
	})
	if err != nil {
		respondSponsorWriteError(c, err)
		return
	}

	if err := withCities(db).First(&sponsor, sponsor.ID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving sponsor.")
		return
	}

	view := sponsor.View()
	if hub := middleware.GetNotifier(c); hub != nil {
		hub.Publish("sponsor_agregado", view)
	}

	c.JSON(http.StatusCreated, view)
}

func UpdateSponsor(c *gin.Context) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid sponsor id.")
		return
	}

	var req sponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing or invalid required fields.")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Sponsor name and email must not be empty.")
		return
	}
	if !helpers.IsValidEmail(email) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid email format.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var sponsor models.Sponsor
	if err := db.First(&sponsor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Sponsor not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding sponsor.")
		return
	}

	sponsor.Name = name
	sponsor.Email = email
	sponsor.Phone = strings.TrimSpace(req.Phone)
	sponsor.Representative = strings.TrimSpace(req.Representative)
	sponsor.LogoLight = strings.TrimSpace(req.LogoLight)
	sponsor.LogoDark = strings.TrimSpace(req.LogoDark)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&sponsor).Error; err != nil {
			return err
		}
		return syncSponsorCities(tx, &sponsor, req.CityIDs)
	})
	if err != nil {
		respondSponsorWriteError(c, err)
		return
	}

	if err := withCities(db).First(&sponsor, sponsor.ID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving sponsor.")
		return
	}

	view := sponsor.View()
	if hub := middleware.GetNotifier(c); hub != nil {
		hub.Publish("sponsor_actualizado", view)
	}

	c.JSON(http.StatusOK, view)
}

func DeleteSponsor(c *gin.Context) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid sponsor id.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var sponsor models.Sponsor
	if err := db.First(&sponsor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Sponsor not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding sponsor.")
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&sponsor).Association("Cities").Clear(); err != nil {
			return err
		}
		return tx.Delete(&sponsor).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete sponsor.")
		return
	}

	message := "Sponsor deleted successfully."
	if hub := middleware.GetNotifier(c); hub != nil {
		hub.Publish("sponsor_eliminado", gin.H{"id": sponsor.ID, "message": message})
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
