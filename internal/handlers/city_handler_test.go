package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jpcarrillo/gastroguia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCity(t *testing.T) {
	r, _, _ := setupTestServer(t)

	city := createCity(t, r, "Lima")
	assert.NotZero(t, city.ID)
	assert.Equal(t, "Lima", city.Name)
	assert.False(t, city.CreatedAt.IsZero())
}

func TestCreateCityTrimsName(t *testing.T) {
	r, _, _ := setupTestServer(t)

	city := createCity(t, r, "  Arequipa  ")
	assert.Equal(t, "Arequipa", city.Name)
}

func TestCreateCityMissingName(t *testing.T) {
	r, _, _ := setupTestServer(t)

	for _, body := range []gin.H{{}, {"name": ""}, {"name": "   "}} {
		w := doRequest(t, r, http.MethodPost, "/api/cities", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]string
		decodeJSON(t, w, &resp)
		assert.NotEmpty(t, resp["error"])
	}
}

func TestCreateCityDuplicateName(t *testing.T) {
	r, db, _ := setupTestServer(t)

	createCity(t, r, "Lima")

	// trimming applies before the uniqueness check
	w := doRequest(t, r, http.MethodPost, "/api/cities", gin.H{"name": " Lima "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	decodeJSON(t, w, &resp)
	assert.NotEmpty(t, resp["error"])

	var count int64
	require.NoError(t, db.Model(&models.City{}).Where("name = ?", "Lima").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetCity(t *testing.T) {
	r, _, _ := setupTestServer(t)

	city := createCity(t, r, "Cusco")

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/cities/%d", city.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.City
	decodeJSON(t, w, &got)
	assert.Equal(t, city.ID, got.ID)
	assert.Equal(t, "Cusco", got.Name)
}

func TestGetCityNotFound(t *testing.T) {
	r, _, _ := setupTestServer(t)

	w := doRequest(t, r, http.MethodGet, "/api/cities/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/cities/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCities(t *testing.T) {
	r, _, _ := setupTestServer(t)

	createCity(t, r, "Trujillo")
	createCity(t, r, "Arequipa")

	w := doRequest(t, r, http.MethodGet, "/api/cities", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cities []models.City
	decodeJSON(t, w, &cities)
	require.Len(t, cities, 2)
	assert.Equal(t, "Arequipa", cities[0].Name)
	assert.Equal(t, "Trujillo", cities[1].Name)
}

func TestUpdateCity(t *testing.T) {
	r, _, _ := setupTestServer(t)

	city := createCity(t, r, "Lima")

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/cities/%d", city.ID), gin.H{"name": "Lima Metropolitana"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.City
	decodeJSON(t, w, &updated)
	assert.Equal(t, city.ID, updated.ID)
	assert.Equal(t, "Lima Metropolitana", updated.Name)
}

func TestUpdateCityNotFound(t *testing.T) {
	r, _, _ := setupTestServer(t)

	w := doRequest(t, r, http.MethodPut, "/api/cities/999", gin.H{"name": "Nowhere"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCityDuplicateName(t *testing.T) {
	r, _, _ := setupTestServer(t)

	createCity(t, r, "Lima")
	city := createCity(t, r, "Cusco")

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/cities/%d", city.ID), gin.H{"name": "Lima"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCityNotFound(t *testing.T) {
	r, _, _ := setupTestServer(t)

	w := doRequest(t, r, http.MethodDelete, "/api/cities/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCityCascades(t *testing.T) {
	r, db, _ := setupTestServer(t)

	city := createCity(t, r, "Lima")
	sponsor := createSponsor(t, r, "acme@example.com", []uint{city.ID})
	require.Equal(t, []string{"Lima"}, sponsor.CityNames)

	w := doRequest(t, r, http.MethodPost, "/api/restaurants", gin.H{
		"officialName": "La Mar SAC",
		"displayName":  "La Mar",
		"cityId":       city.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	var restaurant models.RestaurantView
	decodeJSON(t, w, &restaurant)
	require.Equal(t, "Lima", restaurant.CityName)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/cities/%d", city.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	// the sponsor survives with an empty association set
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/sponsors/%d", sponsor.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sponsorAfter models.SponsorView
	decodeJSON(t, w, &sponsorAfter)
	assert.Empty(t, sponsorAfter.CityIDs)
	assert.Empty(t, sponsorAfter.CityNames)

	// the restaurant survives with its city reference nulled
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/restaurants/%d", restaurant.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var restaurantAfter models.RestaurantView
	decodeJSON(t, w, &restaurantAfter)
	assert.Nil(t, restaurantAfter.CityID)
	assert.Empty(t, restaurantAfter.CityName)

	var associations int64
	require.NoError(t, db.Table("sponsor_cities").Where("city_id = ?", city.ID).Count(&associations).Error)
	assert.Zero(t, associations)
}

func TestDeleteCityFreesUniqueName(t *testing.T) {
	r, _, _ := setupTestServer(t)

	city := createCity(t, r, "Iquitos")
	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/cities/%d", city.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	recreated := createCity(t, r, "Iquitos")
	assert.NotEqual(t, city.ID, recreated.ID)
}

func TestSearchCitiesEmptyQuery(t *testing.T) {
	r, _, _ := setupTestServer(t)

	createCity(t, r, "Lima")

	for _, path := range []string{"/api/cities/search", "/api/cities/search?q=", "/api/cities/search?q=%20"} {
		w := doRequest(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	}
}

func TestSearchCitiesCaseInsensitive(t *testing.T) {
	r, _, _ := setupTestServer(t)

	createCity(t, r, "Lima")
	createCity(t, r, "Chiclayo")

	w := doRequest(t, r, http.MethodGet, "/api/cities/search?q=LIM", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cities []models.City
	decodeJSON(t, w, &cities)
	require.Len(t, cities, 1)
	assert.Equal(t, "Lima", cities[0].Name)
}
