package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jpcarrillo/gastroguia/internal/models"
	"github.com/jpcarrillo/gastroguia/internal/notifier"
	"github.com/jpcarrillo/gastroguia/internal/server"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestServer wires the full router against a per-test in-memory SQLite
// database, mirroring the DB_DRIVER=sqlite production path.
func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB, *notifier.Hub) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(&models.City{}, &models.Sponsor{}, &models.Restaurant{}))

	hub := notifier.NewHub()
	t.Cleanup(hub.Close)

	r := gin.New()
	server.SetupRoutes(r, db, hub)
	return r, db, hub
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

func createCity(t *testing.T, handler http.Handler, name string) models.City {
	t.Helper()

	w := doRequest(t, handler, http.MethodPost, "/api/cities", gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var city models.City
	decodeJSON(t, w, &city)
	return city
}

func createSponsor(t *testing.T, handler http.Handler, email string, cityIDs []uint) models.SponsorView {
	t.Helper()

	w := doRequest(t, handler, http.MethodPost, "/api/sponsors", gin.H{
		"name":    "Sponsor " + email,
		"email":   email,
		"cityIds": cityIDs,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var view models.SponsorView
	decodeJSON(t, w, &view)
	return view
}
