package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flusk-cnc/flusk-admin-api/config"
	"github.com/flusk-cnc/flusk-admin-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMaterialTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Material{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupMaterialRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/materials", ListMaterials)
	router.POST("/api/v1/materials", CreateMaterial)
	router.PUT("/api/v1/materials/:id", UpdateMaterial)
	router.DELETE("/api/v1/materials/:id", DeleteMaterial)
	return router
}

func TestListMaterials(t *testing.T) {
	db := setupMaterialTestDB(t)
	config.SetDB(db)

	for i := 1; i <= 12; i++ {
		material := models.Material{
			PublicID:  fmt.Sprintf("mat-%03d", i),
			Name:      fmt.Sprintf("Steel S%d", i),
			Thickness: float64(i),
			CostPerM2: 5.0,
		}
		if err := db.Create(&material).Error; err != nil {
			t.Fatalf("Failed to seed material %d: %v", i, err)
		}
	}

	router := setupMaterialRouter()

	tests := []struct {
		name          string
		query         string
		expectedCount int
	}{
		{"first page default size", "", 10},
		{"second page", "?page=2&size=10", 2},
		{"custom size", "?page=1&size=4", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/api/v1/materials"+tt.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.True(t, response["success"].(bool))
			assert.Equal(t, float64(12), response["total"])
			assert.Len(t, response["items"], tt.expectedCount)
		})
	}
}

func TestCreateMaterial(t *testing.T) {
	db := setupMaterialTestDB(t)
	config.SetDB(db)

	router := setupMaterialRouter()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, data map[string]interface{})
	}{
		{
			name: "create full record",
			body: `{"material":"Steel DC01","thickness":2,"setup_price":30,"cost_factor":1.2,"loop_cost":0.5,"cost_per_m2":5}`,
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, data map[string]interface{}) {
				assert.Equal(t, "Steel DC01", data["material"])
				assert.Equal(t, float64(2), data["thickness"])
				assert.Equal(t, float64(30), data["setup_price"])
				assert.True(t, data["stock"].(bool), "stock defaults to true")
				assert.NotEmpty(t, data["id"], "persisted record carries its id")
			},
		},
		{
			name: "stock can be set false",
			body: `{"material":"Brass","stock":false}`,
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, data map[string]interface{}) {
				assert.False(t, data["stock"].(bool))
			},
		},
		{
			name:           "missing name rejected",
			body:           `{"thickness":2}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "negative cost rejected",
			body:           `{"material":"Steel","cost_per_m2":-1}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/v1/materials", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				errObj := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errObj["code"])
				return
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, response["data"].(map[string]interface{}))
			}
		})
	}
}

func TestCreateMaterialOutOfStockPersists(t *testing.T) {
	db := setupMaterialTestDB(t)
	config.SetDB(db)
	router := setupMaterialRouter()

	body := `{"material":"Brass CW508L","thickness":1.5,"cost_per_m2":14,"stock":false}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/materials", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data struct {
			ID    string `json:"id"`
			Stock bool   `json:"stock"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Data.Stock)

	// The stored row must carry false too, not a column default
	var stored models.Material
	assert.NoError(t, db.Where("public_id = ?", response.Data.ID).First(&stored).Error)
	assert.False(t, stored.Stock, "out-of-stock flag should survive the insert")
}

func TestUpdateMaterial(t *testing.T) {
	db := setupMaterialTestDB(t)
	config.SetDB(db)

	material := models.Material{
		PublicID:   "mat-upd-1",
		Name:       "Steel DC01",
		Thickness:  2,
		SetupPrice: 30,
		CostPerM2:  5,
		Stock:      true,
	}
	db.Create(&material)

	router := setupMaterialRouter()

	w := httptest.NewRecorder()
	body := `{"material":"Steel DC01","thickness":3,"setup_price":35,"cost_factor":1.4,"loop_cost":0.6,"cost_per_m2":5.5,"stock":false}`
	req, _ := http.NewRequest("PUT", "/api/v1/materials/mat-upd-1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["thickness"])
	assert.Equal(t, float64(35), data["setup_price"])
	assert.False(t, data["stock"].(bool))

	// Persisted
	var saved models.Material
	assert.NoError(t, db.Where("public_id = ?", "mat-upd-1").First(&saved).Error)
	assert.Equal(t, 5.5, saved.CostPerM2)
	assert.False(t, saved.Stock)
}

func TestUpdateMaterialNotFound(t *testing.T) {
	db := setupMaterialTestDB(t)
	config.SetDB(db)

	router := setupMaterialRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/v1/materials/no-such-material", strings.NewReader(`{"material":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errObj := response["error"].(map[string]interface{})
	assert.Equal(t, "MATERIAL_NOT_FOUND", errObj["code"])
}

func TestDeleteMaterial(t *testing.T) {
	db := setupMaterialTestDB(t)
	config.SetDB(db)

	material := models.Material{PublicID: "mat-del-1", Name: "Copper"}
	db.Create(&material)

	router := setupMaterialRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/v1/materials/mat-del-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Material{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Deleting again is a 404
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/api/v1/materials/mat-del-1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
