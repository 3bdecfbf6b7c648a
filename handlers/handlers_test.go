package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"backend/aiservice"
	"backend/jwt"
	"backend/models"
	"backend/routers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Mỗi test một database in-memory riêng
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("mở sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func setupTestRouter(t *testing.T, db *gorm.DB, ai *aiservice.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwt.Init("test-secret")
	return routers.SetupRouters(db, nil, ai)
}

// AI client trỏ vào cổng không có gì lắng nghe, dùng cho test không đụng AI.
func unreachableAIClient() *aiservice.Client {
	return aiservice.NewClient(aiservice.Options{
		BaseURL:             "http://127.0.0.1:1",
		DashboardTimeout:    time.Second,
		ChatTimeout:         time.Second,
		VisualSearchTimeout: time.Second,
	})
}

func aiClientFor(baseURL string, timeout time.Duration) *aiservice.Client {
	return aiservice.NewClient(aiservice.Options{
		BaseURL:             baseURL,
		DashboardTimeout:    timeout,
		ChatTimeout:         timeout,
		VisualSearchTimeout: timeout,
	})
}

func doJSON(router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func createTestUser(t *testing.T, db *gorm.DB, email, password string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	user := models.User{
		Email:    email,
		Password: string(hashed),
		FullName: "Nguyễn Văn Test",
		Role:     "USER",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("tạo user test: %v", err)
	}
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := jwt.GenerateToken(user.ID, user.Email, user.Role, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("tạo token test: %v", err)
	}
	return token
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("body không phải JSON object: %v\n%s", err, recorder.Body.String())
	}
	return decoded
}
