package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func slowAIServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRevenueTimeoutFallback(t *testing.T) {
	db := setupTestDB(t)
	server := slowAIServer(t)
	router := setupTestRouter(t, db, aiClientFor(server.URL, 50*time.Millisecond))

	recorder := doJSON(router, http.MethodGet, "/dashboard/revenue", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, muốn 200 kể cả khi AI chậm", recorder.Code)
	}

	body := decodeBody(t, recorder)
	data, ok := body["data"].([]interface{})
	if !ok || len(data) != 0 {
		t.Errorf("data = %v, muốn mảng rỗng", body["data"])
	}
	analysis, ok := body["analysis"].(map[string]interface{})
	if !ok {
		t.Fatalf("body thiếu analysis: %v", body)
	}
	if analysis["trend"] != "CHƯA RÕ" {
		t.Errorf("trend = %v, muốn CHƯA RÕ", analysis["trend"])
	}
	if _, ok := analysis["top_products"]; !ok {
		t.Error("analysis thiếu top_products")
	}
}

func TestRevenueConnectionErrorFallback(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(t, db, unreachableAIClient())

	recorder := doJSON(router, http.MethodGet, "/dashboard/revenue", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, muốn 200 kể cả khi AI chết", recorder.Code)
	}

	body := decodeBody(t, recorder)
	if data, ok := body["data"].([]interface{}); !ok || len(data) != 0 {
		t.Errorf("data = %v, muốn mảng rỗng", body["data"])
	}
}

func TestRevenuePassthrough(t *testing.T) {
	db := setupTestDB(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"month":"2026-01","revenue":1200000}],"analysis":{"trend":"TĂNG"}}`))
	}))
	defer server.Close()
	router := setupTestRouter(t, db, aiClientFor(server.URL, time.Second))

	recorder := doJSON(router, http.MethodGet, "/dashboard/revenue", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	body := decodeBody(t, recorder)
	analysis, _ := body["analysis"].(map[string]interface{})
	if analysis["trend"] != "TĂNG" {
		t.Errorf("trend = %v, muốn giữ nguyên payload thành công", analysis["trend"])
	}
}

func TestCustomerSegmentsTimeoutFallback(t *testing.T) {
	db := setupTestDB(t)
	server := slowAIServer(t)
	router := setupTestRouter(t, db, aiClientFor(server.URL, 50*time.Millisecond))

	recorder := doJSON(router, http.MethodGet, "/dashboard/customer-segments", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	body := decodeBody(t, recorder)
	if body["status"] != "error" {
		t.Errorf("status = %v, muốn error", body["status"])
	}
	if body["message"] != "Python service timeout" {
		t.Errorf("message = %v", body["message"])
	}
	for _, key := range []string{"chart_data", "details"} {
		if value, ok := body[key].([]interface{}); !ok || len(value) != 0 {
			t.Errorf("%s = %v, muốn mảng rỗng", key, body[key])
		}
	}
}

func TestReviewsAnalysisFallbackShapes(t *testing.T) {
	db := setupTestDB(t)

	// Timeout: có message
	slow := slowAIServer(t)
	router := setupTestRouter(t, db, aiClientFor(slow.URL, 50*time.Millisecond))
	recorder := doJSON(router, http.MethodGet, "/dashboard/reviews-analysis", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	body := decodeBody(t, recorder)
	if body["message"] != "Python service timeout" {
		t.Errorf("message = %v", body["message"])
	}
	for _, key := range []string{"stats", "warnings", "details"} {
		if _, ok := body[key]; !ok {
			t.Errorf("body thiếu %s", key)
		}
	}

	// Lỗi kết nối: cùng shape nhưng không có message
	router = setupTestRouter(t, db, unreachableAIClient())
	recorder = doJSON(router, http.MethodGet, "/dashboard/reviews-analysis", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	body = decodeBody(t, recorder)
	if body["status"] != "error" {
		t.Errorf("status = %v, muốn error", body["status"])
	}
	if _, hasMessage := body["message"]; hasMessage {
		t.Error("fallback lỗi kết nối không nên có message")
	}
}
