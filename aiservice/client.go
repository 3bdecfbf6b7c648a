package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// ErrTimeout đánh dấu lỗi do AI service trả lời quá chậm, phân biệt với
// lỗi kết nối thường. Handler dựa vào IsTimeout để chọn payload fallback.
var ErrTimeout = errors.New("ai service không phản hồi kịp")

type HistoryItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Options struct {
	BaseURL             string
	DashboardTimeout    time.Duration
	ChatTimeout         time.Duration
	VisualSearchTimeout time.Duration
}

// Client gọi sang Python AI service, mỗi endpoint một timeout riêng.
type Client struct {
	baseURL             string
	dashboardTimeout    time.Duration
	chatTimeout         time.Duration
	visualSearchTimeout time.Duration
	httpClient          *http.Client
}

func NewClient(opts Options) *Client {
	return &Client{
		baseURL:             strings.TrimRight(opts.BaseURL, "/"),
		dashboardTimeout:    opts.DashboardTimeout,
		chatTimeout:         opts.ChatTimeout,
		visualSearchTimeout: opts.VisualSearchTimeout,
		httpClient:          &http.Client{},
	}
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func (c *Client) PredictRevenue(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "/predict-revenue", c.dashboardTimeout)
}

func (c *Client) CustomerSegments(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "/customer-segments", c.dashboardTimeout)
}

func (c *Client) AnalyzeReviews(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "/analyze-reviews", c.dashboardTimeout)
}

func (c *Client) Chat(ctx context.Context, question string, history []HistoryItem) ([]byte, error) {
	payload := map[string]interface{}{
		"question": question,
		"history":  history,
	}
	return c.post(ctx, "/chatbot", payload, c.chatTimeout)
}

func (c *Client) VisualSearch(ctx context.Context, imageBase64 string) ([]byte, error) {
	payload := map[string]interface{}{
		"image_base64": imageBase64,
	}
	return c.post(ctx, "/visual-search", payload, c.visualSearchTimeout)
}

func (c *Client) get(ctx context.Context, path string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, timeout time.Duration) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeoutError(err) {
			return nil, fmt.Errorf("%s: %w", req.URL.Path, ErrTimeout)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeoutError(err) {
			return nil, fmt.Errorf("%s: %w", req.URL.Path, ErrTimeout)
		}
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%s: AI service trả về %d", req.URL.Path, resp.StatusCode)
	}

	return body, nil
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
