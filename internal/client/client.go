package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"taskServer/internal/handlers/dto"
	"time"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Body       dto.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("server returned %d %s: %s", e.StatusCode, e.Body.Error, e.Body.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

type ListTasksRequest struct {
	Assignee      string
	Status        string
	TitleContains string
}

// HTTPClient talks to the task server's JSON API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) Info(ctx context.Context) (*dto.InfoResponse, error) {
	var resp dto.InfoResponse
	if err := c.do(ctx, http.MethodGet, "/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var resp dto.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListTasks(ctx context.Context, filters *ListTasksRequest) ([]dto.TaskResponse, error) {
	path := "/tasks"
	if filters != nil {
		q := url.Values{}
		if filters.Assignee != "" {
			q.Set("assignee", filters.Assignee)
		}
		if filters.Status != "" {
			q.Set("status", filters.Status)
		}
		if filters.TitleContains != "" {
			q.Set("title_contains", filters.TitleContains)
		}
		if len(q) > 0 {
			path += "?" + q.Encode()
		}
	}

	var resp []dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateTask sends body as-is so callers control which keys are present.
func (c *HTTPClient) CreateTask(ctx context.Context, body map[string]any) (*dto.TaskResponse, error) {
	var resp dto.TaskResponse
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetTask(ctx context.Context, id int) (*dto.TaskResponse, error) {
	var resp dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id int, patch map[string]any) (*dto.TaskResponse, error) {
	var resp dto.TaskResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), patch, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id int) (*dto.MessageResponse, error) {
	var resp dto.MessageResponse
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ClearTasks(ctx context.Context) (*dto.MessageResponse, error) {
	var resp dto.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/tasks", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(data, &apiErr.Body)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
