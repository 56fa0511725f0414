// Package api implements the HTTP client for the taskhub server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avdonin/taskhub/internal/common"
)

// Task mirrors the server's task representation.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Client talks to the taskhub HTTP API. After a successful SignIn it
// attaches the bearer token to subsequent requests. Not safe for concurrent
// use.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// IsLoggedIn reports whether the client holds a session token.
func (c *Client) IsLoggedIn() bool {
	return c.token != ""
}

// Logout drops the session token.
func (c *Client) Logout() {
	c.token = ""
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorDuplicateUsername
	}
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, msg)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil)
}

func (c *Client) SignUp(ctx context.Context, username string, password []byte) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", credentials{Username: username, Password: string(password)}, nil)
}

// SignIn exchanges credentials for a session token and keeps it for
// subsequent calls.
func (c *Client) SignIn(ctx context.Context, username string, password []byte) error {
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/signin", credentials{Username: username, Password: string(password)}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.AccessToken
	return nil
}

func (c *Client) ListTasks(ctx context.Context, status, search string) ([]Task, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var tasks []Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, title, description string) (*Task, error) {
	body := struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}{title, description}

	task := &Task{}
	if err := c.do(ctx, http.MethodPost, "/tasks", body, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (c *Client) UpdateTaskStatus(ctx context.Context, id, status string) (*Task, error) {
	body := struct {
		Status string `json:"status"`
	}{status}

	task := &Task{}
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id)+"/status", body, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}
