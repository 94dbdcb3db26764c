package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type Entry struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

// Client wraps the JSON API with the bearer token from login.
type Client struct {
	BaseURL string
	Token   string
	UserID  uint
	http    *http.Client
}

func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: 10 * time.Second}}
}

// Login obtains an access token and remembers the user id from the
// token payload (decoded without verification; the server verifies).
func (c *Client) Login(baseURL, username, password string) error {
	c.BaseURL = baseURL
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := c.http.Post(baseURL+"/api/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed (%d)", resp.StatusCode)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	c.Token = out.AccessToken

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.Token, claims); err == nil {
		if uid, ok := claims["uid"].(float64); ok {
			c.UserID = uint(uid)
		}
	}
	return nil
}

func (c *Client) do(method, path string, payload any, out any) error {
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		if msg.Message != "" {
			return fmt.Errorf("%s (%d)", msg.Message, resp.StatusCode)
		}
		return fmt.Errorf("request failed (%d)", resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) ListEntries() ([]Entry, error) {
	var entries []Entry
	return entries, c.do(http.MethodGet, "/api/entries", nil, &entries)
}

func (c *Client) GetEntry(id uint) (*Entry, error) {
	var e Entry
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/entries/%d", id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) CreateEntry(title, category, content string) error {
	payload := map[string]any{"title": title, "category": category, "content": content, "user_id": c.UserID}
	return c.do(http.MethodPost, "/api/entries", payload, nil)
}

func (c *Client) UpdateEntry(id uint, title, category, content string) error {
	payload := map[string]any{"title": title, "category": category, "content": content}
	return c.do(http.MethodPut, fmt.Sprintf("/api/entries/%d", id), payload, nil)
}

func (c *Client) DeleteEntry(id uint) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/entries/%d", id), nil, nil)
}
