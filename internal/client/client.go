// Package client provides an HTTP client for the immolist REST API.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"immolist/internal/domain"
)

// ErrNotFound reports that the server knows no listing with that id.
var ErrNotFound = errors.New("property not found")

// Client is an HTTP client for the immolist API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetAll returns the full catalog in storage order.
func (c *Client) GetAll() ([]domain.Property, error) {
	var props []domain.Property
	if err := c.get("/api/v1/items", &props); err != nil {
		return nil, err
	}
	return props, nil
}

// Get returns one listing; ErrNotFound when the id is unknown.
func (c *Client) Get(id string) (domain.Property, error) {
	var p domain.Property
	if err := c.get("/api/v1/items/"+id, &p); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

// Create adds a new listing and returns it with its server-assigned id.
func (c *Client) Create(in domain.CreateProperty) (domain.Property, error) {
	var p domain.Property
	if err := c.send("POST", "/api/v1/items", in, &p); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

// Update applies a partial change set and returns the updated listing.
func (c *Client) Update(id string, in domain.UpdateProperty) (domain.Property, error) {
	var p domain.Property
	if err := c.send("PUT", "/api/v1/items/"+id, in, &p); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

// Delete removes a listing; ErrNotFound when the id is unknown.
func (c *Client) Delete(id string) error {
	req, err := http.NewRequest("DELETE", c.baseURL+"/api/v1/items/"+id, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

func (c *Client) send(method, path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
