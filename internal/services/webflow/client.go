package webflow

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopchat/internal/logger"
)

const defaultBaseURL = "https://api.webflow.com/v2"

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient returns a vendor API client. An empty baseURL selects the
// production API.
func NewClient(baseURL, token string, logger *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// GetProducts fetches one page of the site's product listing.
func (c *Client) GetProducts(siteID string, offset, limit int) (*ProductsResponse, error) {
	url := fmt.Sprintf("%s/sites/%s/products?offset=%d&limit=%d", c.baseURL, siteID, offset, limit)

	var productsResp ProductsResponse
	if err := c.get(url, &productsResp); err != nil {
		return nil, err
	}
	return &productsResp, nil
}

// GetProduct fetches a single product and its SKUs by id.
func (c *Client) GetProduct(siteID, productID string) (*Item, error) {
	url := fmt.Sprintf("%s/sites/%s/products/%s", c.baseURL, siteID, productID)

	var item Item
	if err := c.get(url, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetCollection fetches a collection's field schema.
func (c *Client) GetCollection(collectionID string) (*Collection, error) {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, collectionID)

	var collection Collection
	if err := c.get(url, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

func (c *Client) get(url string, out interface{}) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
