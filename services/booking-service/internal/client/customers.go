package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

type CustomerClient struct {
	baseURL string
	hc      *http.Client
}

func NewCustomerClient(baseURL string, timeout time.Duration) *CustomerClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CustomerClient{baseURL: baseURL, hc: &http.Client{Timeout: timeout}}
}

func (c *CustomerClient) GetCustomerByID(ctx context.Context, id string) (*Customer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/customers/"+id, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("customer-service get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, id)
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("customer-service get: status %d: %s", res.StatusCode, body)
	}
	var cust Customer
	if err := json.NewDecoder(res.Body).Decode(&cust); err != nil {
		return nil, fmt.Errorf("customer-service decode: %w", err)
	}
	return &cust, nil
}
