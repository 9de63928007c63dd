// Package docstore provides the client for the evidence document service.
// Invoices, intake photos, and proof-of-delivery photos are uploaded out of
// band; commands only ever verify that a reference resolves before trusting it.
package docstore

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"cargolink/internal/pkg/errs"
)

const requestTimeout = 5 * time.Second

// Client implements ports.DocumentStore against the document service API.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// NewClient creates a document service client.
func NewClient(baseURL, apiKey string, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("document store base url")
	}

	return &Client{
		session: &http.Client{Timeout: requestTimeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}, nil
}

// Exists reports whether a document reference resolves to a stored object.
// Unlike the quoting collaborators there is no degraded mode: evidence gates
// fail closed when the store cannot be reached.
func (c *Client) Exists(ctx context.Context, ref string) (bool, error) {
	if ref == "" {
		return false, errs.NewValueIsRequiredError("document reference")
	}

	target := c.baseURL + "/documents/" + url.PathEscape(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		c.logger.Error("document store unreachable",
			slog.String("adapter", "docstore"), slog.Any("error", err))
		return false, errs.NewExternalServiceError("document store", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, errs.NewExternalServiceError("document store",
			fmt.Errorf("document store returned %d for %s", resp.StatusCode, ref))
	}
}
