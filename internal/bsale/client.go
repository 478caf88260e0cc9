package bsale

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Errors returned by the client.
var (
	ErrNoTokens         = errors.New("no bsale access tokens configured")
	ErrDocumentNotFound = errors.New("document not found in any bsale account")
)

// Document is the subset of a Bsale document the shop cares about when
// validating a receipt number.
type Document struct {
	ID            int64   `json:"id"`
	Number        int64   `json:"number"`
	EmissionDate  int64   `json:"emissionDate"`
	TotalAmount   float64 `json:"totalAmount"`
	NetAmount     float64 `json:"netAmount"`
	TaxAmount     float64 `json:"taxAmount"`
	URLPublicView string  `json:"urlPublicView"`
	URLPdf        string  `json:"urlPdf"`
	State         int     `json:"state"`
}

// documentList is the list envelope the Bsale API wraps results in.
type documentList struct {
	Count int        `json:"count"`
	Items []Document `json:"items"`
}

// Result is a validated document plus the account it was found in.
// AccountIndex is the position of the matching token in the configured list.
type Result struct {
	Document     Document
	AccountIndex int
}

// Client queries the Bsale API across one or more accounts. The shop bills
// from several Bsale companies, so a receipt number has to be looked up
// against every configured access token until one matches.
type Client struct {
	baseURL    string
	tokens     []string
	httpClient *http.Client
}

// NewClient creates a Bsale client. baseURL is normally
// "https://api.bsale.io" and tokens holds one access token per account.
func NewClient(baseURL string, tokens []string) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ValidateDocument looks up a document by number in each configured account,
// in order, and returns the first match. A 404 or an empty result moves on to
// the next account. If every account misses, ErrDocumentNotFound is returned
// unless a non-404 failure happened along the way, in which case that error
// wins so the caller can tell "not found" from "Bsale is down".
func (c *Client) ValidateDocument(ctx context.Context, number int64) (*Result, error) {
	if len(c.tokens) == 0 {
		return nil, ErrNoTokens
	}

	var lastErr error
	for i, token := range c.tokens {
		doc, err := c.fetchDocument(ctx, token, number)
		if err != nil {
			if errors.Is(err, errNotFound) {
				continue
			}
			lastErr = fmt.Errorf("account %d: %w", i, err)
			continue
		}
		return &Result{Document: *doc, AccountIndex: i}, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrDocumentNotFound
}

// errNotFound is internal: the account answered but has no such document.
var errNotFound = errors.New("document not found")

func (c *Client) fetchDocument(ctx context.Context, token string, number int64) (*Document, error) {
	url := fmt.Sprintf("%s/v1/documents.json?number=%d", c.baseURL, number)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("access_token", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call documents endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("documents endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var list documentList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode documents response: %w", err)
	}
	if list.Count == 0 || len(list.Items) == 0 {
		return nil, errNotFound
	}

	return &list.Items[0], nil
}
