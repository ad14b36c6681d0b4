// Package apiclient reads the dashboard property list from a revenuedash API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/revenuedash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/revenuedash/internal/app/system/propertypicker"
	"github.com/dalemusser/revenuedash/internal/domain/models"
	"go.uber.org/zap"
)

// PropertiesPath is the endpoint the client reads.
const PropertiesPath = "/api/v1/dashboard/properties"

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// ErrUnavailable wraps every failure: transport errors, non-2xx statuses,
// and bodies that are not a JSON array of properties.
var ErrUnavailable = errors.New("property list unavailable")

type wireProperty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client calls the API on behalf of a signed-in user.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// New creates a Client. A nil httpClient uses a client without a timeout;
// callers bound the request through its context.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        logger,
	}
}

// ListProperties fetches the caller's property list. cookies carry the
// caller's session so the API scopes the list to the caller's tenant.
func (c *Client) ListProperties(ctx context.Context, cookies []*http.Cookie) ([]models.Property, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+PropertiesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	return decode(body)
}

// decode accepts only a JSON array of {id, name} objects.
func decode(body []byte) ([]models.Property, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: response is not an array", ErrUnavailable)
	}

	var wire []wireProperty
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	out := make([]models.Property, 0, len(wire))
	for i, w := range wire {
		id := strings.TrimSpace(w.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrUnavailable, i)
		}
		if !htmlsanitize.IsPlainText(id) {
			// Ids are posted back as selections; a malformed one spoils the list.
			return nil, fmt.Errorf("%w: entry %d has markup in its id", ErrUnavailable, i)
		}
		out = append(out, models.Property{
			PropertyID: id,
			Name:       htmlsanitize.PlainText(w.Name),
		})
	}
	return out, nil
}

// Source binds the client to one caller's cookies for a dashboard mount.
func (c *Client) Source(cookies []*http.Cookie) propertypicker.Source {
	return propertypicker.SourceFunc(func(ctx context.Context) ([]models.Property, error) {
		list, err := c.ListProperties(ctx, cookies)
		if err != nil {
			c.log.Debug("api property fetch failed", zap.Error(err))
		}
		return list, err
	})
}
