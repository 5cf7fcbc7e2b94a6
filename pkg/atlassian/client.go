// Package atlassian implements the Confluence REST client used for space
// discovery, CQL page queries, and bulk label mutations.
package atlassian

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Config holds the connection settings for an Atlassian instance. All three
// values are required; they are resolved from the environment before the
// TUI starts.
type Config struct {
	BaseURL  string
	Username string
	APIToken string
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return &ConfigError{Message: "base URL is required"}
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return &ConfigError{Message: fmt.Sprintf("invalid base URL %q: %v", c.BaseURL, err)}
	}
	if c.Username == "" {
		return &ConfigError{Message: "username is required"}
	}
	if c.APIToken == "" {
		return &ConfigError{Message: "API token is required"}
	}
	return nil
}

// Client talks to the Confluence REST API with basic auth.
type Client struct {
	http   *http.Client
	config Config
}

// NewClient validates the config and returns a ready client.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		http:   &http.Client{Timeout: 30 * time.Second},
		config: config,
	}, nil
}

// BaseURL returns the configured instance URL.
func (c *Client) BaseURL() string { return c.config.BaseURL }

func (c *Client) do(method, u string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, u, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.config.Username, c.config.APIToken)
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

// readError drains the body for an error message, best effort.
func readError(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(data) == 0 {
		return "unknown error"
	}
	return strings.TrimSpace(string(data))
}

// QueryPages runs a CQL search and returns matching pages with their
// labels expanded.
func (c *Client) QueryPages(cql string) ([]Page, error) {
	u := fmt.Sprintf("%s/wiki/rest/api/content/search?cql=%s&expand=metadata.labels",
		c.config.BaseURL, url.QueryEscape(cql))

	resp, err := c.do(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &QueryError{Query: cql, Status: resp.StatusCode, Message: readError(resp)}
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return search.Results, nil
}

// ListSpaces returns all spaces in the instance. Used once at startup to
// seed the navigation tree.
func (c *Client) ListSpaces() ([]Space, error) {
	u := fmt.Sprintf("%s/wiki/rest/api/space?expand=description.plain&limit=1000", c.config.BaseURL)

	resp, err := c.do(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: readError(resp)}
	}

	var spaces spacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&spaces); err != nil {
		return nil, fmt.Errorf("decoding spaces response: %w", err)
	}
	return spaces.Results, nil
}

// AddLabels attaches labels to a single page.
func (c *Client) AddLabels(pageID string, labels []string) error {
	u := fmt.Sprintf("%s/wiki/rest/api/content/%s/label", c.config.BaseURL, pageID)

	body := make(addLabelsRequest, 0, len(labels))
	for _, name := range labels {
		body = append(body, Label{Prefix: "global", Name: name})
	}
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := c.do(http.MethodPost, u, strings.NewReader(string(data)))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &PageNotFoundError{PageID: pageID}
	}
	if resp.StatusCode != http.StatusOK {
		return &LabelError{Message: fmt.Sprintf(
			"adding labels to page %s: HTTP %d: %s", pageID, resp.StatusCode, readError(resp))}
	}
	return nil
}

// RemoveLabels detaches labels from a single page. A 404 on an individual
// label means it was already absent, which counts as success for removal.
func (c *Client) RemoveLabels(pageID string, labels []string) error {
	for _, name := range labels {
		u := fmt.Sprintf("%s/wiki/rest/api/content/%s/label/%s",
			c.config.BaseURL, pageID, url.PathEscape(name))

		resp, err := c.do(http.MethodDelete, u, nil)
		if err != nil {
			return err
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			continue
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
			return &LabelError{Message: fmt.Sprintf(
				"removing label %q from page %s: HTTP %d", name, pageID, resp.StatusCode)}
		}
	}
	return nil
}

// UpdateLabel renames a label on a page by removing the old name and
// adding the new one.
func (c *Client) UpdateLabel(pageID, oldLabel, newLabel string) error {
	if err := c.RemoveLabels(pageID, []string{oldLabel}); err != nil {
		return err
	}
	return c.AddLabels(pageID, []string{newLabel})
}

// BulkAddLabels adds the labels to every page in pageIDs.
func (c *Client) BulkAddLabels(pageIDs []string, labels []string) error {
	for _, id := range pageIDs {
		if err := c.AddLabels(id, labels); err != nil {
			return err
		}
	}
	return nil
}

// BulkRemoveLabels removes the labels from every page in pageIDs.
func (c *Client) BulkRemoveLabels(pageIDs []string, labels []string) error {
	for _, id := range pageIDs {
		if err := c.RemoveLabels(id, labels); err != nil {
			return err
		}
	}
	return nil
}

// BulkUpdateLabels applies every rename in updates to every page in pageIDs.
func (c *Client) BulkUpdateLabels(pageIDs []string, updates []LabelUpdate) error {
	for _, id := range pageIDs {
		for _, u := range updates {
			if err := c.UpdateLabel(id, u.Old, u.New); err != nil {
				return err
			}
		}
	}
	return nil
}
