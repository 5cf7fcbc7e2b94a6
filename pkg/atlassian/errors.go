package atlassian

import "fmt"

// ConfigError reports an invalid or missing client configuration value.
// It is fatal before the TUI starts; nothing in the core recovers from it.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Message
}

// QueryError reports a failed CQL search. The query is kept so the UI can
// show which fragment the server rejected.
type QueryError struct {
	Query   string
	Status  int
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("CQL query failed: %s - HTTP %d: %s", e.Query, e.Status, e.Message)
}

// APIError reports a non-success response outside of CQL search.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// PageNotFoundError reports a label operation against a missing page.
type PageNotFoundError struct {
	PageID string
}

func (e *PageNotFoundError) Error() string {
	return "page not found: " + e.PageID
}

// LabelError reports a failed label mutation.
type LabelError struct {
	Message string
}

func (e *LabelError) Error() string {
	return "label operation failed: " + e.Message
}
