// Package discovery builds the navigable Domain from a live Atlassian
// instance at startup. A product whose listing call fails is degraded to
// unavailable instead of aborting: one broken product must not prevent
// browsing the others.
package discovery

import (
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/ocasazza/atui/pkg/atlassian"
	"github.com/ocasazza/atui/pkg/debug"
	"github.com/ocasazza/atui/pkg/model"
)

// SpaceLister is the slice of the Atlassian client discovery needs.
type SpaceLister interface {
	BaseURL() string
	ListSpaces() ([]atlassian.Space, error)
}

// Loader discovers products and projects for a domain.
type Loader struct {
	client SpaceLister
}

// NewLoader returns a Loader backed by the given client.
func NewLoader(client SpaceLister) *Loader {
	return &Loader{client: client}
}

// DomainName derives a display name from an instance URL, falling back to
// the raw string when it does not parse.
func DomainName(baseURL string) string {
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		return u.Host
	}
	return baseURL
}

// Load discovers all products concurrently and assembles the Domain.
// Discovery is the only concurrent phase in atui; everything after this
// runs on the single UI thread.
func (l *Loader) Load() (model.Domain, error) {
	domain := model.Domain{
		Name:    DomainName(l.client.BaseURL()),
		BaseURL: l.client.BaseURL(),
	}

	var confluence model.Product
	var g errgroup.Group
	g.Go(func() error {
		confluence = l.discoverConfluence()
		return nil
	})
	// Jira and JSM listing would slot in here; for now they are placeholder
	// entries so the hierarchy shows the full product surface.
	if err := g.Wait(); err != nil {
		return domain, err
	}

	domain.Products = []model.Product{
		confluence,
		{Type: model.ProductJira, Name: "Jira (coming soon)", Available: false},
		{Type: model.ProductJSM, Name: "Jira Service Management (coming soon)", Available: false},
	}
	return domain, nil
}

// discoverConfluence lists spaces and maps them to projects. On failure the
// product stays in the tree with the error embedded in its display name.
func (l *Loader) discoverConfluence() model.Product {
	spaces, err := l.client.ListSpaces()
	if err != nil {
		debug.Log("confluence discovery failed: %v", err)
		return model.Product{
			Type:      model.ProductConfluence,
			Name:      fmt.Sprintf("Confluence (error: %v)", err),
			Available: false,
		}
	}

	projects := make([]model.Project, 0, len(spaces))
	for _, s := range spaces {
		projects = append(projects, model.Project{
			ID:          s.ID.String(),
			Key:         s.Key,
			Name:        s.Name,
			Description: s.PlainDescription(),
			Kind:        "space",
		})
	}
	return model.Product{
		Type:      model.ProductConfluence,
		Name:      "Confluence",
		Projects:  projects,
		Available: true,
	}
}
