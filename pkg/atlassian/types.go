package atlassian

import (
	"strconv"

	json "github.com/goccy/go-json"
)

// Wire types for the Confluence REST API. Only the fields atui reads are
// declared; the API returns far more.

// Page is a Confluence page returned from a CQL search.
type Page struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Type     string        `json:"type"`
	Status   string        `json:"status"`
	Metadata *PageMetadata `json:"metadata,omitempty"`
	Links    *PageLinks    `json:"_links,omitempty"`
}

// Labels returns the page's label names, or nil when none are attached.
func (p Page) Labels() []string {
	if p.Metadata == nil || p.Metadata.Labels == nil {
		return nil
	}
	names := make([]string, 0, len(p.Metadata.Labels.Results))
	for _, l := range p.Metadata.Labels.Results {
		names = append(names, l.Name)
	}
	return names
}

// PageMetadata carries the expanded label metadata for a page.
type PageMetadata struct {
	Labels *LabelList `json:"labels,omitempty"`
}

// LabelList is the API's paginated label container.
type LabelList struct {
	Results []Label `json:"results"`
	Size    int     `json:"size"`
}

// Label is a single page label.
type Label struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Prefix string `json:"prefix,omitempty"`
}

// PageLinks holds the web and API links for a page.
type PageLinks struct {
	WebUI string `json:"webui,omitempty"`
	Self  string `json:"self,omitempty"`
}

// Space is a Confluence space.
type Space struct {
	ID          spaceID           `json:"id"`
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Status      string            `json:"status"`
	Description *SpaceDescription `json:"description,omitempty"`
}

// SpaceDescription wraps the plain-text description of a space.
type SpaceDescription struct {
	Plain *PlainText `json:"plain,omitempty"`
}

// PlainText is the value container used by space descriptions.
type PlainText struct {
	Value string `json:"value"`
}

// PlainDescription returns the space's plain-text description, if any.
func (s Space) PlainDescription() string {
	if s.Description == nil || s.Description.Plain == nil {
		return ""
	}
	return s.Description.Plain.Value
}

type searchResponse struct {
	Results []Page `json:"results"`
	Start   int    `json:"start"`
	Limit   int    `json:"limit"`
	Size    int    `json:"size"`
}

type spacesResponse struct {
	Results []Space `json:"results"`
	Start   int     `json:"start"`
	Limit   int     `json:"limit"`
	Size    int     `json:"size"`
}

type addLabelsRequest []Label

// LabelUpdate is an (old, new) label rename applied during bulk updates.
type LabelUpdate struct {
	Old string
	New string
}

// spaceID tolerates the API returning space ids as either JSON numbers or
// strings, normalizing to a string.
type spaceID string

func (s *spaceID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = spaceID(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = spaceID(strconv.FormatInt(n, 10))
	return nil
}

func (s spaceID) String() string { return string(s) }
