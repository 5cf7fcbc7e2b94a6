// Package model defines the Atlassian entity hierarchy: a domain
// (instance) owns products (Confluence, Jira, ...), and each product owns
// projects or spaces. These are plain value types; the navigation layer
// copies them into its context rather than aliasing them.
package model

// ProductType identifies an Atlassian product family.
type ProductType int

const (
	ProductConfluence ProductType = iota
	ProductJira
	ProductJSM
)

// String returns a human-readable product name.
func (p ProductType) String() string {
	switch p {
	case ProductConfluence:
		return "Confluence"
	case ProductJira:
		return "Jira"
	case ProductJSM:
		return "Jira Service Management"
	default:
		return "Unknown"
	}
}

// CQLField returns the CQL field name used to scope queries for this
// product: Confluence documents live in spaces, tracker issues in projects.
func (p ProductType) CQLField() string {
	if p == ProductConfluence {
		return "space"
	}
	return "project"
}

// Domain is an Atlassian instance (e.g. company.atlassian.net).
type Domain struct {
	Name     string
	BaseURL  string
	Products []Product
}

// Product is a product installed on a domain. Available is false when
// discovery failed for this product; the error text is folded into Name
// so the tree can still render the entry.
type Product struct {
	Type      ProductType
	Name      string
	Projects  []Project
	Available bool
}

// Project is a project or space within a product.
type Project struct {
	ID          string
	Key         string
	Name        string
	Description string
	Kind        string // "space" or "project"
}
