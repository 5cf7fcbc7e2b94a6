// Package command builds and dispatches label-management operations
// against the actl command surface, keeping an append-only history of
// every execution.
package command

import (
	"github.com/ocasazza/atui/pkg/model"
	"github.com/ocasazza/atui/pkg/navigation"
)

// Operation is a label operation exposed by the ctag command.
type Operation int

const (
	OpList Operation = iota
	OpAdd
	OpUpdate
	OpRemove
)

// Name returns the ctag subcommand name.
func (o Operation) Name() string {
	switch o {
	case OpList:
		return "list"
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Description returns the one-line help shown in the operation picker.
func (o Operation) Description() string {
	switch o {
	case OpList:
		return "List labels for pages matching the CQL"
	case OpAdd:
		return "Add labels to pages matching the CQL"
	case OpUpdate:
		return "Update labels on pages matching the CQL"
	case OpRemove:
		return "Remove labels from pages matching the CQL"
	default:
		return ""
	}
}

// ArgsHint describes the free-argument syntax the operation expects.
func (o Operation) ArgsHint() string {
	switch o {
	case OpList:
		return "[tags-to-highlight] [--tree]"
	case OpAdd, OpRemove:
		return "tag1,tag2,..."
	case OpUpdate:
		return "old:new,old2:new2,..."
	default:
		return ""
	}
}

// Available returns the operations exposed by the context's product.
// Confluence exposes the four label operations; the tracker products
// expose none yet. An incomplete context exposes nothing.
func Available(ctx navigation.Context) []Operation {
	if !ctx.IsComplete() {
		return nil
	}
	if ctx.Product.Type != model.ProductConfluence {
		return nil
	}
	return []Operation{OpList, OpAdd, OpUpdate, OpRemove}
}
