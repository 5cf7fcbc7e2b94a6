package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ocasazza/atui/pkg/atlassian"
	"github.com/ocasazza/atui/pkg/config"
)

// labelClient is the slice of the Atlassian client ctag needs; tests
// substitute a fake.
type labelClient interface {
	QueryPages(cql string) ([]atlassian.Page, error)
	BulkAddLabels(pageIDs []string, labels []string) error
	BulkRemoveLabels(pageIDs []string, labels []string) error
	BulkUpdateLabels(pageIDs []string, updates []atlassian.LabelUpdate) error
}

// newLabelClient is swapped out in tests.
var newLabelClient = func() (labelClient, error) {
	conn, err := config.ConnectionFromEnv()
	if err != nil {
		return nil, err
	}
	return atlassian.NewClient(conn)
}

func newCtagCmd() *cobra.Command {
	ctag := &cobra.Command{
		Use:   "ctag",
		Short: "Operate on Confluence page labels matched by a CQL expression",
	}

	var treeFlag bool
	list := &cobra.Command{
		Use:   "list <cql> [tags-to-highlight]",
		Short: "List labels for pages matching the CQL expression",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var highlight []string
			if len(args) == 2 {
				highlight = splitTags(args[1])
			}
			return runList(cmd, args[0], highlight, treeFlag)
		},
	}
	list.Flags().BoolVar(&treeFlag, "tree", false, "Display results in tree format")

	add := &cobra.Command{
		Use:   "add <cql> <tag1,tag2,...>",
		Short: "Add labels to pages matching the CQL expression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutate(cmd, args[0], splitTags(args[1]), nil, "add")
		},
	}

	update := &cobra.Command{
		Use:   "update <cql> <old:new,old2:new2,...>",
		Short: "Update labels on pages matching the CQL expression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parseUpdates(args[1])
			if err != nil {
				return err
			}
			return runMutate(cmd, args[0], nil, updates, "update")
		},
	}

	remove := &cobra.Command{
		Use:   "remove <cql> <tag1,tag2,...>",
		Short: "Remove labels from pages matching the CQL expression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutate(cmd, args[0], splitTags(args[1]), nil, "remove")
		},
	}

	ctag.AddCommand(list, add, update, remove)
	return ctag
}

// splitTags parses a comma-separated tag list, trimming whitespace.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseUpdates parses "old:new,old2:new2" rename pairs.
func parseUpdates(s string) ([]atlassian.LabelUpdate, error) {
	var updates []atlassian.LabelUpdate
	for _, pair := range splitTags(s) {
		old, newLabel, ok := strings.Cut(pair, ":")
		if !ok || old == "" || newLabel == "" {
			return nil, fmt.Errorf("invalid update %q: expected old:new", pair)
		}
		updates = append(updates, atlassian.LabelUpdate{Old: old, New: newLabel})
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no label updates given")
	}
	return updates, nil
}

func runList(cmd *cobra.Command, cql string, highlight []string, tree bool) error {
	if flagVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Listing pages matching: %s\n", cql)
	}
	if flagDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "DRY RUN: would list pages for CQL: %s\n", cql)
		return nil
	}

	client, err := newLabelClient()
	if err != nil {
		return err
	}
	pages, err := client.QueryPages(cql)
	if err != nil {
		return err
	}

	if tree {
		printPagesTree(cmd, pages, highlight)
	} else {
		printPagesFlat(cmd, pages, highlight)
	}
	return nil
}

func printPagesFlat(cmd *cobra.Command, pages []atlassian.Page, highlight []string) {
	out := cmd.OutOrStdout()
	for _, p := range pages {
		marker := "  "
		if hasAnyLabel(p, highlight) {
			marker = "* "
		}
		fmt.Fprintf(out, "%s%s  %s  [%s]\n", marker, p.ID, p.Title, strings.Join(p.Labels(), ", "))
	}
	fmt.Fprintf(out, "%d page(s)\n", len(pages))
}

// printPagesTree renders pages like the unix tree command. Pages come
// back flat from CQL, so the "tree" is one level deep per page.
func printPagesTree(cmd *cobra.Command, pages []atlassian.Page, highlight []string) {
	out := cmd.OutOrStdout()
	for i, p := range pages {
		branch := "├── "
		if i == len(pages)-1 {
			branch = "└── "
		}
		title := p.Title
		if hasAnyLabel(p, highlight) {
			title = "*" + title
		}
		fmt.Fprintf(out, "%s%s (%s)\n", branch, title, p.ID)
		labels := p.Labels()
		for j, l := range labels {
			sub := "│   ├── "
			if i == len(pages)-1 {
				sub = "    ├── "
			}
			if j == len(labels)-1 {
				sub = strings.Replace(sub, "├", "└", 1)
			}
			fmt.Fprintf(out, "%s%s\n", sub, l)
		}
	}
}

func hasAnyLabel(p atlassian.Page, labels []string) bool {
	if len(labels) == 0 {
		return false
	}
	have := p.Labels()
	for _, want := range labels {
		for _, l := range have {
			if strings.EqualFold(l, want) {
				return true
			}
		}
	}
	return false
}

// runMutate queries the CQL once and applies the requested label
// operation to every matched page.
func runMutate(cmd *cobra.Command, cql string, tags []string, updates []atlassian.LabelUpdate, op string) error {
	out := cmd.OutOrStdout()

	if flagDryRun {
		switch op {
		case "add":
			fmt.Fprintf(out, "DRY RUN: would add labels %v to pages matching CQL: %s\n", tags, cql)
		case "update":
			fmt.Fprintf(out, "DRY RUN: would apply %d label update(s) to pages matching CQL: %s\n", len(updates), cql)
		case "remove":
			fmt.Fprintf(out, "DRY RUN: would remove labels %v from pages matching CQL: %s\n", tags, cql)
		}
		return nil
	}

	client, err := newLabelClient()
	if err != nil {
		return err
	}
	pages, err := client.QueryPages(cql)
	if err != nil {
		return err
	}
	ids := make([]string, len(pages))
	for i, p := range pages {
		ids[i] = p.ID
	}

	switch op {
	case "add":
		err = client.BulkAddLabels(ids, tags)
	case "update":
		err = client.BulkUpdateLabels(ids, updates)
	case "remove":
		err = client.BulkRemoveLabels(ids, tags)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d page(s) updated\n", op, len(ids))
	return nil
}
