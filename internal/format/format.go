// Package format provides output formatting utilities for CLI display.
//
// Command implementations focus on calling the service while this package
// handles presentation. Besides plain lists and a directory tree view it
// renders the Alfred script-filter document used by launcher workflows.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// Lines prints one item per line.
func Lines(w io.Writer, items []string) error {
	for _, it := range items {
		if _, err := fmt.Fprintln(w, it); err != nil {
			return err
		}
	}
	return nil
}

// Tree prints paths as a directory tree. Paths are split on the OS
// separator and siblings are sorted.
func Tree(w io.Writer, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	type node struct {
		children map[string]*node
		isFile   bool
	}
	root := &node{children: make(map[string]*node)}

	for _, p := range paths {
		parts := strings.Split(filepath.ToSlash(p), "/")
		if parts[0] == "" {
			parts[0] = "/"
		}
		current := root
		for i, part := range parts {
			if part == "" {
				continue
			}
			if current.children[part] == nil {
				current.children[part] = &node{children: make(map[string]*node)}
			}
			current = current.children[part]
			if i == len(parts)-1 {
				current.isFile = true
			}
		}
	}

	var printNode func(n *node, prefix string)
	printNode = func(n *node, prefix string) {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)

		for i, name := range names {
			child := n.children[name]
			last := i == len(names)-1

			connector := "├── "
			if last {
				connector = "└── "
			}
			suffix := ""
			if len(child.children) > 0 && name != "/" {
				suffix = "/"
			}
			fmt.Fprintf(w, "%s%s%s%s\n", prefix, connector, name, suffix)

			pfx := prefix
			if last {
				pfx += "    "
			} else {
				pfx += "│   "
			}
			if len(child.children) > 0 {
				printNode(child, pfx)
			}
		}
	}

	printNode(root, "")
	return nil
}

// AlfredItem is one row of an Alfred script-filter result.
type AlfredItem struct {
	UID          string `json:"uid"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Arg          string `json:"arg"`
	Autocomplete string `json:"autocomplete"`
}

// AlfredDoc is the top-level Alfred script-filter document.
type AlfredDoc struct {
	Items []AlfredItem `json:"items"`
}

// NewAlfred builds the Alfred document for paths: the file name as the
// title and the full path as subtitle and argument.
func NewAlfred(paths []string) AlfredDoc {
	doc := AlfredDoc{Items: make([]AlfredItem, 0, len(paths))}
	for _, p := range paths {
		name := filepath.Base(p)
		doc.Items = append(doc.Items, AlfredItem{
			UID:          p,
			Type:         "file",
			Title:        name,
			Subtitle:     p,
			Arg:          p,
			Autocomplete: name,
		})
	}
	return doc
}

// Alfred writes the Alfred script-filter document for paths.
func Alfred(w io.Writer, paths []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewAlfred(paths))
}
