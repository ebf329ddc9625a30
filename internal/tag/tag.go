// Package tag provides tagging operations for the CLI layer.
//
// This package orchestrates tag add/remove/list operations, handling both
// the service calls and text output. A single command may name several
// tags; each is applied independently and failures are collected so one
// bad tag does not prevent the others.
package tag

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/jpl-au/genie/internal/service"
)

// Result contains the outcome of a tag operation.
type Result struct {
	Path    string   `json:"path,omitempty"`
	Action  string   `json:"action,omitempty"`
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
	Absent  []string `json:"absent,omitempty"`
	Tags    []string `json:"tags"`
}

// Add tags path with each of tags.
func Add(ctx context.Context, w io.Writer, svc service.Service, path string, tags []string) (Result, error) {
	result := Result{Path: path, Action: "add"}

	canon, err := svc.Canonical(path)
	if err != nil {
		return result, err
	}
	result.Path = canon

	var errs *multierror.Error
	for _, t := range tags {
		if err := svc.Tag(ctx, canon, t); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("tag %q: %w", t, err))
			continue
		}
		result.Added = append(result.Added, t)
		fmt.Fprintf(w, "Tagged %s with %q\n", canon, t)
	}

	if current, err := svc.ListTags(ctx, canon); err == nil {
		result.Tags = current
	}
	return result, errs.ErrorOrNil()
}

// Remove removes each of tags from path. Tags that were not present are
// reported in Result.Absent but are not errors.
func Remove(ctx context.Context, w io.Writer, svc service.Service, path string, tags []string) (Result, error) {
	result := Result{Path: path, Action: "remove"}

	canon, err := svc.Canonical(path)
	if err != nil {
		return result, err
	}
	result.Path = canon

	var errs *multierror.Error
	for _, t := range tags {
		removed, err := svc.Untag(ctx, canon, t)
		switch {
		case err != nil:
			errs = multierror.Append(errs, fmt.Errorf("untag %q: %w", t, err))
		case removed:
			result.Removed = append(result.Removed, t)
			fmt.Fprintf(w, "Removed %q from %s\n", t, canon)
		default:
			result.Absent = append(result.Absent, t)
			fmt.Fprintf(w, "%s was not tagged %q\n", canon, t)
		}
	}

	if current, err := svc.ListTags(ctx, canon); err == nil {
		result.Tags = current
	}
	return result, errs.ErrorOrNil()
}

// List lists the tags on path, or every tag in use if path is empty.
func List(ctx context.Context, w io.Writer, svc service.Service, path string) (Result, error) {
	result := Result{Path: path}

	var tags []string
	var err error
	if path == "" {
		tags, err = svc.AllTags(ctx)
	} else {
		var canon string
		canon, err = svc.Canonical(path)
		if err != nil {
			return result, err
		}
		result.Path = canon
		tags, err = svc.ListTags(ctx, canon)
	}
	if err != nil {
		return result, err
	}
	if tags == nil {
		tags = []string{}
	}
	result.Tags = tags

	for _, t := range tags {
		fmt.Fprintln(w, t)
	}
	return result, nil
}
