package service_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/genie/internal/service"
	"github.com/jpl-au/genie/internal/tagger"
)

// tempService opens a service on a temporary store for examples.
func tempService() (service.Service, func()) {
	dir, err := os.MkdirTemp("", "genie-example-*")
	if err != nil {
		panic(err)
	}
	svc, err := tagger.Open(context.Background(), tagger.Options{
		Path: filepath.Join(dir, "genie.json"),
	})
	if err != nil {
		panic(err)
	}
	cleanup := func() {
		svc.Close()
		os.RemoveAll(dir)
	}
	return svc, cleanup
}

func Example_basicUsage() {
	svc, cleanup := tempService()
	defer cleanup()
	ctx := context.Background()

	_ = svc.Tag(ctx, "/photos/beach.jpg", "photo")
	_ = svc.Tag(ctx, "/photos/beach.jpg", "beach")
	_ = svc.Tag(ctx, "/photos/blurry.jpg", "photo")
	_ = svc.Tag(ctx, "/photos/blurry.jpg", "blurry")

	paths, err := svc.Search(ctx, "photo and not blurry")
	if err != nil {
		panic(err)
	}
	for _, p := range paths {
		fmt.Println(filepath.ToSlash(p))
	}
	// Output:
	// /photos/beach.jpg
}

func Example_listTags() {
	svc, cleanup := tempService()
	defer cleanup()
	ctx := context.Background()

	_ = svc.Tag(ctx, "/notes/todo.txt", "work")
	_ = svc.Tag(ctx, "/notes/todo.txt", "urgent")

	tags, _ := svc.ListTags(ctx, "/notes/todo.txt")
	fmt.Println(tags)
	// Output:
	// [urgent work]
}

func Example_untag() {
	svc, cleanup := tempService()
	defer cleanup()
	ctx := context.Background()

	_ = svc.Tag(ctx, "/a.txt", "draft")
	removed, _ := svc.Untag(ctx, "/a.txt", "draft")
	fmt.Println(removed)
	removed, _ = svc.Untag(ctx, "/a.txt", "draft")
	fmt.Println(removed)
	// Output:
	// true
	// false
}

func Example_explain() {
	svc, cleanup := tempService()
	defer cleanup()

	s, _ := svc.Explain("a | b & !c")
	fmt.Println(s)
	// Output:
	// (a or (b and (not c)))
}

func Example_parseError() {
	svc, cleanup := tempService()
	defer cleanup()

	_, err := svc.Search(context.Background(), "beach and")
	fmt.Println(err)
	// Output:
	// query "beach and": parse error at column 10: expected a tag, 'not' or '(', found end of query
}
