package transfer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/genie/internal/config"
	"github.com/jpl-au/genie/internal/index"
	"github.com/jpl-au/genie/internal/store"
	"github.com/jpl-au/genie/internal/tagger"
	"github.com/jpl-au/genie/internal/transfer"
	"github.com/jpl-au/genie/internal/validate"
)

func openService(t *testing.T, name string) *tagger.Service {
	t.Helper()
	svc, err := tagger.Open(context.Background(), tagger.Options{
		Path:   filepath.Join(t.TempDir(), name),
		MaxTag: config.DefaultMaxTag,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func seed(t *testing.T, svc *tagger.Service) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.Tag(ctx, "/photos/a.jpg", "photo"))
	require.NoError(t, svc.Tag(ctx, "/photos/a.jpg", "beach"))
	require.NoError(t, svc.Tag(ctx, "/docs/b.txt", "notes"))
}

func TestExport_ToWriter(t *testing.T) {
	svc := openService(t, "genie.json")
	seed(t, svc)

	var buf bytes.Buffer
	result, err := transfer.Export(context.Background(), &buf, svc, "", transfer.ExportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Pairs)
	assert.Equal(t, 2, result.Paths)

	pairs, err := store.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, pairs, 3)
}

func TestExport_Under(t *testing.T) {
	svc := openService(t, "genie.json")
	seed(t, svc)

	var buf bytes.Buffer
	result, err := transfer.Export(context.Background(), &buf, svc, "-", transfer.ExportOptions{Under: "/photos"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pairs)
	assert.Equal(t, 1, result.Paths)
	assert.NotContains(t, buf.String(), "b.txt")
}

func TestExport_ToFile(t *testing.T) {
	svc := openService(t, "genie.json")
	seed(t, svc)
	dst := filepath.Join(t.TempDir(), "out", "tags.json")

	var buf bytes.Buffer
	result, err := transfer.Export(context.Background(), &buf, svc, dst, transfer.ExportOptions{})
	require.NoError(t, err)
	assert.Equal(t, dst, result.Dest)
	assert.FileExists(t, dst)
	assert.Contains(t, buf.String(), "Exported 3 tags on 2 paths")

	_, err = transfer.Export(context.Background(), &buf, svc, dst, transfer.ExportOptions{})
	assert.ErrorContains(t, err, "file exists")

	_, err = transfer.Export(context.Background(), &buf, svc, dst, transfer.ExportOptions{Force: true})
	assert.NoError(t, err)
}

func TestRoundTrip_AcrossBackends(t *testing.T) {
	src := openService(t, "genie.json")
	seed(t, src)

	var doc bytes.Buffer
	_, err := transfer.Export(context.Background(), &doc, src, "", transfer.ExportOptions{})
	require.NoError(t, err)

	dst := openService(t, "genie.db")
	var out bytes.Buffer
	result, err := transfer.Import(context.Background(), &out, dst, &doc, transfer.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Read)
	assert.Equal(t, 3, result.Added)

	want, err := src.Pairs(context.Background())
	require.NoError(t, err)
	got, err := dst.Pairs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestImport_MergesAndCountsNew(t *testing.T) {
	svc := openService(t, "genie.json")
	seed(t, svc)

	data, err := store.Encode([]index.Pair{
		{Path: "/photos/a.jpg", Tag: "photo"},
		{Path: "/new.txt", Tag: "fresh"},
	})
	require.NoError(t, err)

	result, err := transfer.Import(context.Background(), &bytes.Buffer{}, svc, bytes.NewReader(data), transfer.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Read)
	assert.Equal(t, 1, result.Added)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Pairs)
}

func TestImport_DryRun(t *testing.T) {
	svc := openService(t, "genie.json")
	require.NoError(t, svc.Tag(context.Background(), "/a", "x"))

	data, err := store.Encode([]index.Pair{{Path: "/a", Tag: "x"}, {Path: "/a", Tag: "y"}})
	require.NoError(t, err)

	var out bytes.Buffer
	result, err := transfer.Import(context.Background(), &out, svc, bytes.NewReader(data), transfer.ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Read)
	assert.Equal(t, 1, result.Added)
	assert.Contains(t, out.String(), "Would import 2 tags (1 new)")
	assert.Contains(t, addedLines(result.Diff), `"y"`)
	assert.NotContains(t, addedLines(result.Diff), `"path": "/a",`, "existing entry is unchanged")

	tags, err := svc.AllTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, tags, "nothing written")
}

func TestImport_DryRunNoChange(t *testing.T) {
	svc := openService(t, "genie.json")
	require.NoError(t, svc.Tag(context.Background(), "/a", "x"))

	data, err := store.Encode([]index.Pair{{Path: "/a", Tag: "x"}})
	require.NoError(t, err)

	result, err := transfer.Import(context.Background(), &bytes.Buffer{}, svc, bytes.NewReader(data), transfer.ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.Zero(t, result.Added)
	assert.Empty(t, result.Diff)
}

func TestImport_DryRunValidatesTags(t *testing.T) {
	svc := openService(t, "genie.json")

	tests := []struct {
		name string
		tag  string
		want error
	}{
		{"blank", "   ", validate.ErrInvalidTag},
		{"too long", strings.Repeat("t", 1000), validate.ErrTooLong},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := store.Encode([]index.Pair{{Path: "/a", Tag: "ok"}, {Path: "/b", Tag: tc.tag}})
			require.NoError(t, err)

			_, err = transfer.Import(context.Background(), &bytes.Buffer{}, svc, bytes.NewReader(data), transfer.ImportOptions{DryRun: true})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestImport_Invalid(t *testing.T) {
	svc := openService(t, "genie.json")

	_, err := transfer.Import(context.Background(), &bytes.Buffer{}, svc, strings.NewReader("{nope"), transfer.ImportOptions{})
	assert.ErrorIs(t, err, store.ErrCorrupt)

	// An over-long tag rejects the whole document
	long := strings.Repeat("t", 1000)
	data, err := store.Encode([]index.Pair{{Path: "/a", Tag: "ok"}, {Path: "/b", Tag: long}})
	require.NoError(t, err)
	_, err = transfer.Import(context.Background(), &bytes.Buffer{}, svc, bytes.NewReader(data), transfer.ImportOptions{})
	require.Error(t, err)

	tags, err := svc.AllTags(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tags, "nothing written")
}

func TestExport_CreatesNoFileOnStoreError(t *testing.T) {
	svc := openService(t, "genie.json")
	require.NoError(t, svc.Close())

	dst := filepath.Join(t.TempDir(), "tags.json")
	_, err := transfer.Export(context.Background(), &bytes.Buffer{}, svc, dst, transfer.ExportOptions{})
	require.Error(t, err)
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

// addedLines returns the trimmed text of each "+ " line of a diff.
func addedLines(d string) []string {
	var out []string
	for _, l := range strings.Split(d, "\n") {
		if rest, ok := strings.CutPrefix(l, "+ "); ok {
			out = append(out, strings.TrimSpace(rest))
		}
	}
	return out
}
