package tag_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/genie/internal/service"
	"github.com/jpl-au/genie/internal/tag"
	"github.com/jpl-au/genie/internal/tagger"
	"github.com/jpl-au/genie/internal/validate"
)

// setupService creates a service on a temporary store.
func setupService(t *testing.T) service.Service {
	t.Helper()
	svc, err := tagger.Open(context.Background(), tagger.Options{
		Path: filepath.Join(t.TempDir(), "genie.json"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestAdd(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	var buf bytes.Buffer
	result, err := tag.Add(ctx, &buf, svc, "/photos/./beach.jpg", []string{"photo", "beach"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean("/photos/beach.jpg"), result.Path, "path is canonicalised")
	assert.Equal(t, []string{"photo", "beach"}, result.Added)
	assert.Equal(t, []string{"beach", "photo"}, result.Tags)
	assert.Contains(t, buf.String(), `Tagged `)
	assert.Contains(t, buf.String(), `"beach"`)
}

func TestAdd_PartialFailure(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	var buf bytes.Buffer
	result, err := tag.Add(ctx, &buf, svc, "/a", []string{"good", "  ", "also-good"})
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrInvalidTag)

	// The valid tags were still applied
	assert.Equal(t, []string{"good", "also-good"}, result.Added)
	assert.Equal(t, []string{"also-good", "good"}, result.Tags)
}

func TestRemove(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := tag.Add(ctx, &bytes.Buffer{}, svc, "/a", []string{"x", "y"})
	require.NoError(t, err)

	var buf bytes.Buffer
	result, err := tag.Remove(ctx, &buf, svc, "/a", []string{"x", "missing"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, result.Removed)
	assert.Equal(t, []string{"missing"}, result.Absent)
	assert.Equal(t, []string{"y"}, result.Tags)
	assert.Contains(t, buf.String(), "was not tagged")
}

func TestList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := tag.Add(ctx, &bytes.Buffer{}, svc, "/a", []string{"x", "y"})
	require.NoError(t, err)
	_, err = tag.Add(ctx, &bytes.Buffer{}, svc, "/b", []string{"z"})
	require.NoError(t, err)

	var buf bytes.Buffer
	result, err := tag.List(ctx, &buf, svc, "/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, result.Tags)
	assert.Equal(t, "x\ny\n", buf.String())

	buf.Reset()
	result, err = tag.List(ctx, &buf, svc, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, result.Tags)

	result, err = tag.List(ctx, &bytes.Buffer{}, svc, "/unknown")
	require.NoError(t, err)
	assert.Equal(t, []string{}, result.Tags)
}

// recordingService counts Canonical calls and records the paths the
// mutations receive.
type recordingService struct {
	service.Service
	canonical int
	seen      []string
}

func (r *recordingService) Canonical(path string) (string, error) {
	r.canonical++
	return r.Service.Canonical(path)
}

func (r *recordingService) Tag(ctx context.Context, path, t string) error {
	r.seen = append(r.seen, path)
	return r.Service.Tag(ctx, path, t)
}

func (r *recordingService) Untag(ctx context.Context, path, t string) (bool, error) {
	r.seen = append(r.seen, path)
	return r.Service.Untag(ctx, path, t)
}

func TestAddRemove_CanonicaliseOnce(t *testing.T) {
	rec := &recordingService{Service: setupService(t)}
	ctx := context.Background()

	result, err := tag.Add(ctx, &bytes.Buffer{}, rec, "/photos/x/../a.jpg", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.canonical)
	assert.Equal(t, []string{result.Path, result.Path, result.Path}, rec.seen)

	rec.canonical, rec.seen = 0, nil
	_, err = tag.Remove(ctx, &bytes.Buffer{}, rec, "/photos/x/../a.jpg", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.canonical)
	assert.Equal(t, []string{result.Path, result.Path}, rec.seen)
}
