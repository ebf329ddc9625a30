package glob

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		// File name only
		{"*.jpg", "/home/zach/photos/beach.jpg", true},
		{"*.jpg", "/home/zach/photos/notes.txt", false},
		{"beach.*", "/a/b/beach.png", true},
		{"*.{jpg,png}", "/a/b/beach.png", true},

		// Directory prefix
		{"/home/zach/photos", "/home/zach/photos/2019/beach.jpg", true},
		{"/home/zach/photos", "/home/zach/photos", true},
		{"/home/zach/photos", "/home/zach/photos-old/a.jpg", false},
		{"/home/zach/photos/", "/home/zach/photos/a.jpg", true},

		// Single segment star
		{"/home/*/photos/*", "/home/zach/photos/a.jpg", true},
		{"/home/*/photos/*", "/home/zach/photos/2019/a.jpg", false},

		// Double star spans segments
		{"/home/**", "/home/zach/photos/2019/a.jpg", true},
		{"/home/**/*.jpg", "/home/zach/photos/2019/a.jpg", true},
		{"/home/**/*.jpg", "/home/zach/photos/2019/a.txt", false},
		{"/srv/**", "/home/zach/a.jpg", false},

		// Character classes
		{"/data/file[0-9].csv", "/data/file7.csv", true},
		{"/data/file[0-9].csv", "/data/fileA.csv", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"|"+tt.path, func(t *testing.T) {
			m, err := Compile(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(filepath.FromSlash(tt.path)))
		})
	}
}

func TestMatch_HomeExpansion(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skip("no home directory")
	}
	m, err := Compile("~/photos/**")
	require.NoError(t, err)
	assert.True(t, m.Match(filepath.Join(home, "photos", "a", "b.jpg")))
	assert.False(t, m.Match(filepath.Join(home, "docs", "b.jpg")))
	assert.Equal(t, "~/photos/**", m.String())
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile("")
	assert.Error(t, err)
	_, err = Compile("/a/[unclosed")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	paths := []string{"/a/x.jpg", "/a/y.txt", "/b/z.jpg"}
	got, err := Filter(paths, "*.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/x.jpg", "/b/z.jpg"}, got)

	got, err = Filter(paths, "/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/x.jpg", "/a/y.txt"}, got)
}

func TestMatch_Relative(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	wd, err := os.Getwd()
	require.NoError(t, err)

	beach := filepath.Join(wd, "photos", "beach.jpg")
	deep := filepath.Join(wd, "photos", "2019", "sunset.jpg")
	notes := filepath.Join(wd, "docs", "notes.txt")
	outside := filepath.Join(filepath.Dir(wd), "elsewhere.jpg")
	all := []string{beach, deep, notes, outside}

	tests := []struct {
		pattern string
		want    []string
	}{
		{".", []string{beach, deep, notes}},
		{"./photos", []string{beach, deep}},
		{"photos", []string{beach, deep}},
		{"photos/2019", []string{deep}},
		{"..", all},
		{"photos/*.jpg", []string{beach}},
		{"photos/**", []string{beach, deep}},
		{"./**/*.txt", []string{notes}},
		{"*.jpg", []string{beach, deep, outside}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Filter(all, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
