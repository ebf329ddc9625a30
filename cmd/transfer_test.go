package cmd

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImport(t *testing.T) {
	src := newTestEnv(t)
	a, b := abs("a.txt"), abs("b.txt")
	src.run("tag", a, "x", "y")
	src.run("tag", b, "z")

	doc := src.runStdout("export")
	assert.Contains(t, doc, `"version": 1`)

	dst := newBareEnv(t)
	dst.run("init", "--backend", "sqlite")

	cmd := exec.Command(dst.binary, "import", "-")
	cmd.Dir = dst.dir
	cmd.Env = dst.environ()
	cmd.Stdin = strings.NewReader(doc)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	assert.Contains(t, string(out), "Imported 3 tags (3 new)")

	assert.Equal(t, []string{a}, lines(dst.run("search", "x and y")))
	assert.Equal(t, []string{b}, lines(dst.run("search", "z")))
}

func TestExport_File(t *testing.T) {
	env := newTestEnv(t)
	env.run("tag", abs("photos", "a.jpg"), "photo")
	env.run("tag", abs("docs", "b.txt"), "notes")

	file := filepath.Join(env.dir, "photos.json")
	env.run("export", file, "--under", abs("photos"))
	assert.FileExists(t, file)

	_, err := env.runErr("export", file)
	assert.Error(t, err, "refuses to overwrite without --force")

	other := newTestEnv(t)
	other.run("import", file)
	assert.Equal(t, []string{"photo"}, lines(other.run("tags")))
}

func TestImport_DryRun(t *testing.T) {
	env := newTestEnv(t)
	env.run("tag", abs("a.txt"), "x")
	file := filepath.Join(env.dir, "tags.json")
	env.run("export", file)

	other := newTestEnv(t)
	out := other.run("import", "--dry-run", file)
	other.contains(out, "Would import 1 tags (1 new)")
	other.contains(out, "+ ")
	other.contains(out, `"path": "`+filepath.ToSlash(abs("a.txt"))+`"`)
	assert.Empty(t, lines(other.run("tags")))
}
