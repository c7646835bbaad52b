package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayatroid/daily-llm/internal/nav"
)

type fixture struct {
	root   string
	config string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"content/index.md": "---\ntitle: Home\ndescription: Welcome\n---\nHello.",
		"content/2024-01-15/001-astro.md": "---\ntitle: Astro setup\ndescription: Solid in Astro\ntags: [astro, web]\ngem: true\n---\n" +
			"## User\n\nHow do I add Solid?\n\n## Assistant\n\n```sh\nnpx astro add solid\n```\n",
		"content/2024-01-15/002-css.md": "---\ntitle: CSS variables\ndescription: theming\ntags: [web]\n---\nUser: vars?\nAssistant: yes",
		"content/2024-01-16/001-go.md":  "---\ntitle: Go modules\ndescription: go mod\ntags: [go]\n---\nUser: tidy?\nAssistant: tidy.",
		"static/robots.txt":             "User-agent: *",
	}
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	cfg := fmt.Sprintf(`siteTitle: test journal
baseURL: https://example.com/
contentDir: %[1]s/content
layoutsDir: %[1]s/layouts
staticDir: %[1]s/static
outputDir: %[1]s/public
`, filepath.ToSlash(root))
	cfgPath := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return fixture{root: root, config: cfgPath}
}

func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", f.config}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "build")
	require.NoError(t, err)

	for _, rel := range []string{"index.html", "2024-01-15/001-astro/index.html", "tags/web/index.html", "index.xml", "robots.txt", "404.html"} {
		assert.FileExists(t, filepath.Join(f.root, "public", filepath.FromSlash(rel)))
	}
	home, err := os.ReadFile(filepath.Join(f.root, "public", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(home), "test journal")
}

func TestTreeCommand(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Home/")
	assert.Contains(t, out, "2024-01-16/")
	assert.Contains(t, out, "Go modules")
	assert.Contains(t, out, "💎")

	out, err = f.run(t, "tree", "/tags/web/")
	require.NoError(t, err)
	assert.Contains(t, out, "tags/web/")
	assert.Contains(t, out, "CSS variables")
	assert.NotContains(t, out, "Go modules")

	_, err = f.run(t, "tree", "/2030-01-01/")
	assert.ErrorIs(t, err, nav.ErrNotFound)
}

func TestPwdCommand(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "pwd", "/2024-01-15/001-astro/")
	require.NoError(t, err)
	assert.Equal(t, "~/2024-01-15/001-astro\n", out)
}

func TestCatCommand(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "cat", "--raw", "2024-01-15/001-astro")
	require.NoError(t, err)
	assert.Contains(t, out, "# Astro setup 💎")
	assert.Contains(t, out, "> Solid in Astro")
	assert.Contains(t, out, "#astro #web")
	assert.Contains(t, out, "npx astro add solid")

	_, err = f.run(t, "cat", "--raw", "2024-01-15/404")
	assert.ErrorIs(t, err, nav.ErrNotFound)

	out, err = f.run(t, "cat", "--raw=false", "2024-01-16/001-go")
	require.NoError(t, err)
	assert.Contains(t, out, "Go modules")
}

func TestStatsCommand(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "conversations")
	assert.Regexp(t, `days\s+2`, out)
	assert.Regexp(t, `with code\s+1 \(33%\)`, out)

	out, err = f.run(t, "stats", "2024-01-15")
	require.NoError(t, err)
	assert.Contains(t, out, "astro, web (2)")
	assert.Regexp(t, `day\s+1 / 2`, out)

	_, err = f.run(t, "stats", "2030-01-01")
	assert.ErrorIs(t, err, nav.ErrNotFound)
}

func TestNewCommand(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "new", "--date", "2024-01-15", "Solid", "signals")
	require.NoError(t, err)

	want := filepath.Join(f.root, "content", "2024-01-15", "003-solid-signals.md")
	assert.Equal(t, want+"\n", out)
	assert.FileExists(t, want)

	_, err = f.run(t, "new", "--date", "15/01/2024", "x")
	assert.Error(t, err)
}

func TestDevHandler(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "2024-01-15"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "2024-01-15", "index.html"), []byte("day"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "404.html"), []byte("not here"), 0o644))

	srv := httptest.NewServer(newDevHandler(root))
	defer srv.Close()

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/2024-01-15/", http.StatusOK, "day"},
		{"/empty/", http.StatusNotFound, "not here"},
		{"/missing.css", http.StatusNotFound, "not here"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.code, resp.StatusCode)
			assert.Equal(t, tt.body, string(body))
			assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))
		})
	}
}

func TestWatchLoopDebounces(t *testing.T) {
	dir := t.TempDir()
	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	watchTree(w, dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rebuilt := make(chan struct{}, 10)
	go watchLoop(ctx, w, 50*time.Millisecond, func() { rebuilt <- struct{}{} })

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte(fmt.Sprint(i)), 0o644))
	}

	select {
	case <-rebuilt:
	case <-time.After(3 * time.Second):
		t.Fatal("no rebuild after change")
	}
	select {
	case <-rebuilt:
		t.Fatal("burst of writes triggered more than one rebuild")
	case <-time.After(200 * time.Millisecond):
	}
}
