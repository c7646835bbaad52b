package site

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/hayatroid/daily-llm/internal/route"
	"github.com/hayatroid/daily-llm/internal/theme"
)

const (
	baseLayout  = "base.html"
	partialsDir = "partials"
)

// Prompt is one "$ command" line; a non-empty Href makes it a link.
type Prompt struct {
	Command string
	Href    string
}

var funcs = template.FuncMap{
	"prompt": func(command, href string) Prompt { return Prompt{Command: command, Href: href} },
	"tagURL": func(tag string) string { return route.NewTag(tag).URL() },
}

// Templates holds base.html plus every partial, and one clone of that set
// per page layout. Files in the override directory shadow the embedded
// layouts of the same name.
type Templates struct {
	layers []fs.FS
	base   *template.Template

	mu    sync.Mutex
	cache map[string]*template.Template
}

func NewTemplates(overrideDir string) (*Templates, error) {
	layers := []fs.FS{theme.Layouts()}
	if overrideDir != "" {
		if info, err := os.Stat(overrideDir); err == nil && info.IsDir() {
			layers = append([]fs.FS{os.DirFS(overrideDir)}, layers...)
		}
	}
	t := &Templates{layers: layers, cache: make(map[string]*template.Template)}

	base := template.New(baseLayout).Funcs(funcs)
	if err := t.parse(base, baseLayout); err != nil {
		return nil, err
	}
	partials, err := t.partials()
	if err != nil {
		return nil, err
	}
	for _, name := range partials {
		if err := t.parse(base, name); err != nil {
			return nil, err
		}
	}
	t.base = base
	return t, nil
}

// Page returns the template set for a page layout such as "date.html".
func (t *Templates) Page(name string) (*template.Template, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tpl, ok := t.cache[name]; ok {
		return tpl, nil
	}
	tpl, err := t.base.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to clone base layout for %q: %w", name, err)
	}
	if err := t.parse(tpl, name); err != nil {
		return nil, err
	}
	t.cache[name] = tpl
	return tpl, nil
}

// Execute renders base.html with the page layout name plugged in.
func (t *Templates) Execute(w io.Writer, name string, data any) error {
	tpl, err := t.Page(name)
	if err != nil {
		return err
	}
	if err := tpl.ExecuteTemplate(w, baseLayout, data); err != nil {
		return fmt.Errorf("failed to execute layout %q: %w", name, err)
	}
	return nil
}

func (t *Templates) read(name string) ([]byte, error) {
	for _, layer := range t.layers {
		src, err := fs.ReadFile(layer, name)
		if err == nil {
			return src, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("layout %q: %w", name, fs.ErrNotExist)
}

func (t *Templates) partials() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, layer := range t.layers {
		matches, err := fs.Glob(layer, partialsDir+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				names = append(names, m)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

func (t *Templates) parse(set *template.Template, name string) error {
	src, err := t.read(name)
	if err != nil {
		return err
	}
	tpl := set
	if set.Name() != name {
		tpl = set.New(name)
	}
	if _, err := tpl.Parse(string(src)); err != nil {
		return fmt.Errorf("failed to parse layout %q: %w", name, err)
	}
	return nil
}
