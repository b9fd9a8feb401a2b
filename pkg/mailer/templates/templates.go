package templates

import (
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Welcome is the template sent after an account is created.
const Welcome = "welcome"

// EmailData is the set of fields the templates read.
type EmailData struct {
	Name     string `json:"Name"`
	Email    string `json:"Email"`
	AppName  string `json:"AppName"`
	LoginURL string `json:"LoginURL"`
}

// ToMap flattens d into the map carried by a queued job.
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// fallback backs the `default` pipe: {{ .Name | default "there" }}.
func fallback(def, v any) any {
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return def
		}
		return s
	}
	if rv := reflect.ValueOf(v); !rv.IsValid() || rv.IsZero() {
		return def
	}
	return v
}

var funcs = map[string]any{
	"now":        func() time.Time { return time.Now().UTC() },
	"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
	"upper":      strings.ToUpper,
	"default":    fallback,
}

type executor interface {
	Execute(w io.Writer, data any) error
}

// set is one message: subject and text are plain, body is escaped HTML.
type set struct {
	subject, text, html executor
}

var (
	mu    sync.Mutex
	cache = map[string]*set{}
)

func load(name string) (*set, error) {
	mu.Lock()
	defer mu.Unlock()
	if s, ok := cache[name]; ok {
		return s, nil
	}

	plain := func(suffix string) (executor, error) {
		file := name + suffix
		return texttpl.New(file).Funcs(funcs).ParseFS(FS, file)
	}
	subject, err := plain(".subject.tmpl")
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	text, err := plain(".text.tmpl")
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	htmlFile := name + ".html.tmpl"
	html, err := htmpl.New(htmlFile).Funcs(funcs).ParseFS(FS, htmlFile)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}

	s := &set{subject: subject, text: text, html: html}
	cache[name] = s
	return s, nil
}

func execute(t executor, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Render produces the subject, plain text and HTML bodies of the named message.
// Each name needs <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
func Render(name string, data any) (subject, text, html string, err error) {
	s, err := load(name)
	if err != nil {
		return "", "", "", err
	}
	if subject, err = execute(s.subject, data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", name, err)
	}
	if text, err = execute(s.text, data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	if html, err = execute(s.html, data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	return strings.TrimSpace(subject), text, html, nil
}
