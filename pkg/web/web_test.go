package web_test

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/JaimeStill/promptbench/pkg/web"
)

var testFS = fstest.MapFS{
	"layouts/layout.html": {Data: []byte(`{{ define "layout" }}<title>{{ .Title }}</title><nav>{{ .Nav }}</nav>{{ template "content" . }}{{ end }}`)},
	"views/home.html":     {Data: []byte(`{{ define "content" }}<a href="{{ url "tester" }}">{{ shout .Data }}</a>{{ end }}`)},
	"views/json.html":     {Data: []byte(`{{ define "content" }}<pre>{{ pretty .Data }}</pre>{{ end }}`)},
	"views/broken.html":   {Data: []byte(`{{ define "content" }}{{ .Data.Missing.Field }}{{ end }}`)},
	"static/app.css":      {Data: []byte("body{}")},
}

var (
	home   = web.ViewDef{Route: "/", Template: "home.html", Title: "Home", Nav: "home"}
	pretty = web.ViewDef{Route: "/json", Template: "json.html", Title: "JSON"}
	broken = web.ViewDef{Route: "/broken", Template: "broken.html", Title: "Broken"}
)

func newSet(t *testing.T) *web.TemplateSet {
	t.Helper()
	ts, err := web.NewTemplateSet(
		testFS, "layouts/*.html", "views", "layout", "/app",
		template.FuncMap{"shout": strings.ToUpper},
		[]web.ViewDef{home, pretty, broken},
	)
	if err != nil {
		t.Fatalf("NewTemplateSet: %v", err)
	}
	return ts
}

func TestRender(t *testing.T) {
	ts := newSet(t)

	rec := httptest.NewRecorder()
	if err := ts.Render(rec, http.StatusCreated, home, web.ViewData{Data: "hi"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	for _, want := range []string{"<title>Home</title>", "<nav>home</nav>", `href="/app/tester"`, ">HI<"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q: %s", want, body)
		}
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content-type = %q", ct)
	}
}

func TestRenderPrettyJSON(t *testing.T) {
	ts := newSet(t)

	rec := httptest.NewRecorder()
	data := json.RawMessage(`{"a":1}`)
	if err := ts.Render(rec, http.StatusOK, pretty, web.ViewData{Data: data}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "&#34;a&#34;: 1") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestRenderErrorWritesNothing(t *testing.T) {
	ts := newSet(t)

	rec := httptest.NewRecorder()
	err := ts.Render(rec, http.StatusOK, broken, web.ViewData{Data: 42})
	if err == nil {
		t.Fatal("expected template error")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("partial body written: %s", rec.Body)
	}

	if err := ts.Render(rec, http.StatusOK, web.ViewDef{Template: "missing.html"}, web.ViewData{}); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestStatusHandler(t *testing.T) {
	ts := newSet(t)

	rec := httptest.NewRecorder()
	ts.StatusHandler(home, http.StatusNotFound).ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestStaticServer(t *testing.T) {
	h := web.StaticServer(testFS, "static", "/static/")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/static/app.css", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "body{}" {
		t.Errorf("body = %q", rec.Body)
	}
}

func TestServeEmbeddedFile(t *testing.T) {
	rec := httptest.NewRecorder()
	web.ServeEmbeddedFile([]byte(`{"ok":true}`), "application/json").ServeHTTP(rec, httptest.NewRequest("GET", "/f", nil))

	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("content-type = %q", rec.Header().Get("Content-Type"))
	}
	if rec.Body.String() != `{"ok":true}` {
		t.Errorf("body = %q", rec.Body)
	}
}
