package dashboard_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptbench/internal/dashboard"
	"github.com/JaimeStill/promptbench/internal/endpoints"
	"github.com/JaimeStill/promptbench/internal/history"
	"github.com/JaimeStill/promptbench/internal/prompts"
	"github.com/JaimeStill/promptbench/internal/tester"
	"github.com/JaimeStill/promptbench/pkg/dispatch"
	"github.com/JaimeStill/promptbench/pkg/pagination"
	"github.com/JaimeStill/promptbench/pkg/storage"
	"github.com/JaimeStill/promptbench/pkg/store"
)

type stubDispatcher struct{}

func (stubDispatcher) Dispatch(_ context.Context, req dispatch.Request) (*dispatch.Response, error) {
	return &dispatch.Response{StatusCode: 200, Data: json.RawMessage(`{"answer":"cat"}`)}, nil
}

func setup(t *testing.T) (http.Handler, dashboard.Systems) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := store.NewFile(t.TempDir())
	page := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

	attachments, err := storage.New(&storage.Config{Provider: storage.ProviderLocal, Dir: t.TempDir()}, logger)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}

	sys := dashboard.Systems{
		Endpoints: endpoints.New(backend, "endpoints", logger),
		Prompts:   prompts.New(backend, "prompts", logger, page),
		History:   history.New(backend, "history", logger, page),
	}
	sys.Tester = tester.New(
		stubDispatcher{}, sys.Endpoints, sys.Prompts, sys.History, attachments,
		tester.Defaults{BaseURL: "http://www.test.ai.com/cam", Path: "/single/cam", ProbeLimit: 2},
		logger,
	)

	h, err := dashboard.NewHandler(sys, dashboard.Options{
		BasePath:      "/app",
		APIBasePath:   "/api",
		DataLocation:  "/data",
		MaxUploadSize: 1 << 20,
		Pagination:    page,
	}, logger)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return h.Mux(), sys
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	return rec
}

func post(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSaveLabelFor(t *testing.T) {
	existing := []prompts.Prompt{{Name: "Prompt #1", Content: "hello"}}

	tests := []struct {
		name      string
		content   string
		justSaved bool
		want      dashboard.SaveLabel
	}{
		{"new content", "other", false, dashboard.SaveLabelSave},
		{"empty", "", false, dashboard.SaveLabelSave},
		{"stored content", "hello", false, dashboard.SaveLabelAlready},
		{"just saved", "hello", true, dashboard.SaveLabelSaved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dashboard.SaveLabelFor(tt.content, existing, tt.justSaved); got != tt.want {
				t.Errorf("SaveLabelFor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHome(t *testing.T) {
	h, _ := setup(t)

	rec := get(h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"http://www.test.ai.com/cam", "/data", `href="/app/tester"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestNotFound(t *testing.T) {
	h, _ := setup(t)

	if rec := get(h, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestTesterSaveFlow(t *testing.T) {
	h, sys := setup(t)

	rec := post(h, "/tester", url.Values{"action": {"save"}, "prompt": {"describe it"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), ">saved</button>") {
		t.Error("label not saved after first save")
	}
	if !strings.Contains(rec.Body.String(), "Saved as Prompt #1") {
		t.Error("missing success flash")
	}

	rec = post(h, "/tester", url.Values{"action": {"save"}, "prompt": {"describe it"}})
	if !strings.Contains(rec.Body.String(), ">already</button>") {
		t.Error("label not already after duplicate save")
	}
	if n := len(sys.Prompts.List(context.Background())); n != 1 {
		t.Errorf("prompts = %d, want 1", n)
	}

	p := sys.Prompts.List(context.Background())[0]
	rec = get(h, "/tester?prompt_id="+p.ID.String())
	body := rec.Body.String()
	if !strings.Contains(body, "describe it</textarea>") {
		t.Error("selected prompt content not filled in")
	}
	if !strings.Contains(body, ">already</button>") {
		t.Error("selected prompt should show already")
	}

	rec = get(h, "/tester")
	if !strings.Contains(rec.Body.String(), ">save</button>") {
		t.Error("direct input should show save")
	}
}

func TestTesterSend(t *testing.T) {
	h, sys := setup(t)

	rec := post(h, "/tester", url.Values{
		"action":    {"send"},
		"method":    {"POST"},
		"data_type": {"text"},
		"prompt":    {"hi"},
		"text":      {"payload"},
		"record":    {"true"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "status-OK") || !strings.Contains(body, "http://www.test.ai.com/cam/single/cam") {
		t.Errorf("outcome missing: %s", body)
	}

	result := sys.History.List(context.Background(), pagination.PageRequest{Page: 1, PageSize: 10}, history.Filters{})
	if result.Total != 1 {
		t.Fatalf("history total = %d", result.Total)
	}

	entry := result.Data[0]
	rec = get(h, "/history/"+entry.ID.String())
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "answer") {
		t.Errorf("entry page = %d: %s", rec.Code, rec.Body)
	}

	if rec := get(h, "/history?status=OK"); rec.Code != http.StatusOK {
		t.Errorf("history page = %d", rec.Code)
	}
}

func TestTesterRejectsOversizedImage(t *testing.T) {
	h, sys := setup(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("action", "send")
	mw.WriteField("method", "POST")
	mw.WriteField("data_type", "image")
	mw.WriteField("record", "true")
	fw, _ := mw.CreateFormFile("image", "big.png")
	fw.Write(bytes.Repeat([]byte{0x89}, 3<<20))
	mw.Close()

	req := httptest.NewRequest("POST", "/tester", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}

	result := sys.History.List(context.Background(), pagination.PageRequest{Page: 1, PageSize: 10}, history.Filters{})
	if result.Total != 0 {
		t.Errorf("history total = %d", result.Total)
	}
}

func TestTesterUnknownPromptID(t *testing.T) {
	h, sys := setup(t)

	rec := post(h, "/tester", url.Values{
		"action":    {"send"},
		"method":    {"GET"},
		"prompt":    {"hi"},
		"prompt_id": {uuid.NewString()},
		"record":    {"true"},
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	result := sys.History.List(context.Background(), pagination.PageRequest{Page: 1, PageSize: 10}, history.Filters{})
	if result.Total != 0 {
		t.Errorf("history total = %d", result.Total)
	}
}

func TestHistoryPageOutOfRange(t *testing.T) {
	h, _ := setup(t)

	rec := get(h, "/history?page="+strconv.Itoa(math.MaxInt))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestTesterRejectsDataType(t *testing.T) {
	h, _ := setup(t)

	rec := post(h, "/tester", url.Values{"action": {"send"}, "data_type": {"xml"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestSettings(t *testing.T) {
	h, sys := setup(t)
	ctx := context.Background()

	rec := post(h, "/settings/endpoints", url.Values{"url": {"http://a"}, "show": {"true"}})
	if !strings.Contains(rec.Body.String(), "http://a registered.") {
		t.Errorf("missing register flash: %s", rec.Body)
	}

	rec = post(h, "/settings/endpoints", url.Values{"url": {"http://a"}})
	if !strings.Contains(rec.Body.String(), "already registered") {
		t.Error("missing duplicate flash")
	}

	if rec := post(h, "/settings/endpoints", url.Values{"url": {""}}); rec.Code != http.StatusBadRequest {
		t.Errorf("empty url status = %d", rec.Code)
	}

	hidden := get(h, "/settings").Body.String()
	if strings.Contains(hidden, "<code>http://a</code>") {
		t.Error("list shown without toggle")
	}
	shown := get(h, "/settings?show=true").Body.String()
	if !strings.Contains(shown, "<code>http://a</code>") {
		t.Error("list hidden with toggle")
	}

	rec = post(h, "/settings/endpoints/delete", url.Values{"url": {"http://a"}})
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}
	if n := len(sys.Endpoints.List(ctx)); n != 0 {
		t.Errorf("endpoints = %d", n)
	}

	if rec := post(h, "/settings/endpoints/delete", url.Values{"url": {"http://a"}}); rec.Code != http.StatusNotFound {
		t.Errorf("delete missing status = %d", rec.Code)
	}
}

func TestStatic(t *testing.T) {
	h, _ := setup(t)

	rec := get(h, "/static/app.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "body") {
		t.Error("stylesheet body missing")
	}
}
