package dashboard

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/JaimeStill/promptbench/internal/endpoints"
	"github.com/JaimeStill/promptbench/internal/history"
	"github.com/JaimeStill/promptbench/internal/prompts"
	"github.com/JaimeStill/promptbench/internal/tester"
	"github.com/JaimeStill/promptbench/pkg/dispatch"
	"github.com/JaimeStill/promptbench/pkg/pagination"
	"github.com/JaimeStill/promptbench/pkg/web"
)

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	all := h.sys.History.List(ctx, pagination.PageRequest{Page: 1, PageSize: 1}, history.Filters{})

	h.render(w, http.StatusOK, homeView, web.ViewData{Data: HomeView{
		BaseURL:      h.sys.Tester.Defaults().BaseURL,
		DataLocation: h.opts.DataLocation,
		Endpoints:    len(h.sys.Endpoints.List(ctx)),
		Prompts:      len(h.sys.Prompts.List(ctx)),
		History:      all.Total,
	}})
}

func (h *Handler) testerPage(w http.ResponseWriter, r *http.Request) {
	defaults := h.sys.Tester.Defaults()
	q := r.URL.Query()

	form := TesterForm{
		BaseURL:  lo.CoalesceOrEmpty(q.Get("base_url"), defaults.BaseURL),
		Path:     lo.CoalesceOrEmpty(q.Get("path"), defaults.Path),
		Method:   lo.CoalesceOrEmpty(q.Get("method"), "GET"),
		DataType: lo.CoalesceOrEmpty(q.Get("data_type"), string(dispatch.KindImage)),
		JSON:     "{}",
	}

	existing := h.sys.Prompts.List(r.Context())
	if id, err := uuid.Parse(q.Get("prompt_id")); err == nil {
		if p, ok := lo.Find(existing, func(p prompts.Prompt) bool { return p.ID == id }); ok {
			form.PromptID = p.ID.String()
			form.Prompt = p.Content
		}
	}

	h.renderTester(w, r, http.StatusOK, form, existing, false, nil, nil)
}

func (h *Handler) testerSubmit(w http.ResponseWriter, r *http.Request) {
	if err := tester.ParseUploadForm(w, r, h.opts.MaxUploadSize); err != nil {
		h.render(w, tester.MapHTTPStatus(err), testerView, web.ViewData{
			Flash: &web.Flash{Level: "error", Message: err.Error()},
			Data:  TesterView{SaveLabel: SaveLabelSave},
		})
		return
	}

	form := TesterForm{
		BaseURL:  r.FormValue("base_url"),
		Path:     r.FormValue("path"),
		Method:   r.FormValue("method"),
		PromptID: r.FormValue("prompt_id"),
		Prompt:   r.FormValue("prompt"),
		DataType: r.FormValue("data_type"),
		Text:     r.FormValue("text"),
		JSON:     r.FormValue("json"),
		Record:   r.FormValue("record") != "",
	}

	ctx := r.Context()

	if r.FormValue("action") == "save" {
		p, err := h.sys.Prompts.Save(ctx, form.Prompt)
		existing := h.sys.Prompts.List(ctx)

		var flash *web.Flash
		switch {
		case err == nil:
			form.PromptID = p.ID.String()
			flash = &web.Flash{Level: "success", Message: "Saved as " + p.Name}
		case errors.Is(err, prompts.ErrDuplicate):
			flash = &web.Flash{Level: "warning", Message: "A prompt with the same content is already saved."}
		case errors.Is(err, prompts.ErrEmptyContent):
			flash = &web.Flash{Level: "error", Message: "Enter a prompt to save."}
		default:
			h.logger.Error("prompt save failed", "error", err)
			flash = &web.Flash{Level: "error", Message: err.Error()}
		}

		h.renderTester(w, r, http.StatusOK, form, existing, err == nil, nil, flash)
		return
	}

	sub := tester.Submission{
		BaseURL:  form.BaseURL,
		Path:     form.Path,
		Method:   form.Method,
		Prompt:   form.Prompt,
		DataType: form.DataType,
		Text:     form.Text,
		Record:   form.Record,
	}
	if strings.TrimSpace(form.JSON) != "" {
		sub.JSON = []byte(form.JSON)
	}
	if id, err := uuid.Parse(form.PromptID); err == nil {
		sub.PromptID = &id
	}

	existing := h.sys.Prompts.List(ctx)

	img, err := tester.FormImage(r)
	if err != nil {
		h.renderTester(w, r, tester.MapHTTPStatus(err), form, existing, false, nil,
			&web.Flash{Level: "error", Message: err.Error()})
		return
	}
	sub.Image = img

	outcome, err := h.sys.Tester.Submit(ctx, sub)
	if err != nil {
		h.renderTester(w, r, tester.MapHTTPStatus(err), form, existing, false, nil,
			&web.Flash{Level: "error", Message: err.Error()})
		return
	}

	h.renderTester(w, r, http.StatusOK, form, existing, false, outcome, nil)
}

func (h *Handler) renderTester(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	form TesterForm,
	existing []prompts.Prompt,
	justSaved bool,
	outcome *tester.Outcome,
	flash *web.Flash,
) {
	defaults := h.sys.Tester.Defaults()
	if form.BaseURL == "" {
		form.BaseURL = defaults.BaseURL
	}
	if form.Path == "" {
		form.Path = defaults.Path
	}

	bases := lo.Uniq(append([]string{defaults.BaseURL}, h.sys.Endpoints.List(r.Context())...))
	sub := tester.Submission{BaseURL: form.BaseURL, Path: form.Path}

	h.render(w, status, testerView, web.ViewData{
		Flash: flash,
		Data: TesterView{
			Form:      form,
			FullURL:   sub.URL(),
			BaseURLs:  bases,
			Prompts:   existing,
			SaveLabel: SaveLabelFor(form.Prompt, existing, justSaved),
			Outcome:   outcome,
		},
	})
}

func (h *Handler) promptsPage(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.opts.Pagination)
	result := h.sys.Prompts.Search(r.Context(), page, prompts.FiltersFromQuery(r.URL.Query()))

	h.render(w, http.StatusOK, promptsView, web.ViewData{Data: PromptsView{Page: result}})
}

func (h *Handler) historyPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := pagination.PageRequestFromQuery(q, h.opts.Pagination)
	result := h.sys.History.List(r.Context(), page, history.FiltersFromQuery(q))

	h.render(w, http.StatusOK, historyView, web.ViewData{Data: HistoryView{
		Page:    result,
		Status:  q.Get("status"),
		Search:  q.Get("search"),
		Pages:   pageNumbers(result.TotalPages),
		HasPrev: result.Page > 1,
		HasNext: result.Page < result.TotalPages,
	}})
}

func (h *Handler) entryPage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.render(w, http.StatusNotFound, notFoundView, web.ViewData{})
		return
	}

	entry, err := h.sys.History.Find(r.Context(), id)
	if err != nil {
		h.render(w, history.MapHTTPStatus(err), notFoundView, web.ViewData{})
		return
	}

	h.render(w, http.StatusOK, entryView, web.ViewData{Data: HistoryDetailView{
		Entry:    entry,
		Response: entry.Response,
		Prompts:  relatedPrompts(h.sys.Prompts.List(r.Context()), entry.ID),
	}})
}

func (h *Handler) settingsPage(w http.ResponseWriter, r *http.Request) {
	show, _ := strconv.ParseBool(r.URL.Query().Get("show"))
	h.renderSettings(w, r, http.StatusOK, show, nil)
}

func (h *Handler) addEndpoint(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.FormValue("url"))
	show, _ := strconv.ParseBool(r.FormValue("show"))

	added, err := h.sys.Endpoints.Register(r.Context(), url)
	switch {
	case errors.Is(err, endpoints.ErrEmptyURL):
		h.renderSettings(w, r, http.StatusBadRequest, show, &web.Flash{Level: "error", Message: "Enter an endpoint URL."})
	case err != nil:
		h.logger.Error("endpoint register failed", "error", err)
		h.renderSettings(w, r, http.StatusInternalServerError, show, &web.Flash{Level: "error", Message: err.Error()})
	case !added:
		h.renderSettings(w, r, http.StatusOK, show, &web.Flash{Level: "warning", Message: url + " is already registered."})
	default:
		h.renderSettings(w, r, http.StatusOK, show, &web.Flash{Level: "success", Message: url + " registered."})
	}
}

func (h *Handler) deleteEndpoint(w http.ResponseWriter, r *http.Request) {
	url := r.FormValue("url")

	removed, err := h.sys.Endpoints.Delete(r.Context(), url)
	switch {
	case err != nil:
		h.logger.Error("endpoint delete failed", "error", err)
		h.renderSettings(w, r, http.StatusInternalServerError, true, &web.Flash{Level: "error", Message: err.Error()})
	case !removed:
		h.renderSettings(w, r, http.StatusNotFound, true, &web.Flash{Level: "warning", Message: url + " is not registered."})
	default:
		h.renderSettings(w, r, http.StatusOK, true, &web.Flash{Level: "success", Message: url + " deleted."})
	}
}

func (h *Handler) renderSettings(w http.ResponseWriter, r *http.Request, status int, show bool, flash *web.Flash) {
	h.render(w, status, settingsView, web.ViewData{
		Flash: flash,
		Data: SettingsView{
			DefaultBaseURL: h.sys.Tester.Defaults().BaseURL,
			Endpoints:      h.sys.Endpoints.List(r.Context()),
			ShowEndpoints:  show,
		},
	})
}
