package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/JaimeStill/promptbench/pkg/handlers"
	"github.com/JaimeStill/promptbench/pkg/routes"
	"github.com/JaimeStill/promptbench/pkg/storage"
)

type attachmentsHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newAttachmentsHandler(store storage.System, logger *slog.Logger) *attachmentsHandler {
	return &attachmentsHandler{
		store:  store,
		logger: logger.With("handler", "attachments"),
	}
}

func (h *attachmentsHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/attachments",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.download},
		},
	}
}

func (h *attachmentsHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	obj, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	if obj.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.ContentLength, 10))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", path.Base(key)))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, obj.Body); err != nil {
		h.logger.Warn("attachment stream interrupted", "key", key, "error", err)
	}
}
