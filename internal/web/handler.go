package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rpggio/statustracker/internal/domain/tracked"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"labelColor": labelColor,
	"lower":      strings.ToLower,
}).ParseFS(templateFS, "templates/index.html"))

// Lister loads tracked items merged with their live state.
type Lister interface {
	ListWithLiveState(ctx context.Context) ([]tracked.Record, error)
}

type handler struct {
	lister Lister
	logger *slog.Logger
}

// NewHandler serves the dashboard page at "/". Other paths answer 404.
func NewHandler(lister Lister, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &handler{lister: lister, logger: logger}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := http.StatusOK
	var data PageData
	records, err := h.lister.ListWithLiveState(r.Context())
	if err != nil {
		h.logger.Error("render dashboard", "error", err)
		status = http.StatusInternalServerError
		data = PageData{Sections: Group(nil), Error: "Could not load tracked issues."}
	} else {
		data = newPageData(records)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("execute template", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
