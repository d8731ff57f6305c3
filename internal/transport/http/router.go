// Package http exposes read-only views of the editor session over HTTP.
package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/penspanic/Datra-sub005/internal/app/table/session"
)

// NewRouter registers every HTTP route. journal may be nil, in which case the
// journal route is not served.
func NewRouter(tables *session.Registry, journal JournalLister, log *zap.Logger) *http.ServeMux {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("http")

	mux := http.NewServeMux()
	mux.Handle("GET /api/v1/tables/{table}/changes", NewChangesHandler(tables, log))
	mux.Handle("GET /api/v1/tables/{table}/schema", NewSchemaHandler(tables))
	if journal != nil {
		mux.Handle("GET /api/v1/journal", NewJournalHandler(journal, log))
	}
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "tables": tables.Names()})
	})
	return mux
}
