package http

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/penspanic/Datra-sub005/internal/app/table/queries/describe_changes"
	"github.com/penspanic/Datra-sub005/internal/app/table/session"
)

// ChangesHandler serves the pending change report of a table.
type ChangesHandler struct {
	tables *session.Registry
	log    *zap.Logger
}

// NewChangesHandler creates a new HTTP changes handler.
func NewChangesHandler(tables *session.Registry, log *zap.Logger) *ChangesHandler {
	return &ChangesHandler{
		tables: tables,
		log:    log,
	}
}

// ServeHTTP handles GET /api/v1/tables/{table}/changes requests.
// The diff and records query parameters attach unified diffs and full records.
func (h *ChangesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	req := &describe_changes.Request{}
	for name, dst := range map[string]*bool{"diff": &req.IncludeDiff, "records": &req.IncludeRecords} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid "+name+" parameter")
			return
		}
		*dst = v
	}

	table, err := h.tables.Lookup(r.PathValue("table"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	report, err := table.Describe(r.Context(), req)
	if err != nil {
		h.log.Error("failed to describe changes", zap.String("table", table.Name()), zap.Error(err))
		writeError(w, statusFor(err), "failed to describe changes")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
