package http

import (
	"encoding/json"
	"net/http"

	"github.com/penspanic/Datra-sub005/internal/app/table/session"
)

// SchemaHandler serves the JSON schema of a table's rows.
type SchemaHandler struct {
	tables *session.Registry
}

// NewSchemaHandler creates a new HTTP schema handler.
func NewSchemaHandler(tables *session.Registry) *SchemaHandler {
	return &SchemaHandler{tables: tables}
}

// ServeHTTP handles GET /api/v1/tables/{table}/schema requests.
func (h *SchemaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	table, err := h.tables.Lookup(r.PathValue("table"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	schema := table.Schema()
	if schema == nil {
		writeError(w, http.StatusNotFound, "table has no schema")
		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(schema)
}
