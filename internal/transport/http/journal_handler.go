package http

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/penspanic/Datra-sub005/internal/transport/grpc/editor"
)

// JournalLister is the part of the editor gRPC client the journal handler needs.
type JournalLister interface {
	ListJournal(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

// JournalHandler handles HTTP requests for the change journal.
type JournalHandler struct {
	editor JournalLister
	log    *zap.Logger
}

// NewJournalHandler creates a new HTTP journal handler.
func NewJournalHandler(lister JournalLister, log *zap.Logger) *JournalHandler {
	return &JournalHandler{
		editor: lister,
		log:    log,
	}
}

// ServeHTTP handles GET /api/v1/journal requests.
func (h *JournalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	fields := map[string]*structpb.Value{}

	for param, name := range map[string]string{
		"table":      editor.FieldTable,
		"entity_key": editor.FieldEntityKey,
		"operation":  editor.FieldOperation,
	} {
		if v := query.Get(param); v != "" {
			fields[name] = structpb.NewStringValue(v)
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		fields[editor.FieldLimit] = structpb.NewNumberValue(float64(limit))
	}

	// Call gRPC service
	resp, err := h.editor.ListJournal(r.Context(), &structpb.Struct{Fields: fields})
	if err != nil {
		h.log.Warn("failed to list journal", zap.Error(err))
		writeError(w, statusFor(err), "failed to fetch journal: "+err.Error())
		return
	}

	body, err := protojson.Marshal(resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
