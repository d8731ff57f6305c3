package editor

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
	"github.com/penspanic/Datra-sub005/internal/app/table/queries/describe_changes"
	"github.com/penspanic/Datra-sub005/internal/app/table/queries/list_journal"
	"github.com/penspanic/Datra-sub005/internal/app/table/session"
)

// Handler implements the TableEditor service.
// It's a thin coordinator that resolves the table and delegates to its tracker,
// use cases and queries.
type Handler struct {
	tables      *session.Registry
	listJournal *list_journal.Query
	log         *zap.Logger
}

var _ EditorServer = (*Handler)(nil)

// NewHandler creates a new TableEditor handler.
func NewHandler(tables *session.Registry, listJournal *list_journal.Query, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		tables:      tables,
		listJournal: listJournal,
		log:         log,
	}
}

// TrackPropertyChange records a single property edit.
func (h *Handler) TrackPropertyChange(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// 1. Validate request
	if err := validateProperty(req); err != nil {
		return nil, err
	}
	if err := validateValue(req); err != nil {
		return nil, err
	}

	// 2. Apply to the table's tracker
	key, _ := field(req, FieldKey)
	value, _ := field(req, FieldValue)
	property := stringField(req, FieldProperty)

	return h.track(req, key, func(tracker domain.AnyTracker) (*bool, error) {
		modified, err := tracker.TrackPropertyChange(key, property, value)
		return &modified, err
	})
}

// TrackChange replaces a whole entity value.
func (h *Handler) TrackChange(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateKeyed(req); err != nil {
		return nil, err
	}
	if err := validateValue(req); err != nil {
		return nil, err
	}

	key, _ := field(req, FieldKey)
	value, _ := field(req, FieldValue)

	return h.track(req, key, func(tracker domain.AnyTracker) (*bool, error) {
		return nil, tracker.TrackChange(key, value)
	})
}

// TrackAdd adds an entity. A request without a key gets a generated one.
func (h *Handler) TrackAdd(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateTable(req); err != nil {
		return nil, err
	}
	if err := validateValue(req); err != nil {
		return nil, err
	}

	key, ok := field(req, FieldKey)
	if !ok || key == nil || key == "" {
		key = uuid.New().String()
	}
	value, _ := field(req, FieldValue)

	return h.track(req, key, func(tracker domain.AnyTracker) (*bool, error) {
		return nil, tracker.TrackAdd(key, value)
	})
}

// TrackDelete deletes an entity.
func (h *Handler) TrackDelete(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateKeyed(req); err != nil {
		return nil, err
	}

	key, _ := field(req, FieldKey)
	return h.track(req, key, func(tracker domain.AnyTracker) (*bool, error) {
		return nil, tracker.TrackDelete(key)
	})
}

// RevertKey restores one entity to its baseline.
func (h *Handler) RevertKey(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateKeyed(req); err != nil {
		return nil, err
	}

	key, _ := field(req, FieldKey)
	return h.track(req, key, func(tracker domain.AnyTracker) (*bool, error) {
		return nil, tracker.RevertKey(key)
	})
}

// RevertProperty restores one property to its baseline value.
func (h *Handler) RevertProperty(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateProperty(req); err != nil {
		return nil, err
	}

	key, _ := field(req, FieldKey)
	property := stringField(req, FieldProperty)
	return h.track(req, key, func(tracker domain.AnyTracker) (*bool, error) {
		return nil, tracker.RevertProperty(key, property)
	})
}

// RevertAll discards every pending change of a table.
func (h *Handler) RevertAll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateTable(req); err != nil {
		return nil, err
	}

	return h.track(req, nil, func(tracker domain.AnyTracker) (*bool, error) {
		tracker.RevertAll()
		return nil, nil
	})
}

// GetChanges reports the pending delta of a table.
func (h *Handler) GetChanges(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateTable(req); err != nil {
		return nil, err
	}

	table, err := h.tables.Lookup(stringField(req, FieldTable))
	if err != nil {
		return nil, mapErrorToGRPC(err)
	}

	report, err := table.Describe(ctx, &describe_changes.Request{
		IncludeRecords: boolField(req, FieldIncludeRecords),
		IncludeDiff:    boolField(req, FieldIncludeDiff),
	})
	if err != nil {
		return nil, mapErrorToGRPC(err)
	}

	return h.reply(report)
}

// Save writes a table's pending changes.
func (h *Handler) Save(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateTable(req); err != nil {
		return nil, err
	}

	table, err := h.tables.Lookup(stringField(req, FieldTable))
	if err != nil {
		return nil, mapErrorToGRPC(err)
	}

	result, err := table.Save(ctx)
	if err != nil {
		h.log.Warn("save failed", zap.String("table", table.Name()), zap.Error(err))
		return nil, mapErrorToGRPC(err)
	}

	return h.reply(map[string]any{
		"table":    result.Table,
		"inserted": result.Inserted,
		"updated":  result.Updated,
		"deleted":  result.Deleted,
		"saved_at": result.SavedAt,
	})
}

// Reload discards pending changes and reloads a table from storage.
func (h *Handler) Reload(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateTable(req); err != nil {
		return nil, err
	}

	table, err := h.tables.Lookup(stringField(req, FieldTable))
	if err != nil {
		return nil, mapErrorToGRPC(err)
	}

	result, err := table.Load(ctx)
	if err != nil {
		h.log.Warn("reload failed", zap.String("table", table.Name()), zap.Error(err))
		return nil, mapErrorToGRPC(err)
	}

	return h.reply(map[string]any{
		"table":     result.Table,
		"rows":      result.Rows,
		"loaded_at": result.LoadedAt,
	})
}

// ListTables lists the editable tables.
func (h *Handler) ListTables(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	reply := listTablesReply{Tables: make([]tableInfo, 0)}

	for _, name := range h.tables.Names() {
		table, err := h.tables.Lookup(name)
		if err != nil {
			return nil, mapErrorToGRPC(err)
		}
		_ = table.WithLock(func(tracker domain.AnyTracker) error {
			reply.Tables = append(reply.Tables, tableInfo{
				Name:             name,
				Entity:           tracker.Name(),
				Scalar:           tracker.IsScalar(),
				Properties:       tracker.PropertyNames(),
				HasModifications: tracker.HasModifications(),
			})
			return nil
		})
	}

	return h.reply(reply)
}

// ListJournal lists persisted journal entries, most recent first.
func (h *Handler) ListJournal(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateListJournal(req); err != nil {
		return nil, err
	}
	if h.listJournal == nil {
		return nil, status.Error(codes.Unimplemented, "journal is not configured")
	}

	entries, total, err := h.listJournal.Execute(ctx, &list_journal.Request{
		Table:     optionalString(req, FieldTable),
		EntityKey: optionalString(req, FieldEntityKey),
		Operation: optionalString(req, FieldOperation),
		Limit:     intField(req, FieldLimit),
	})
	if err != nil {
		return nil, mapErrorToGRPC(err)
	}

	reply := listJournalReply{TotalCount: total}
	for _, entry := range entries {
		reply.Entries = append(reply.Entries, journalToDTO(entry))
	}
	return h.reply(reply)
}

// track resolves the table and runs apply under the table lock.
func (h *Handler) track(req *structpb.Struct, key any, apply func(domain.AnyTracker) (*bool, error)) (*structpb.Struct, error) {
	table, err := h.tables.Lookup(stringField(req, FieldTable))
	if err != nil {
		return nil, mapErrorToGRPC(err)
	}

	reply := trackReply{Table: table.Name(), Key: key}
	err = table.WithLock(func(tracker domain.AnyTracker) error {
		modified, err := apply(tracker)
		if err != nil {
			return err
		}
		reply.Modified = modified
		if key != nil {
			reply.State = string(tracker.State(key))
		}
		reply.HasModifications = tracker.HasModifications()
		return nil
	})
	if err != nil {
		return nil, mapErrorToGRPC(err)
	}

	return h.reply(reply)
}

func (h *Handler) reply(v any) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		h.log.Error("failed to encode reply", zap.Error(err))
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return out, nil
}
