package editor

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/penspanic/Datra-sub005/internal/app/table/contracts"
	"github.com/penspanic/Datra-sub005/internal/models/m_journal"
)

// Request field names.
const (
	FieldTable          = "table"
	FieldKey            = "key"
	FieldProperty       = "property"
	FieldValue          = "value"
	FieldIncludeDiff    = "include_diff"
	FieldIncludeRecords = "include_records"
	FieldEntityKey      = "entity_key"
	FieldOperation      = "operation"
	FieldLimit          = "limit"
)

// field returns the plain Go value of a request field.
func field(req *structpb.Struct, name string) (any, bool) {
	v, ok := req.GetFields()[name]
	if !ok {
		return nil, false
	}
	return v.AsInterface(), true
}

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

func optionalString(req *structpb.Struct, name string) *string {
	v, ok := req.GetFields()[name]
	if !ok || v.GetStringValue() == "" {
		return nil
	}
	s := v.GetStringValue()
	return &s
}

func boolField(req *structpb.Struct, name string) bool {
	return req.GetFields()[name].GetBoolValue()
}

func intField(req *structpb.Struct, name string) int {
	return int(req.GetFields()[name].GetNumberValue())
}

// toStruct converts any JSON-encodable value into a Struct. Values are routed
// through encoding/json so named types, typed slices and DTO tags are honored.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return out, nil
}

// trackReply is the common reply of every tracking call.
type trackReply struct {
	Table            string `json:"table"`
	Key              any    `json:"key,omitempty"`
	Modified         *bool  `json:"modified,omitempty"`
	State            string `json:"state,omitempty"`
	HasModifications bool   `json:"has_modifications"`
}

type listTablesReply struct {
	Tables []tableInfo `json:"tables"`
}

type tableInfo struct {
	Name             string   `json:"name"`
	Entity           string   `json:"entity"`
	Scalar           bool     `json:"scalar"`
	Properties       []string `json:"properties"`
	HasModifications bool     `json:"has_modifications"`
}

type listJournalReply struct {
	Entries    []contracts.JournalEntryDTO `json:"entries"`
	TotalCount int64                       `json:"total_count"`
}

func journalToDTO(data *m_journal.Data) contracts.JournalEntryDTO {
	dto := contracts.JournalEntryDTO{
		EntryID:   data.EntryID,
		Table:     data.Table,
		EntityKey: data.EntityKey,
		Operation: data.Operation,
		CreatedAt: data.CreatedAt,
	}
	if data.Payload.Valid {
		dto.Payload = data.Payload.String()
	}
	return dto
}
