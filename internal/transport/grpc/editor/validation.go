package editor

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// validateTable requires the table field.
func validateTable(req *structpb.Struct) error {
	if stringField(req, FieldTable) == "" {
		return status.Error(codes.InvalidArgument, "table is required")
	}
	return nil
}

// validateKeyed requires the table and key fields.
func validateKeyed(req *structpb.Struct) error {
	if err := validateTable(req); err != nil {
		return err
	}
	key, ok := field(req, FieldKey)
	if !ok || key == nil || key == "" {
		return status.Error(codes.InvalidArgument, "key is required")
	}
	return nil
}

// validateProperty requires the table, key and property fields.
func validateProperty(req *structpb.Struct) error {
	if err := validateKeyed(req); err != nil {
		return err
	}
	if stringField(req, FieldProperty) == "" {
		return status.Error(codes.InvalidArgument, "property is required")
	}
	return nil
}

// validateValue requires a value field; null is a valid value.
func validateValue(req *structpb.Struct) error {
	if _, ok := field(req, FieldValue); !ok {
		return status.Error(codes.InvalidArgument, "value is required")
	}
	return nil
}

// validateListJournal checks the optional journal filters.
func validateListJournal(req *structpb.Struct) error {
	if v, ok := field(req, FieldLimit); ok {
		n, isNumber := v.(float64)
		if !isNumber || n < 0 || n != float64(int(n)) {
			return status.Error(codes.InvalidArgument, "limit must be a non-negative integer")
		}
	}
	return nil
}
