package editor

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client is the client API of the TableEditor service.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a Client over conn.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Call invokes any TableEditor method by name.
func (c *Client) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// TrackPropertyChange records a single property edit.
func (c *Client) TrackPropertyChange(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.Call(ctx, MethodTrackPropertyChange, in, opts...)
}

// GetChanges fetches the pending change report of a table.
func (c *Client) GetChanges(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.Call(ctx, MethodGetChanges, in, opts...)
}

// Save writes a table's pending changes.
func (c *Client) Save(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.Call(ctx, MethodSave, in, opts...)
}

// ListJournal lists persisted journal entries.
func (c *Client) ListJournal(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.Call(ctx, MethodListJournal, in, opts...)
}
