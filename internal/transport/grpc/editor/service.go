// Package editor serves the table editor over gRPC. Messages are
// google.protobuf.Struct documents, so the service is declared by hand instead of
// generated from a .proto file.
package editor

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "datra.editor.v1.TableEditor"

// Method names of the TableEditor service.
const (
	MethodTrackPropertyChange = "TrackPropertyChange"
	MethodTrackChange         = "TrackChange"
	MethodTrackAdd            = "TrackAdd"
	MethodTrackDelete         = "TrackDelete"
	MethodRevertKey           = "RevertKey"
	MethodRevertProperty      = "RevertProperty"
	MethodRevertAll           = "RevertAll"
	MethodGetChanges          = "GetChanges"
	MethodSave                = "Save"
	MethodReload              = "Reload"
	MethodListTables          = "ListTables"
	MethodListJournal         = "ListJournal"
)

// EditorServer is the server API of the TableEditor service.
type EditorServer interface {
	TrackPropertyChange(context.Context, *structpb.Struct) (*structpb.Struct, error)
	TrackChange(context.Context, *structpb.Struct) (*structpb.Struct, error)
	TrackAdd(context.Context, *structpb.Struct) (*structpb.Struct, error)
	TrackDelete(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RevertKey(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RevertProperty(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RevertAll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetChanges(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Save(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reload(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTables(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListJournal(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(EditorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(EditorServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(EditorServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FullMethod returns the gRPC path of a TableEditor method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ServiceDesc is the grpc.ServiceDesc of the TableEditor service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EditorServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodTrackPropertyChange, EditorServer.TrackPropertyChange),
		unary(MethodTrackChange, EditorServer.TrackChange),
		unary(MethodTrackAdd, EditorServer.TrackAdd),
		unary(MethodTrackDelete, EditorServer.TrackDelete),
		unary(MethodRevertKey, EditorServer.RevertKey),
		unary(MethodRevertProperty, EditorServer.RevertProperty),
		unary(MethodRevertAll, EditorServer.RevertAll),
		unary(MethodGetChanges, EditorServer.GetChanges),
		unary(MethodSave, EditorServer.Save),
		unary(MethodReload, EditorServer.Reload),
		unary(MethodListTables, EditorServer.ListTables),
		unary(MethodListJournal, EditorServer.ListJournal),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "datra/editor/v1/editor.proto",
}

// RegisterEditorServer registers srv on s.
func RegisterEditorServer(s grpc.ServiceRegistrar, srv EditorServer) {
	s.RegisterService(&ServiceDesc, srv)
}
