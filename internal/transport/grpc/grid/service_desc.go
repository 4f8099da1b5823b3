package grid

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "procat.grid.v1.GridService"

// Method names.
const (
	MethodListRows      = "ListRows"
	MethodAddRow        = "AddRow"
	MethodEditRow       = "EditRow"
	MethodRemoveRow     = "RemoveRow"
	MethodGetChanges    = "GetChanges"
	MethodSaveChanges   = "SaveChanges"
	MethodCancelChanges = "CancelChanges"
	MethodReload        = "Reload"
)

// GridServiceServer is the server API for the grid service.
// Messages are google.protobuf.Struct documents.
type GridServiceServer interface {
	ListRows(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddRow(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EditRow(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveRow(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetChanges(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveChanges(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelChanges(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reload(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv GridServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(GridServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(GridServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// GridService_ServiceDesc is the grpc.ServiceDesc for the grid service.
var GridService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GridServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MethodListRows, GridServiceServer.ListRows),
		unaryMethod(MethodAddRow, GridServiceServer.AddRow),
		unaryMethod(MethodEditRow, GridServiceServer.EditRow),
		unaryMethod(MethodRemoveRow, GridServiceServer.RemoveRow),
		unaryMethod(MethodGetChanges, GridServiceServer.GetChanges),
		unaryMethod(MethodSaveChanges, GridServiceServer.SaveChanges),
		unaryMethod(MethodCancelChanges, GridServiceServer.CancelChanges),
		unaryMethod(MethodReload, GridServiceServer.Reload),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "procat/grid/v1/grid.proto",
}

// RegisterGridServiceServer registers srv on s.
func RegisterGridServiceServer(s grpc.ServiceRegistrar, srv GridServiceServer) {
	s.RegisterService(&GridService_ServiceDesc, srv)
}

// FullMethod returns the wire name of a method, e.g. /procat.grid.v1.GridService/ListRows.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// Client calls the grid service over a client connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a grid service client.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes a method with a document built from in.
func (c *Client) Call(ctx context.Context, method string, in map[string]interface{}, opts ...grpc.CallOption) (map[string]interface{}, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
