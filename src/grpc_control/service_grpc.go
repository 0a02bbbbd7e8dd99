package grpc_control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ConfigServiceName = "pipeline.config.v1.ConfigService"

	getFlatMethod   = "/" + ConfigServiceName + "/GetFlat"
	getDomainMethod = "/" + ConfigServiceName + "/GetDomain"
	reloadMethod    = "/" + ConfigServiceName + "/Reload"
)

// -----------------------------------------------------------------------------
// Server side
// -----------------------------------------------------------------------------

type ConfigServiceServer interface {
	GetFlat(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetDomain(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Reload(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

func RegisterConfigServiceServer(s grpc.ServiceRegistrar, srv ConfigServiceServer) {
	s.RegisterService(&ConfigServiceDesc, srv)
}

// ConfigServiceDesc uses well-known types only, so no generated code is needed.
var ConfigServiceDesc = grpc.ServiceDesc{
	ServiceName: ConfigServiceName,
	HandlerType: (*ConfigServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetFlat", Handler: getFlatHandler},
		{MethodName: "GetDomain", Handler: getDomainHandler},
		{MethodName: "Reload", Handler: reloadHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pipeline/config/v1/config.proto",
}

// -----------------------------------------------------------------------------

func getFlatHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConfigServiceServer).GetFlat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getFlatMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConfigServiceServer).GetFlat(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getDomainHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConfigServiceServer).GetDomain(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getDomainMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConfigServiceServer).GetDomain(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func reloadHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConfigServiceServer).Reload(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: reloadMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConfigServiceServer).Reload(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// -----------------------------------------------------------------------------
// Client side
// -----------------------------------------------------------------------------

type ConfigServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewConfigServiceClient(cc grpc.ClientConnInterface) *ConfigServiceClient {
	return &ConfigServiceClient{cc: cc}
}

func (c *ConfigServiceClient) GetFlat(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getFlatMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ConfigServiceClient) GetDomain(ctx context.Context, domain string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getDomainMethod, wrapperspb.String(domain), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ConfigServiceClient) Reload(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, reloadMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
