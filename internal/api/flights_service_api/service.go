package flights_service_api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "flights.v1.FlightsService"

// FlightsServiceServer is the gRPC contract for flights. Messages are protobuf
// well-known types so the service needs no generated code.
type FlightsServiceServer interface {
	ListFlights(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetFlight(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	CreateFlight(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateFlight(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteFlight(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

func RegisterFlightsServiceServer(s grpc.ServiceRegistrar, srv FlightsServiceServer) {
	s.RegisterService(&flightsServiceDesc, srv)
}

var flightsServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*FlightsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListFlights",
			Handler: unaryHandler("ListFlights", func() *emptypb.Empty { return new(emptypb.Empty) },
				func(srv FlightsServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) {
					return srv.ListFlights(ctx, in)
				}),
		},
		{
			MethodName: "GetFlight",
			Handler: unaryHandler("GetFlight", func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) },
				func(srv FlightsServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
					return srv.GetFlight(ctx, in)
				}),
		},
		{
			MethodName: "CreateFlight",
			Handler: unaryHandler("CreateFlight", func() *structpb.Struct { return new(structpb.Struct) },
				func(srv FlightsServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
					return srv.CreateFlight(ctx, in)
				}),
		},
		{
			MethodName: "UpdateFlight",
			Handler: unaryHandler("UpdateFlight", func() *structpb.Struct { return new(structpb.Struct) },
				func(srv FlightsServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
					return srv.UpdateFlight(ctx, in)
				}),
		},
		{
			MethodName: "DeleteFlight",
			Handler: unaryHandler("DeleteFlight", func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) },
				func(srv FlightsServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
					return srv.DeleteFlight(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flights/v1/flights.proto",
}

func unaryHandler[Req any](
	method string,
	newReq func() Req,
	call func(FlightsServiceServer, context.Context, Req) (any, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + serviceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FlightsServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FlightsServiceServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FlightsServiceClient calls FlightsService over an established connection.
type FlightsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFlightsServiceClient(cc grpc.ClientConnInterface) *FlightsServiceClient {
	return &FlightsServiceClient{cc: cc}
}

func (c *FlightsServiceClient) ListFlights(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ListFlights", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FlightsServiceClient) GetFlight(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetFlight", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FlightsServiceClient) CreateFlight(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/CreateFlight", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FlightsServiceClient) UpdateFlight(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/UpdateFlight", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FlightsServiceClient) DeleteFlight(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/DeleteFlight", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
