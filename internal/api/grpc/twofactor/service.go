// Package twofactor defines the TwoFactor gRPC service: its messages, the JSON
// codec they travel with, the server registration descriptor and a client.
package twofactor

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "twofactor.TwoFactor"

const (
	TwoFactor_EnrollTOTP_FullMethodName                = "/twofactor.TwoFactor/EnrollTOTP"
	TwoFactor_VerifyTOTP_FullMethodName                = "/twofactor.TwoFactor/VerifyTOTP"
	TwoFactor_BeginU2FRegistration_FullMethodName      = "/twofactor.TwoFactor/BeginU2FRegistration"
	TwoFactor_CompleteU2FRegistration_FullMethodName   = "/twofactor.TwoFactor/CompleteU2FRegistration"
	TwoFactor_BeginU2FAuthentication_FullMethodName    = "/twofactor.TwoFactor/BeginU2FAuthentication"
	TwoFactor_CompleteU2FAuthentication_FullMethodName = "/twofactor.TwoFactor/CompleteU2FAuthentication"
	TwoFactor_DeleteU2F_FullMethodName                 = "/twofactor.TwoFactor/DeleteU2F"
	TwoFactor_CheckAssertion_FullMethodName            = "/twofactor.TwoFactor/CheckAssertion"
)

// TwoFactorServer is the server API for the TwoFactor service.
type TwoFactorServer interface {
	EnrollTOTP(context.Context, *EnrollTOTPRequest) (*EnrollTOTPResponse, error)
	VerifyTOTP(context.Context, *VerifyTOTPRequest) (*VerifyResponse, error)
	BeginU2FRegistration(context.Context, *BeginU2FRegistrationRequest) (*BeginU2FRegistrationResponse, error)
	CompleteU2FRegistration(context.Context, *CompleteU2FRegistrationRequest) (*CompleteU2FRegistrationResponse, error)
	BeginU2FAuthentication(context.Context, *BeginU2FAuthenticationRequest) (*BeginU2FAuthenticationResponse, error)
	CompleteU2FAuthentication(context.Context, *CompleteU2FAuthenticationRequest) (*VerifyResponse, error)
	DeleteU2F(context.Context, *DeleteU2FRequest) (*DeleteU2FResponse, error)
	CheckAssertion(context.Context, *CheckAssertionRequest) (*CheckAssertionResponse, error)
	mustEmbedUnimplementedTwoFactorServer()
}

// UnimplementedTwoFactorServer must be embedded by implementations so that
// adding methods to the service does not break them.
type UnimplementedTwoFactorServer struct{}

func (UnimplementedTwoFactorServer) EnrollTOTP(context.Context, *EnrollTOTPRequest) (*EnrollTOTPResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method EnrollTOTP not implemented")
}
func (UnimplementedTwoFactorServer) VerifyTOTP(context.Context, *VerifyTOTPRequest) (*VerifyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyTOTP not implemented")
}
func (UnimplementedTwoFactorServer) BeginU2FRegistration(context.Context, *BeginU2FRegistrationRequest) (*BeginU2FRegistrationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method BeginU2FRegistration not implemented")
}
func (UnimplementedTwoFactorServer) CompleteU2FRegistration(context.Context, *CompleteU2FRegistrationRequest) (*CompleteU2FRegistrationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CompleteU2FRegistration not implemented")
}
func (UnimplementedTwoFactorServer) BeginU2FAuthentication(context.Context, *BeginU2FAuthenticationRequest) (*BeginU2FAuthenticationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method BeginU2FAuthentication not implemented")
}
func (UnimplementedTwoFactorServer) CompleteU2FAuthentication(context.Context, *CompleteU2FAuthenticationRequest) (*VerifyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CompleteU2FAuthentication not implemented")
}
func (UnimplementedTwoFactorServer) DeleteU2F(context.Context, *DeleteU2FRequest) (*DeleteU2FResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteU2F not implemented")
}
func (UnimplementedTwoFactorServer) CheckAssertion(context.Context, *CheckAssertionRequest) (*CheckAssertionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckAssertion not implemented")
}
func (UnimplementedTwoFactorServer) mustEmbedUnimplementedTwoFactorServer() {}

// RegisterTwoFactorServer registers srv on s.
func RegisterTwoFactorServer(s grpc.ServiceRegistrar, srv TwoFactorServer) {
	s.RegisterService(&TwoFactor_ServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc.MethodHandler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(TwoFactorServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TwoFactorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TwoFactorServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// TwoFactor_ServiceDesc is the grpc.ServiceDesc for the TwoFactor service.
var TwoFactor_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TwoFactorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "EnrollTOTP",
			Handler:    unaryHandler(TwoFactor_EnrollTOTP_FullMethodName, TwoFactorServer.EnrollTOTP),
		},
		{
			MethodName: "VerifyTOTP",
			Handler:    unaryHandler(TwoFactor_VerifyTOTP_FullMethodName, TwoFactorServer.VerifyTOTP),
		},
		{
			MethodName: "BeginU2FRegistration",
			Handler:    unaryHandler(TwoFactor_BeginU2FRegistration_FullMethodName, TwoFactorServer.BeginU2FRegistration),
		},
		{
			MethodName: "CompleteU2FRegistration",
			Handler:    unaryHandler(TwoFactor_CompleteU2FRegistration_FullMethodName, TwoFactorServer.CompleteU2FRegistration),
		},
		{
			MethodName: "BeginU2FAuthentication",
			Handler:    unaryHandler(TwoFactor_BeginU2FAuthentication_FullMethodName, TwoFactorServer.BeginU2FAuthentication),
		},
		{
			MethodName: "CompleteU2FAuthentication",
			Handler:    unaryHandler(TwoFactor_CompleteU2FAuthentication_FullMethodName, TwoFactorServer.CompleteU2FAuthentication),
		},
		{
			MethodName: "DeleteU2F",
			Handler:    unaryHandler(TwoFactor_DeleteU2F_FullMethodName, TwoFactorServer.DeleteU2F),
		},
		{
			MethodName: "CheckAssertion",
			Handler:    unaryHandler(TwoFactor_CheckAssertion_FullMethodName, TwoFactorServer.CheckAssertion),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "twofactor",
}

// TwoFactorClient is the client API for the TwoFactor service.
type TwoFactorClient interface {
	EnrollTOTP(ctx context.Context, in *EnrollTOTPRequest, opts ...grpc.CallOption) (*EnrollTOTPResponse, error)
	VerifyTOTP(ctx context.Context, in *VerifyTOTPRequest, opts ...grpc.CallOption) (*VerifyResponse, error)
	BeginU2FRegistration(ctx context.Context, in *BeginU2FRegistrationRequest, opts ...grpc.CallOption) (*BeginU2FRegistrationResponse, error)
	CompleteU2FRegistration(ctx context.Context, in *CompleteU2FRegistrationRequest, opts ...grpc.CallOption) (*CompleteU2FRegistrationResponse, error)
	BeginU2FAuthentication(ctx context.Context, in *BeginU2FAuthenticationRequest, opts ...grpc.CallOption) (*BeginU2FAuthenticationResponse, error)
	CompleteU2FAuthentication(ctx context.Context, in *CompleteU2FAuthenticationRequest, opts ...grpc.CallOption) (*VerifyResponse, error)
	DeleteU2F(ctx context.Context, in *DeleteU2FRequest, opts ...grpc.CallOption) (*DeleteU2FResponse, error)
	CheckAssertion(ctx context.Context, in *CheckAssertionRequest, opts ...grpc.CallOption) (*CheckAssertionResponse, error)
}

type twoFactorClient struct {
	cc grpc.ClientConnInterface
}

// NewTwoFactorClient returns a client that always speaks the JSON codec.
func NewTwoFactorClient(cc grpc.ClientConnInterface) TwoFactorClient {
	return &twoFactorClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *twoFactorClient) EnrollTOTP(ctx context.Context, in *EnrollTOTPRequest, opts ...grpc.CallOption) (*EnrollTOTPResponse, error) {
	return invoke[EnrollTOTPResponse](ctx, c.cc, TwoFactor_EnrollTOTP_FullMethodName, in, opts)
}

func (c *twoFactorClient) VerifyTOTP(ctx context.Context, in *VerifyTOTPRequest, opts ...grpc.CallOption) (*VerifyResponse, error) {
	return invoke[VerifyResponse](ctx, c.cc, TwoFactor_VerifyTOTP_FullMethodName, in, opts)
}

func (c *twoFactorClient) BeginU2FRegistration(ctx context.Context, in *BeginU2FRegistrationRequest, opts ...grpc.CallOption) (*BeginU2FRegistrationResponse, error) {
	return invoke[BeginU2FRegistrationResponse](ctx, c.cc, TwoFactor_BeginU2FRegistration_FullMethodName, in, opts)
}

func (c *twoFactorClient) CompleteU2FRegistration(ctx context.Context, in *CompleteU2FRegistrationRequest, opts ...grpc.CallOption) (*CompleteU2FRegistrationResponse, error) {
	return invoke[CompleteU2FRegistrationResponse](ctx, c.cc, TwoFactor_CompleteU2FRegistration_FullMethodName, in, opts)
}

func (c *twoFactorClient) BeginU2FAuthentication(ctx context.Context, in *BeginU2FAuthenticationRequest, opts ...grpc.CallOption) (*BeginU2FAuthenticationResponse, error) {
	return invoke[BeginU2FAuthenticationResponse](ctx, c.cc, TwoFactor_BeginU2FAuthentication_FullMethodName, in, opts)
}

func (c *twoFactorClient) CompleteU2FAuthentication(ctx context.Context, in *CompleteU2FAuthenticationRequest, opts ...grpc.CallOption) (*VerifyResponse, error) {
	return invoke[VerifyResponse](ctx, c.cc, TwoFactor_CompleteU2FAuthentication_FullMethodName, in, opts)
}

func (c *twoFactorClient) DeleteU2F(ctx context.Context, in *DeleteU2FRequest, opts ...grpc.CallOption) (*DeleteU2FResponse, error) {
	return invoke[DeleteU2FResponse](ctx, c.cc, TwoFactor_DeleteU2F_FullMethodName, in, opts)
}

func (c *twoFactorClient) CheckAssertion(ctx context.Context, in *CheckAssertionRequest, opts ...grpc.CallOption) (*CheckAssertionResponse, error) {
	return invoke[CheckAssertionResponse](ctx, c.cc, TwoFactor_CheckAssertion_FullMethodName, in, opts)
}
