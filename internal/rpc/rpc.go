// Package rpc exposes the booking use cases over gRPC.
//
// Requests and responses are google.protobuf.Struct values so the service
// needs no generated code:
//
//	CreateAppointment        {provider_id, date (RFC 3339)} -> appointment
//	ListProviderAppointments {day, month, year}             -> {appointments: [...]}
package rpc

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"appointment-booking-api/internal/apperr"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/service"
)

const (
	ServiceName = "booking.v1.BookingService"

	CreateAppointmentMethod        = "/" + ServiceName + "/CreateAppointment"
	ListProviderAppointmentsMethod = "/" + ServiceName + "/ListProviderAppointments"
)

type BookingServer interface {
	CreateAppointment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListProviderAppointments(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type Server struct {
	svc *service.Service
}

// NewServer builds a gRPC server with auth and rate limiting in front of the booking service.
func NewServer(svc *service.Service, secret string, rl *middleware.RateLimiter) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.RateLimit(rl, map[string]bool{CreateAppointmentMethod: true}),
			middleware.Auth(secret, nil),
		),
	)
	srv.RegisterService(&ServiceDesc, &Server{svc: svc})
	return srv
}

func (s *Server) CreateAppointment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := req.GetFields()
	providerID := f["provider_id"].GetStringValue()
	raw := f["date"].GetStringValue()

	date, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "date must be RFC 3339")
	}

	apt, err := s.svc.CreateAppointment(ctx, service.CreateAppointmentInput{
		ProviderID: providerID,
		UserID:     middleware.UserID(ctx),
		Date:       date,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(appointmentFields(apt))
}

// ListProviderAppointments lists the caller's own appointments as a provider.
func (s *Server) ListProviderAppointments(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := req.GetFields()
	day := int(f["day"].GetNumberValue())
	month := time.Month(f["month"].GetNumberValue())
	year := int(f["year"].GetNumberValue())

	apts, err := s.svc.ListProviderAppointments(ctx, middleware.UserID(ctx), day, month, year)
	if err != nil {
		return nil, toStatus(err)
	}
	list := make([]any, len(apts))
	for i := range apts {
		list[i] = appointmentFields(&apts[i])
	}
	return structpb.NewStruct(map[string]any{"appointments": list})
}

func appointmentFields(a *model.Appointment) map[string]any {
	return map[string]any{
		"id":          a.ID,
		"provider_id": a.ProviderID,
		"user_id":     a.UserID,
		"date":        a.Date.Format(time.RFC3339),
	}
}

func toStatus(err error) error {
	e, ok := apperr.As(err)
	if !ok {
		log.WithError(err).Error("rpc failed")
		return status.Error(codes.Internal, "internal error")
	}
	switch e.Status {
	case http.StatusUnauthorized:
		return status.Error(codes.Unauthenticated, e.Message)
	case http.StatusNotFound:
		return status.Error(codes.NotFound, e.Message)
	case http.StatusTooManyRequests:
		return status.Error(codes.ResourceExhausted, e.Message)
	}
	if errors.Is(err, service.ErrAlreadyBooked) {
		return status.Error(codes.AlreadyExists, e.Message)
	}
	return status.Error(codes.InvalidArgument, e.Message)
}

func unary(method string, call func(BookingServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BookingServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BookingServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateAppointment",
			Handler:    unary(CreateAppointmentMethod, BookingServer.CreateAppointment),
		},
		{
			MethodName: "ListProviderAppointments",
			Handler:    unary(ListProviderAppointmentsMethod, BookingServer.ListProviderAppointments),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// Client calls a BookingService over conn.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client { return &Client{conn: conn} }

func (c *Client) CreateAppointment(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, CreateAppointmentMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProviderAppointments(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, ListProviderAppointmentsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
