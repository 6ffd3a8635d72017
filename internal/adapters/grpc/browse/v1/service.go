package browsev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName = "browse.v1.TransactionService"

	TransactionService_ListEmployees_FullMethodName              = "/browse.v1.TransactionService/ListEmployees"
	TransactionService_ListTransactions_FullMethodName           = "/browse.v1.TransactionService/ListTransactions"
	TransactionService_ListTransactionsByEmployee_FullMethodName = "/browse.v1.TransactionService/ListTransactionsByEmployee"
)

// TransactionServiceServer はサーバー側の実装が満たすべきインターフェースです。
type TransactionServiceServer interface {
	ListEmployees(context.Context, *ListEmployeesRequest) (*ListEmployeesResponse, error)
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error)
	ListTransactionsByEmployee(context.Context, *ListTransactionsByEmployeeRequest) (*ListTransactionsByEmployeeResponse, error)
}

// UnimplementedTransactionServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedTransactionServiceServer struct{}

func (UnimplementedTransactionServiceServer) ListEmployees(context.Context, *ListEmployeesRequest) (*ListEmployeesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEmployees not implemented")
}

func (UnimplementedTransactionServiceServer) ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTransactions not implemented")
}

func (UnimplementedTransactionServiceServer) ListTransactionsByEmployee(context.Context, *ListTransactionsByEmployeeRequest) (*ListTransactionsByEmployeeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTransactionsByEmployee not implemented")
}

// RegisterTransactionServiceServer は srv を s に登録します。
func RegisterTransactionServiceServer(s grpc.ServiceRegistrar, srv TransactionServiceServer) {
	s.RegisterService(&TransactionService_ServiceDesc, srv)
}

func _TransactionService_ListEmployees_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListEmployeesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TransactionServiceServer).ListEmployees(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TransactionService_ListEmployees_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TransactionServiceServer).ListEmployees(ctx, req.(*ListEmployeesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TransactionService_ListTransactions_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListTransactionsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TransactionServiceServer).ListTransactions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TransactionService_ListTransactions_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TransactionServiceServer).ListTransactions(ctx, req.(*ListTransactionsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _TransactionService_ListTransactionsByEmployee_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListTransactionsByEmployeeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TransactionServiceServer).ListTransactionsByEmployee(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TransactionService_ListTransactionsByEmployee_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TransactionServiceServer).ListTransactionsByEmployee(ctx, req.(*ListTransactionsByEmployeeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// TransactionService_ServiceDesc は browse.v1.TransactionService の ServiceDesc です。
var TransactionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TransactionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListEmployees", Handler: _TransactionService_ListEmployees_Handler},
		{MethodName: "ListTransactions", Handler: _TransactionService_ListTransactions_Handler},
		{MethodName: "ListTransactionsByEmployee", Handler: _TransactionService_ListTransactionsByEmployee_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "browse/v1/transaction.proto",
}

// TransactionServiceClient は browse.v1.TransactionService のクライアントです。
type TransactionServiceClient interface {
	ListEmployees(ctx context.Context, in *ListEmployeesRequest, opts ...grpc.CallOption) (*ListEmployeesResponse, error)
	ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error)
	ListTransactionsByEmployee(ctx context.Context, in *ListTransactionsByEmployeeRequest, opts ...grpc.CallOption) (*ListTransactionsByEmployeeResponse, error)
}

type transactionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTransactionServiceClient は JSON コーデックで通信するクライアントを生成します。
func NewTransactionServiceClient(cc grpc.ClientConnInterface) TransactionServiceClient {
	return &transactionServiceClient{cc: cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *transactionServiceClient) ListEmployees(ctx context.Context, in *ListEmployeesRequest, opts ...grpc.CallOption) (*ListEmployeesResponse, error) {
	out := new(ListEmployeesResponse)
	if err := c.cc.Invoke(ctx, TransactionService_ListEmployees_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *transactionServiceClient) ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error) {
	out := new(ListTransactionsResponse)
	if err := c.cc.Invoke(ctx, TransactionService_ListTransactions_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *transactionServiceClient) ListTransactionsByEmployee(ctx context.Context, in *ListTransactionsByEmployeeRequest, opts ...grpc.CallOption) (*ListTransactionsByEmployeeResponse, error) {
	out := new(ListTransactionsByEmployeeResponse)
	if err := c.cc.Invoke(ctx, TransactionService_ListTransactionsByEmployee_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
