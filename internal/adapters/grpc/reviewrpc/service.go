package reviewrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName は gRPC のサービス名です。
const ServiceName = "review.v1.ReviewService"

const (
	MethodEmployees              = "Employees"
	MethodPaginatedTransactions  = "PaginatedTransactions"
	MethodTransactionsByEmployee = "TransactionsByEmployee"
	MethodSetTransactionApproval = "SetTransactionApproval"
)

// Endpoint はクライアント側キャッシュのキーに使うエンドポイント名です。
const (
	EndpointEmployees              = "employees"
	EndpointPaginatedTransactions  = "paginatedTransactions"
	EndpointTransactionsByEmployee = "transactionsByEmployee"
	EndpointSetTransactionApproval = "setTransactionApproval"
)

var endpointMethods = map[string]string{
	EndpointEmployees:              MethodEmployees,
	EndpointPaginatedTransactions:  MethodPaginatedTransactions,
	EndpointTransactionsByEmployee: MethodTransactionsByEmployee,
	EndpointSetTransactionApproval: MethodSetTransactionApproval,
}

// FullMethod は "/サービス名/メソッド名" 形式のメソッド名を返します。
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// MethodForEndpoint はエンドポイント名に対応する RPC メソッド名を返します。
func MethodForEndpoint(endpoint string) (string, bool) {
	method, ok := endpointMethods[endpoint]
	return method, ok
}

// ReviewServiceServer は ReviewService のサーバー実装が満たすインターフェースです。
// 社員がいない場合 Employees は nil を返し、JSON では null になります。
type ReviewServiceServer interface {
	Employees(ctx context.Context, req *EmployeesRequest) ([]Employee, error)
	PaginatedTransactions(ctx context.Context, req *PaginatedTransactionsRequest) (*PaginatedTransactionsResponse, error)
	TransactionsByEmployee(ctx context.Context, req *TransactionsByEmployeeRequest) ([]Transaction, error)
	SetTransactionApproval(ctx context.Context, req *SetTransactionApprovalRequest) (*SetTransactionApprovalResponse, error)
}

// UnimplementedReviewServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedReviewServiceServer struct{}

func (UnimplementedReviewServiceServer) Employees(context.Context, *EmployeesRequest) ([]Employee, error) {
	return nil, status.Error(codes.Unimplemented, "method Employees not implemented")
}

func (UnimplementedReviewServiceServer) PaginatedTransactions(context.Context, *PaginatedTransactionsRequest) (*PaginatedTransactionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PaginatedTransactions not implemented")
}

func (UnimplementedReviewServiceServer) TransactionsByEmployee(context.Context, *TransactionsByEmployeeRequest) ([]Transaction, error) {
	return nil, status.Error(codes.Unimplemented, "method TransactionsByEmployee not implemented")
}

func (UnimplementedReviewServiceServer) SetTransactionApproval(context.Context, *SetTransactionApprovalRequest) (*SetTransactionApprovalResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetTransactionApproval not implemented")
}

// RegisterReviewServiceServer はサーバーに ReviewService を登録します。
func RegisterReviewServiceServer(s grpc.ServiceRegistrar, srv ReviewServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc は ReviewService の記述子です。
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReviewServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodEmployees, Handler: employeesHandler},
		{MethodName: MethodPaginatedTransactions, Handler: paginatedTransactionsHandler},
		{MethodName: MethodTransactionsByEmployee, Handler: transactionsByEmployeeHandler},
		{MethodName: MethodSetTransactionApproval, Handler: setTransactionApprovalHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "review/v1/review.json",
}

func employeesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(EmployeesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	call := func(ctx context.Context, req any) (any, error) {
		return srv.(ReviewServiceServer).Employees(ctx, req.(*EmployeesRequest))
	}
	return intercept(srv, ctx, in, MethodEmployees, interceptor, call)
}

func paginatedTransactionsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PaginatedTransactionsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	call := func(ctx context.Context, req any) (any, error) {
		return srv.(ReviewServiceServer).PaginatedTransactions(ctx, req.(*PaginatedTransactionsRequest))
	}
	return intercept(srv, ctx, in, MethodPaginatedTransactions, interceptor, call)
}

func transactionsByEmployeeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TransactionsByEmployeeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	call := func(ctx context.Context, req any) (any, error) {
		return srv.(ReviewServiceServer).TransactionsByEmployee(ctx, req.(*TransactionsByEmployeeRequest))
	}
	return intercept(srv, ctx, in, MethodTransactionsByEmployee, interceptor, call)
}

func setTransactionApprovalHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SetTransactionApprovalRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	call := func(ctx context.Context, req any) (any, error) {
		return srv.(ReviewServiceServer).SetTransactionApproval(ctx, req.(*SetTransactionApprovalRequest))
	}
	return intercept(srv, ctx, in, MethodSetTransactionApproval, interceptor, call)
}

func intercept(srv any, ctx context.Context, in any, method string, interceptor grpc.UnaryServerInterceptor, call grpc.UnaryHandler) (any, error) {
	if interceptor == nil {
		return call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
	return interceptor(ctx, in, info, call)
}
