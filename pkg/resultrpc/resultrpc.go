// Package resultrpc is the gRPC boundary adapter for structured errors,
// the transport-level sibling of resulthttp. It converts *errs.Error
// values into gRPC statuses carrying an ErrorInfo detail and back,
// preserving code, message, category and metadata across the conversion.
package resultrpc

import (
	"context"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tendant/simple-consent/pkg/errs"
)

const errorDomain = "simple-consent"

// metadata keys inside the ErrorInfo detail that carry the structured
// error's own fields rather than caller metadata.
const (
	metaKeyCategory = "category"
	metaKeyStatus   = "status"
)

// ToStatus converts an error into a gRPC status. Structured errors map
// their HTTP-style status onto a gRPC code and carry code, category and
// metadata in an ErrorInfo detail; other errors become Internal.
func ToStatus(err error) *status.Status {
	if err == nil {
		return nil
	}
	e := errs.Ensure(err, errs.CodeUnexpectedError)

	st := status.New(grpcCode(e.Status()), e.Message())

	info := &errdetails.ErrorInfo{
		Reason: string(e.Code()),
		Domain: errorDomain,
		Metadata: map[string]string{
			metaKeyCategory: string(e.Category()),
			metaKeyStatus:   fmt.Sprintf("%d", e.Status()),
		},
	}
	for k, v := range e.Meta() {
		info.Metadata[k] = fmt.Sprintf("%v", v)
	}

	detailed, derr := st.WithDetails(info)
	if derr != nil {
		// Detail attachment is best-effort; the bare status still carries
		// code and message.
		return st
	}
	return detailed
}

// FromStatus rebuilds a structured error from a gRPC status, tolerant of
// statuses produced outside this package: without an ErrorInfo detail the
// gRPC code alone decides status and code.
func FromStatus(st *status.Status) *errs.Error {
	if st == nil || st.Code() == codes.OK {
		return nil
	}

	opts := errs.Options{
		Code:   errs.CodeUnknownError,
		Status: httpStatus(st.Code()),
		Meta:   map[string]any{},
	}

	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok {
			continue
		}
		if info.GetReason() != "" {
			opts.Code = errs.Code(info.GetReason())
		}
		for k, v := range info.GetMetadata() {
			switch k {
			case metaKeyCategory:
				opts.Category = errs.Category(v)
			case metaKeyStatus:
				var parsed int
				if _, err := fmt.Sscanf(v, "%d", &parsed); err == nil && parsed > 0 {
					opts.Status = parsed
				}
			default:
				opts.Meta[k] = v
			}
		}
	}

	return errs.New(st.Message(), opts)
}

// ToError converts an error into a gRPC status error suitable for
// returning from a service method.
func ToError(err error) error {
	if err == nil {
		return nil
	}
	return ToStatus(err).Err()
}

// UnaryServerInterceptor converts structured errors returned by handlers
// into gRPC status errors at the request boundary. Errors that are
// already statuses pass through unchanged.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if _, ok := status.FromError(err); ok && !errs.IsError(err) {
			return resp, err
		}
		return resp, ToError(err)
	}
}

func grpcCode(httpStatus int) codes.Code {
	switch httpStatus {
	case 400:
		return codes.InvalidArgument
	case 401:
		return codes.Unauthenticated
	case 403:
		return codes.PermissionDenied
	case 404:
		return codes.NotFound
	case 408:
		return codes.DeadlineExceeded
	case 409:
		return codes.Aborted
	case 429:
		return codes.ResourceExhausted
	case 501:
		return codes.Unimplemented
	case 503:
		return codes.Unavailable
	default:
		if httpStatus >= 400 && httpStatus < 500 {
			return codes.InvalidArgument
		}
		return codes.Internal
	}
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return 400
	case codes.Unauthenticated:
		return 401
	case codes.PermissionDenied:
		return 403
	case codes.NotFound:
		return 404
	case codes.DeadlineExceeded:
		return 408
	case codes.Aborted, codes.AlreadyExists:
		return 409
	case codes.ResourceExhausted:
		return 429
	case codes.Unimplemented:
		return 501
	case codes.Unavailable:
		return 503
	default:
		return 500
	}
}
