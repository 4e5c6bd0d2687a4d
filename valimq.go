// Package valimq implements the synchronous employee-validation protocol the
// attendance service runs on top of RabbitMQ: a requester publishes a
// validation request with a correlation id and a private reply address, a
// single responder checks authoritative employee storage and publishes a
// correlated reply, and the requester blocks for it under a deadline.
package valimq

import (
	"context"
)

// Queue names shared by every deployed peer. These are part of the wire
// contract and must not change between releases.
const (
	RequestQueue  = "validate_employee_request"
	ResponseQueue = "validate_employee_response"
)

// Reply messages carried on the wire. Existing consumers match on the exact
// strings, so they are not localized.
const (
	MsgValid         = "Empleado válido"
	MsgNotFound      = "Empleado no encontrado"
	MsgInternalError = "Error interno del servidor"
)

// Request is the body published to RequestQueue.
type Request struct {
	EmployeeID int64 `json:"employee_id"`
}

// Reply is the body published back to the requester. EmployeeID is a pointer
// because the responder echoes whatever id the request carried, including
// none at all.
type Reply struct {
	Valid      bool   `json:"valid"`
	EmployeeID *int64 `json:"employee_id"`
	Message    string `json:"message"`
}

// Validator answers whether an employee id refers to an existing record.
//
// Validate is the fail-closed form used on the attendance request path: any
// transport failure, timeout or negative reply collapses to false. Callers
// that need to tell a definitive negative apart from an infrastructure
// failure use ValidateReply, which surfaces the raw reply and error.
type Validator interface {
	Validate(ctx context.Context, employeeID int64) bool
	ValidateReply(ctx context.Context, employeeID int64) (*Reply, error)
}

// ExistsFunc is the responder's view of employee storage. A returned error
// means the lookup itself failed, which is distinct from (false, nil).
type ExistsFunc func(ctx context.Context, employeeID int64) (bool, error)

// Marshaler is a simple encoding interface.
type Marshaler interface {
	Marshal(any) ([]byte, error)
	Unmarshal([]byte, any) error
	String() string
}

// Logger is the minimal logging seam carried on Options. The zero value of
// the library logs nothing; services plug in a zap-backed implementation.
type Logger interface {
	Log(args ...any)
	Logf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Log(args ...any)                 {}
func (nopLogger) Logf(format string, args ...any) {}
