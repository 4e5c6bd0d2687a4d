// Package employees owns the employee records of the first service and the
// authoritative existence lookup the validator worker runs against.
package employees

import (
	"context"
	"errors"
	"time"
)

type Employee struct {
	ID          int64     `json:"id" bson:"_id"`
	FirstName   string    `json:"first_name" bson:"first_name"`
	LastName    string    `json:"last_name" bson:"last_name"`
	Email       string    `json:"email" bson:"email"`
	PhoneNumber string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Position    string    `json:"position" bson:"position"`
	Salary      float64   `json:"salary" bson:"salary"`
	HireDate    time.Time `json:"hire_date" bson:"hire_date"`
}

var (
	ErrNotFound       = errors.New("employees: not found")
	ErrDuplicateEmail = errors.New("employees: email already registered")
)

// Store is the persistence boundary of the employees service. Exists is the
// only operation the validation protocol consumes.
type Store interface {
	Create(ctx context.Context, e *Employee) error
	Get(ctx context.Context, id int64) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	List(ctx context.Context) ([]Employee, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
