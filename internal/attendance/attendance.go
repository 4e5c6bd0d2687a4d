// Package attendance owns the attendance records of the second service. A
// record is only created after the employee id passed validation over the
// broker; the two services never share a database.
package attendance

import (
	"context"
	"time"
)

// Attendance types as stored and served.
const (
	TypeEntry = "entry"
	TypeExit  = "exit"
)

type Record struct {
	ID         int64     `json:"id" bson:"_id"`
	EmployeeID int64     `json:"employee_id" bson:"employee_id"`
	Date       string    `json:"date" bson:"date"`
	Time       string    `json:"time" bson:"time"`
	Type       string    `json:"type" bson:"type"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Store is the persistence boundary of the attendance service. List returns
// records newest first.
type Store interface {
	Create(ctx context.Context, rec *Record) error
	List(ctx context.Context) ([]Record, error)
}
