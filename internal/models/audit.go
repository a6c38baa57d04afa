package models

import "time"

// AuditLog records a mutating console action for later review.
type AuditLog struct {
	ID         int64     `db:"id" json:"id"`
	AdminEmail string    `db:"admin_email" json:"admin_email"`
	Method     string    `db:"method" json:"method"`
	Path       string    `db:"path" json:"path"`
	Status     int       `db:"status" json:"status"`
	RequestID  string    `db:"request_id" json:"request_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
