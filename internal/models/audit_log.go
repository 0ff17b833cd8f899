package models

import "time"

// AuditLog is one console action, kept in the optional audit database.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	ActorID    string `gorm:"size:64;index"`
	ActorEmail string `gorm:"size:255"`
	ActorRole  string `gorm:"size:20"`

	Entity   string `gorm:"size:50;not null"` // "user", "task", "payroll", "inventory", "session"
	EntityID string `gorm:"size:64"`
	Action   string `gorm:"size:50;not null"` // "create", "toggle_status", "login" ...
	Details  string `gorm:"type:text"`
}
