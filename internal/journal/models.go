package journal

import "time"

// EntryModel is the GORM model for the entries table
type EntryModel struct {
	ID          string    `gorm:"primaryKey"`
	RunID       string    `gorm:"not null;index:idx_run_id"`
	Project     string    `gorm:"not null;index:idx_project_started,priority:1"`
	Operation   string    `gorm:"not null"`
	Description string    `gorm:"default:''"`
	Params      string    `gorm:"default:''"` // JSON object
	Success     bool      `gorm:"not null;default:false"`
	Message     string    `gorm:"default:''"`
	Error       string    `gorm:"default:''"`
	StartedAt   time.Time `gorm:"not null;index:idx_project_started,priority:2"`
	DurationMS  int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (EntryModel) TableName() string { return "entries" }
