package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/raphi011/devflow/internal/log"
)

// DefaultListLimit is used by List when limit is not positive.
const DefaultListLimit = 20

// Entry is one executed operation.
type Entry struct {
	ID          string            `json:"id"`
	RunID       string            `json:"run_id"`
	Project     string            `json:"project"`
	Operation   string            `json:"operation"`
	Description string            `json:"description,omitempty"`
	Params      map[string]string `json:"params,omitempty"`
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Error       string            `json:"error,omitempty"`
	StartedAt   time.Time         `json:"started_at"`
	Duration    time.Duration     `json:"duration"`
}

// NewRunID returns a new sortable run id.
func NewRunID() string {
	return ulid.Make().String()
}

// Store persists entries using GORM on SQLite.
type Store struct {
	db *gorm.DB
}

// gormLogger forwards GORM traces to the context logger's debug output.
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		log.FromContext(ctx).Debug(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		log.FromContext(ctx).Debug(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		log.FromContext(ctx).Debug(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}
	sql, rows := fc()
	kv := []any{"duration", time.Since(begin), "sql", sql, "rows", rows}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		kv = append(kv, "error", err)
	}
	log.FromContext(ctx).Debug("journal query", kv...)
}

// Open opens (and creates if needed) the journal database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  (&gormLogger{}).LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// WAL lets concurrent devflow invocations read while one writes
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&EntryModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record stores e. An empty ID is filled with a new ULID.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	params := ""
	if len(e.Params) > 0 {
		data, err := json.Marshal(e.Params)
		if err != nil {
			return fmt.Errorf("encode params: %w", err)
		}
		params = string(data)
	}

	m := EntryModel{
		ID:          e.ID,
		RunID:       e.RunID,
		Project:     e.Project,
		Operation:   e.Operation,
		Description: e.Description,
		Params:      params,
		Success:     e.Success,
		Message:     e.Message,
		Error:       e.Error,
		StartedAt:   e.StartedAt.UTC(),
		DurationMS:  e.Duration.Milliseconds(),
	}
	return withRetry(func() error {
		return s.db.WithContext(ctx).Create(&m).Error
	}, 5)
}

// List returns the newest entries of project, newest first. An empty
// project lists entries of every project.
func (s *Store) List(ctx context.Context, project string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var models []EntryModel
	err := withRetry(func() error {
		q := s.db.WithContext(ctx).Order("started_at DESC, id DESC").Limit(limit)
		if project != "" {
			q = q.Where("project = ?", project)
		}
		return q.Find(&models).Error
	}, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	entries := make([]Entry, 0, len(models))
	for _, m := range models {
		e := Entry{
			ID:          m.ID,
			RunID:       m.RunID,
			Project:     m.Project,
			Operation:   m.Operation,
			Description: m.Description,
			Success:     m.Success,
			Message:     m.Message,
			Error:       m.Error,
			StartedAt:   m.StartedAt,
			Duration:    time.Duration(m.DurationMS) * time.Millisecond,
		}
		if m.Params != "" {
			if err := json.Unmarshal([]byte(m.Params), &e.Params); err != nil {
				return nil, fmt.Errorf("decode params of entry %s: %w", m.ID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// withRetry retries fn while SQLite reports the database busy or locked.
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}
		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
