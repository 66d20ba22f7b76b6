package journal

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yersmagit/lessons-displayer/internal/domain/automation"
)

// Decision is one persisted trigger decision.
type Decision struct {
	ID         uint      `gorm:"primaryKey"`
	EventID    string    `gorm:"size:36;uniqueIndex;not null"`
	PeriodName string    `gorm:"not null;index"`
	Mode       string    `gorm:"not null"`
	Outcome    string    `gorm:"not null;index"`
	// ScheduledAt is the intended fire instant; zero for triggers that
	// never had a valid one.
	ScheduledAt time.Time
	DecidedAt   time.Time `gorm:"not null;index"`
	Error       string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// Repository persists trigger decisions to a sqlite database.
// It implements the trigger engine's Sink interface.
type Repository struct {
	db *gorm.DB
}

// Open creates (or opens) the journal database at path and migrates the
// schema.
func Open(path string) (*Repository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	if err = db.AutoMigrate(&Decision{}); err != nil {
		return nil, fmt.Errorf("migrate journal schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Record persists one trigger event.
func (r *Repository) Record(ctx context.Context, event automation.TriggerEvent) error {
	decision := Decision{
		EventID:     event.ID.String(),
		PeriodName:  event.PeriodName,
		Mode:        event.Mode.String(),
		Outcome:     string(event.Outcome),
		ScheduledAt: event.ScheduledAt,
		DecidedAt:   event.DecidedAt,
		Error:       event.Err,
	}

	if err := r.db.WithContext(ctx).Create(&decision).Error; err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}

	return nil
}

// RecentDecisions returns up to limit decisions, newest first.
func (r *Repository) RecentDecisions(ctx context.Context, limit int) ([]Decision, error) {
	var decisions []Decision

	err := r.db.WithContext(ctx).
		Order("decided_at DESC").
		Limit(limit).
		Find(&decisions).Error
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}

	return decisions, nil
}

// Close releases the underlying database connection.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("unwrap journal database: %w", err)
	}

	return sqlDB.Close()
}
