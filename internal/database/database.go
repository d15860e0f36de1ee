package database

import (
	"fmt"

	"trade-dashboard-go/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection and performs auto-migration.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Trade{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return db, nil
}

// TradeStore persists the per-session trade list.
type TradeStore struct {
	db *gorm.DB
}

// NewTradeStore creates a new TradeStore.
func NewTradeStore(db *gorm.DB) *TradeStore {
	return &TradeStore{db: db}
}

// Replace swaps the session's trade list for a new one in a single transaction.
// An upload always replaces, never merges.
func (s *TradeStore) Replace(sessionID string, trades []models.Trade) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.Trade{}).Error; err != nil {
			return fmt.Errorf("failed to clear previous trades: %w", err)
		}
		if len(trades) == 0 {
			return nil
		}
		for i := range trades {
			trades[i].ID = 0
			trades[i].SessionID = sessionID
		}
		if err := tx.CreateInBatches(trades, 200).Error; err != nil {
			return fmt.Errorf("failed to store trades: %w", err)
		}
		return nil
	})
}

// BySession returns the session's full trade list ordered ascending by close time.
func (s *TradeStore) BySession(sessionID string) ([]models.Trade, error) {
	var trades []models.Trade
	if err := s.db.Where("session_id = ?", sessionID).
		Order("close_time asc").
		Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("failed to load trades: %w", err)
	}
	return trades, nil
}

// Count returns the number of stored trades for the session.
func (s *TradeStore) Count(sessionID string) (int64, error) {
	var n int64
	if err := s.db.Model(&models.Trade{}).
		Where("session_id = ?", sessionID).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return n, nil
}
