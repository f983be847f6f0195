package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/models"
)

type sessionLogRepository struct {
	*DB
	logger *logger.Logger
}

// NewSessionLogRepository constructs a [SessionLogRepository] backed by db.
func NewSessionLogRepository(db *DB, logger *logger.Logger) SessionLogRepository {
	return &sessionLogRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *sessionLogRepository) Get(ctx context.Context, source string) (models.SessionLog, error) {
	log := logger.FromContext(ctx)

	var (
		sessionLog models.SessionLog
		totals     string
		lastSyncAt sql.NullTime
	)
	err := s.DB.QueryRowContext(ctx, getSessionLog, source).Scan(
		&sessionLog.Source,
		&sessionLog.Anchors.Last,
		&sessionLog.Anchors.Next,
		&totals,
		&sessionLog.LastStatus,
		&lastSyncAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SessionLog{Source: source}, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "sessionLogRepository.Get").
			Str("source", source).
			Msg("failed to read session log")
		return models.SessionLog{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = json.Unmarshal([]byte(totals), &sessionLog.Totals); err != nil {
		// counters are informational, anchors are still usable
		log.Warn().Err(err).
			Str("func", "sessionLogRepository.Get").
			Str("source", source).
			Msg("resetting unreadable session totals")
		sessionLog.Totals = models.SyncCounters{}
	}

	if lastSyncAt.Valid {
		at := lastSyncAt.Time
		sessionLog.LastSyncAt = &at
	}

	return sessionLog, nil
}

func (s *sessionLogRepository) Save(ctx context.Context, sessionLog models.SessionLog) error {
	log := logger.FromContext(ctx)

	totals, err := json.Marshal(sessionLog.Totals)
	if err != nil {
		return fmt.Errorf("failed to encode session totals: %w", err)
	}

	var lastSyncAt sql.NullTime
	if sessionLog.LastSyncAt != nil {
		lastSyncAt = sql.NullTime{Time: *sessionLog.LastSyncAt, Valid: true}
	}

	err = s.withRetry(ctx, func(ctx context.Context) error {
		_, err := s.DB.ExecContext(ctx, upsertSessionLog,
			sessionLog.Source,
			sessionLog.Anchors.Last,
			sessionLog.Anchors.Next,
			string(totals),
			sessionLog.LastStatus,
			lastSyncAt,
		)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "sessionLogRepository.Save").
			Str("source", sessionLog.Source).
			Msg("failed to save session log")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
