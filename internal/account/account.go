// Package account implements the profile deletion path: a validated request
// marks the profile for deletion, a grace period passes, then a batch purge
// hard-deletes whatever is due. The audit log never stores raw user ids,
// only sha256 hashes.
package account

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"listical-cli/internal/store"
)

var (
	ErrInvalidUserID = errors.New("account: invalid user id")
	ErrRateLimited   = errors.New("account: too many deletion attempts")
	ErrNoProfile     = errors.New("account: no such profile")
)

const (
	DefaultGracePeriod = 30 * 24 * time.Hour
	DefaultRateLimit   = 5
	DefaultRateWindow  = time.Hour
)

// Service runs against the workspace sqlite file shared with the command
// journal.
type Service struct {
	Store store.Store

	GracePeriod time.Duration
	RateLimit   int
	RateWindow  time.Duration

	// Now overrides the clock (tests).
	Now func() time.Time
}

func NewService(s store.Store) *Service {
	return &Service{
		Store:       s,
		GracePeriod: DefaultGracePeriod,
		RateLimit:   DefaultRateLimit,
		RateWindow:  DefaultRateWindow,
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// HashUserID is the audit-log identity: sha256 hex of the raw id.
func HashUserID(userID string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(userID)))
	return hex.EncodeToString(sum[:])
}

// ValidateUserID accepts canonical lowercase-or-uppercase UUID form only.
func ValidateUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if len(userID) != 36 {
		return ErrInvalidUserID
	}
	for i, c := range userID {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return ErrInvalidUserID
			}
		default:
			if !isHex(c) {
				return ErrInvalidUserID
			}
		}
	}
	return nil
}

func isHex(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// EnsureProfile creates the profile row if missing.
func (s *Service) EnsureProfile(ctx context.Context, userID, displayName string) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}
	db, err := s.Store.OpenDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
		INSERT INTO profiles(user_id, display_name, created_at_unixms)
		VALUES(?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET display_name = excluded.display_name
	`, userID, displayName, s.now().UnixMilli())
	return err
}

// RequestDeletion marks the profile for deletion after the grace period.
// Attempts are rate-limited per user over a fixed window; repeated requests
// refresh nothing, the original due date stands.
func (s *Service) RequestDeletion(ctx context.Context, userID string) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}
	db, err := s.Store.OpenDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	hash := HashUserID(userID)
	now := s.now()

	windowStart := now.Add(-s.RateWindow).UnixMilli()
	var attempts int
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM audit_log
		WHERE user_hash = ? AND action = 'deletion-requested' AND created_at_unixms >= ?
	`, hash, windowStart).Scan(&attempts)
	if err != nil {
		return err
	}
	if attempts >= s.RateLimit {
		return ErrRateLimited
	}

	var exists int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles WHERE user_id = ? AND deleted_at_unixms IS NULL`, userID).Scan(&exists)
	if err != nil {
		return err
	}

	// The attempt is audited whether or not the profile exists; the rate
	// limit must count probes too.
	if _, err := db.ExecContext(ctx, `
		INSERT INTO audit_log(user_hash, action, detail, created_at_unixms)
		VALUES(?, 'deletion-requested', '', ?)
	`, hash, now.UnixMilli()); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNoProfile
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO deletion_requests(user_id, requested_at_unixms, due_at_unixms)
		VALUES(?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`, userID, now.UnixMilli(), now.Add(s.GracePeriod).UnixMilli())
	return err
}

// CancelDeletion withdraws a pending request during the grace period.
func (s *Service) CancelDeletion(ctx context.Context, userID string) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}
	db, err := s.Store.OpenDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM deletion_requests WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoProfile
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO audit_log(user_hash, action, detail, created_at_unixms)
		VALUES(?, 'deletion-cancelled', '', ?)
	`, HashUserID(userID), s.now().UnixMilli())
	return err
}

// PurgeResult reports one batch run.
type PurgeResult struct {
	Processed int
	Succeeded int
	Failed    int
	Errors    []string
}

// PurgeDue hard-deletes every profile whose grace period has lapsed. Each
// user is attempted independently: a failure is recorded in the audit log and
// the batch moves on. Only a failure to enumerate due requests is an error.
func (s *Service) PurgeDue(ctx context.Context) (PurgeResult, error) {
	db, err := s.Store.OpenDB(ctx)
	if err != nil {
		return PurgeResult{}, err
	}
	defer db.Close()

	now := s.now()
	rows, err := db.QueryContext(ctx, `
		SELECT user_id FROM deletion_requests WHERE due_at_unixms <= ?
	`, now.UnixMilli())
	if err != nil {
		return PurgeResult{}, fmt.Errorf("account: enumerate due requests: %w", err)
	}
	var due []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return PurgeResult{}, fmt.Errorf("account: enumerate due requests: %w", err)
		}
		due = append(due, id)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return PurgeResult{}, fmt.Errorf("account: enumerate due requests: %w", err)
	}

	res := PurgeResult{Processed: len(due)}
	for _, userID := range due {
		if err := s.purgeOne(ctx, db, userID, now); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", HashUserID(userID)[:12], err))
			_, _ = db.ExecContext(ctx, `
				INSERT INTO audit_log(user_hash, action, detail, created_at_unixms)
				VALUES(?, 'deletion-failed', ?, ?)
			`, HashUserID(userID), err.Error(), now.UnixMilli())
			continue
		}
		res.Succeeded++
	}
	return res, nil
}

func (s *Service) purgeOne(ctx context.Context, db *sql.DB, userID string, now time.Time) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM deletion_requests WHERE user_id = ?`, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO audit_log(user_hash, action, detail, created_at_unixms)
		VALUES(?, 'deleted', '', ?)
	`, HashUserID(userID), now.UnixMilli()); err != nil {
		return err
	}
	return tx.Commit()
}

// AuditEntry is one audit-log record for a user.
type AuditEntry struct {
	Action string    `json:"action"`
	Detail string    `json:"detail,omitempty"`
	TS     time.Time `json:"ts"`
}

// AuditTrail returns the audit entries for a user, oldest first.
func (s *Service) AuditTrail(ctx context.Context, userID string) ([]AuditEntry, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	db, err := s.Store.OpenDB(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT action, detail, created_at_unixms FROM audit_log
		WHERE user_hash = ? ORDER BY created_at_unixms ASC, id ASC
	`, HashUserID(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var tsMs int64
		if err := rows.Scan(&e.Action, &e.Detail, &tsMs); err != nil {
			return nil, err
		}
		e.TS = time.UnixMilli(tsMs).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []AuditEntry{}
	}
	return out, nil
}
