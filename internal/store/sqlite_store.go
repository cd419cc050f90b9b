package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/domain"
)

// SQLiteStore implements PlanStore over a local SQLite database.
type SQLiteStore struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLiteStore creates a PlanStore backed by the given database.
func NewSQLiteStore(database *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		db:  database,
		uow: db.NewSQLiteUnitOfWork(database),
	}
}

var _ PlanStore = (*SQLiteStore)(nil)

func (s *SQLiteStore) UserID(ctx context.Context) (string, error) {
	var userID string
	err := s.db.QueryRowContext(ctx, `SELECT user_id FROM user_identity WHERE id = 1`).Scan(&userID)
	if err == nil {
		return userID, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("loading user identity: %w", err)
	}

	userID = uuid.New().String()[:8]
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_identity (id, user_id, created_at) VALUES (1, ?, ?)`,
		userID, nowUTC())
	if err != nil {
		return "", fmt.Errorf("creating user identity: %w", err)
	}
	return userID, nil
}

func (s *SQLiteStore) SaveProfile(ctx context.Context, profile domain.Profile) (string, error) {
	userID, err := s.UserID(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("marshaling profile: %w", err)
	}

	now := nowUTC()
	_, err = s.db.ExecContext(ctx, `INSERT INTO profiles (user_id, profile_json, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET profile_json = excluded.profile_json, updated_at = excluded.updated_at`,
		userID, string(data), now, now)
	if err != nil {
		return "", fmt.Errorf("saving profile: %w", err)
	}
	return userID, nil
}

func (s *SQLiteStore) LoadProfile(ctx context.Context) (domain.Profile, error) {
	userID, err := s.UserID(ctx)
	if err != nil {
		return nil, err
	}

	var data string
	err = s.db.QueryRowContext(ctx, `SELECT profile_json FROM profiles WHERE user_id = ?`, userID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	var profile domain.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return profile, nil
}

func (s *SQLiteStore) SaveMacroPlan(ctx context.Context, text string) (string, error) {
	userID, err := s.UserID(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	planID := domain.NewMacroPlanID(now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE macro_plans SET status = ? WHERE user_id = ?`,
			domain.PlanInactive, userID); err != nil {
			return fmt.Errorf("deactivating prior macro plans: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO macro_plans (plan_id, user_id, plan_text, created_at, status) VALUES (?, ?, ?, ?, ?)`,
			planID, userID, text, now.Format(time.RFC3339), domain.PlanActive); err != nil {
			return fmt.Errorf("inserting macro plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return planID, nil
}

func (s *SQLiteStore) GetActiveMacroPlan(ctx context.Context) (*domain.MacroPlan, error) {
	userID, err := s.UserID(ctx)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT plan_id, plan_text, created_at, status
		FROM macro_plans WHERE user_id = ? AND status = ?
		ORDER BY created_at DESC LIMIT 1`, userID, domain.PlanActive)

	var p domain.MacroPlan
	var createdAt string
	err = row.Scan(&p.PlanID, &p.Text, &createdAt, &p.Status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("active macro plan: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading active macro plan: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

func (s *SQLiteStore) SaveWeeklySchedule(ctx context.Context, sched *domain.Schedule) (string, error) {
	userID, err := s.UserID(ctx)
	if err != nil {
		return "", err
	}

	if sched.CreatedAt.IsZero() {
		sched.CreatedAt = time.Now().UTC()
	}
	if sched.ScheduleID == "" {
		// Schedule ids have second resolution; bump until unused so rapid
		// saves never collapse into one row.
		sched.ScheduleID = domain.NewScheduleID(sched.CreatedAt)
		for {
			exists, err := s.scheduleExists(ctx, userID, sched.ScheduleID)
			if err != nil {
				return "", err
			}
			if !exists {
				break
			}
			sched.CreatedAt = sched.CreatedAt.Add(time.Second)
			sched.ScheduleID = domain.NewScheduleID(sched.CreatedAt)
		}
	}
	if sched.Status == "" {
		sched.Status = domain.ScheduleDraft
	}
	if sched.MacroPlanID == "" {
		if plan, err := s.GetActiveMacroPlan(ctx); err == nil {
			sched.MacroPlanID = plan.PlanID
		}
	}

	microJSON, err := json.Marshal(sched.MicroPlan)
	if err != nil {
		return "", fmt.Errorf("marshaling micro plan: %w", err)
	}
	availJSON, err := json.Marshal(sched.Availability)
	if err != nil {
		return "", fmt.Errorf("marshaling availability: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO schedules
			(schedule_id, user_id, macro_plan_id, micro_plan_json, availability_json, optimization_notes, created_at, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(schedule_id) DO UPDATE SET
				micro_plan_json = excluded.micro_plan_json,
				availability_json = excluded.availability_json,
				optimization_notes = excluded.optimization_notes,
				status = excluded.status`,
			sched.ScheduleID, userID, nullIfEmpty(sched.MacroPlanID),
			string(microJSON), string(availJSON), sched.OptimizationNotes,
			sched.CreatedAt.Format(time.RFC3339), sched.Status); err != nil {
			return fmt.Errorf("inserting schedule: %w", err)
		}

		// Retention: keep only the newest ScheduleRetention schedules.
		if _, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE user_id = ?
			AND schedule_id NOT IN (
				SELECT schedule_id FROM schedules WHERE user_id = ?
				ORDER BY created_at DESC, schedule_id DESC LIMIT ?
			)`, userID, userID, ScheduleRetention); err != nil {
			return fmt.Errorf("pruning old schedules: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return sched.ScheduleID, nil
}

func (s *SQLiteStore) scheduleExists(ctx context.Context, userID, scheduleID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schedules WHERE user_id = ? AND schedule_id = ?`,
		userID, scheduleID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking schedule id: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) LoadAllSchedules(ctx context.Context) ([]*domain.Schedule, error) {
	return s.querySchedules(ctx, 0)
}

func (s *SQLiteStore) GetRecentSchedules(ctx context.Context, limit int) ([]*domain.Schedule, error) {
	if limit <= 0 {
		limit = ScheduleRetention
	}
	return s.querySchedules(ctx, limit)
}

func (s *SQLiteStore) querySchedules(ctx context.Context, limit int) ([]*domain.Schedule, error) {
	userID, err := s.UserID(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT schedule_id, macro_plan_id, micro_plan_json, availability_json,
		optimization_notes, created_at, status
		FROM schedules WHERE user_id = ? ORDER BY created_at DESC, schedule_id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	defer rows.Close()

	var out []*domain.Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sched)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetActiveSchedule(ctx context.Context) (*domain.Schedule, error) {
	schedules, err := s.LoadAllSchedules(ctx)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, fmt.Errorf("active schedule: %w", ErrNotFound)
	}

	// Prefer the explicitly active schedule; the list is newest-first, so
	// if a crash ever left two marked active the most recent wins.
	for _, sched := range schedules {
		if sched.Status == domain.ScheduleActive {
			return sched, nil
		}
	}
	// No schedule marked active: fall back to the most recent.
	return schedules[0], nil
}

func (s *SQLiteStore) SetScheduleActive(ctx context.Context, scheduleID string) error {
	userID, err := s.UserID(ctx)
	if err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE schedules SET status = ? WHERE user_id = ?`,
			domain.ScheduleInactive, userID); err != nil {
			return fmt.Errorf("deactivating schedules: %w", err)
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE schedules SET status = ? WHERE user_id = ? AND schedule_id = ?`,
			domain.ScheduleActive, userID, scheduleID)
		if err != nil {
			return fmt.Errorf("activating schedule %s: %w", scheduleID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking activation: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("schedule %s: %w", scheduleID, ErrNotFound)
		}
		return nil
	})
}

func (s *SQLiteStore) SaveFeedback(ctx context.Context, scheduleID string, rec *domain.FeedbackRecord) error {
	userID, err := s.UserID(ctx)
	if err != nil {
		return err
	}

	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	rec.ScheduleID = scheduleID

	_, err = s.db.ExecContext(ctx, `INSERT INTO feedback
		(id, user_id, schedule_id, feedback_text, analysis_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), userID, scheduleID,
		rec.FeedbackText, rec.AnalysisText, rec.Timestamp.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving feedback: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListFeedback(ctx context.Context, scheduleID string) ([]*domain.FeedbackRecord, error) {
	userID, err := s.UserID(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT schedule_id, feedback_text, analysis_text, created_at
		FROM feedback WHERE user_id = ?`
	args := []any{userID}
	if scheduleID != "" {
		query += ` AND schedule_id = ?`
		args = append(args, scheduleID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	defer rows.Close()

	var out []*domain.FeedbackRecord
	for rows.Next() {
		var rec domain.FeedbackRecord
		var createdAt string
		if err := rows.Scan(&rec.ScheduleID, &rec.FeedbackText, &rec.AnalysisText, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		rec.Timestamp = parseTime(createdAt)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetUserStats(ctx context.Context) (*domain.UserStats, error) {
	userID, err := s.UserID(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.UserStats{UserID: userID}

	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM profiles WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return nil, fmt.Errorf("counting profiles: %w", err)
	}
	stats.HasProfile = n > 0

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schedules WHERE user_id = ?`, userID).Scan(&stats.TotalSchedules); err != nil {
		return nil, fmt.Errorf("counting schedules: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedback WHERE user_id = ?`, userID).Scan(&stats.TotalFeedback); err != nil {
		return nil, fmt.Errorf("counting feedback: %w", err)
	}
	return stats, nil
}

func (s *SQLiteStore) SaveWorkHours(ctx context.Context, wh calendar.WorkHours) error {
	userID, err := s.UserID(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(wh)
	if err != nil {
		return fmt.Errorf("marshaling work hours: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO work_hours (user_id, work_hours_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET work_hours_json = excluded.work_hours_json, updated_at = excluded.updated_at`,
		userID, string(data), nowUTC())
	if err != nil {
		return fmt.Errorf("saving work hours: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadWorkHours(ctx context.Context) (calendar.WorkHours, error) {
	userID, err := s.UserID(ctx)
	if err != nil {
		return calendar.WorkHours{}, err
	}

	var data string
	err = s.db.QueryRowContext(ctx, `SELECT work_hours_json FROM work_hours WHERE user_id = ?`, userID).Scan(&data)
	if err == sql.ErrNoRows {
		return calendar.WorkHours{}, fmt.Errorf("work hours: %w", ErrNotFound)
	}
	if err != nil {
		return calendar.WorkHours{}, fmt.Errorf("loading work hours: %w", err)
	}

	var wh calendar.WorkHours
	if err := json.Unmarshal([]byte(data), &wh); err != nil {
		return calendar.WorkHours{}, fmt.Errorf("decoding work hours: %w", err)
	}
	return wh, nil
}

// scanner matches the Scan method shared by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row scanner) (*domain.Schedule, error) {
	var sched domain.Schedule
	var macroPlanID sql.NullString
	var microJSON, availJSON sql.NullString
	var createdAt string

	if err := row.Scan(&sched.ScheduleID, &macroPlanID, &microJSON, &availJSON,
		&sched.OptimizationNotes, &createdAt, &sched.Status); err != nil {
		return nil, fmt.Errorf("scanning schedule: %w", err)
	}

	sched.MacroPlanID = macroPlanID.String
	sched.CreatedAt = parseTime(createdAt)

	if microJSON.Valid && microJSON.String != "" {
		if err := json.Unmarshal([]byte(microJSON.String), &sched.MicroPlan); err != nil {
			return nil, fmt.Errorf("decoding micro plan for %s: %w", sched.ScheduleID, err)
		}
	}
	if availJSON.Valid && availJSON.String != "" && availJSON.String != "null" {
		if err := json.Unmarshal([]byte(availJSON.String), &sched.Availability); err != nil {
			return nil, fmt.Errorf("decoding availability for %s: %w", sched.ScheduleID, err)
		}
	}
	return &sched, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
