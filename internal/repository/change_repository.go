package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beatworks/workshop-dashboard/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const changeColumns = `id, title, description, category, view_url, files_changed, change_details,
	screenshot_urls, screenshot_paths, status, added_by, deleted_at, created_at, updated_at`

const feedbackColumns = `id, change_id, feedback_text, screenshot_url, screenshot_path,
	screenshot_urls, screenshot_paths, created_at`

type changeRepository struct {
	pool *pgxpool.Pool
}

// NewChangeRepository wires a session-change repository backed by pgxpool.
func NewChangeRepository(pool *pgxpool.Pool) ChangeRepository {
	return &changeRepository{pool: pool}
}

func (r *changeRepository) Create(ctx context.Context, change domain.SessionChange) (domain.SessionChange, error) {
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO session_changes (id, title, description, category, view_url, files_changed,
			change_details, screenshot_urls, screenshot_paths, status, added_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+changeColumns,
		change.ID,
		change.Title,
		textParam(change.Description),
		textParam(change.Category),
		textParam(change.ViewURL),
		textArrayParam(change.FilesChanged),
		textArrayParam(change.ChangeDetails),
		textArrayParam(change.ScreenshotURLs),
		textArrayParam(change.ScreenshotPaths),
		string(change.Status),
		change.AddedBy,
	)
	created, err := scanChange(row)
	if err != nil {
		return domain.SessionChange{}, fmt.Errorf("insert session change: %w", err)
	}
	return created, nil
}

func (r *changeRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.SessionChange, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+changeColumns+` FROM session_changes WHERE id = $1`,
		id,
	)
	change, err := scanChange(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SessionChange{}, domain.ErrNotFound
		}
		return domain.SessionChange{}, fmt.Errorf("get session change: %w", err)
	}
	return change, nil
}

func (r *changeRepository) ListActive(ctx context.Context) ([]domain.SessionChange, error) {
	return r.list(ctx, `SELECT `+changeColumns+` FROM session_changes
		WHERE deleted_at IS NULL ORDER BY created_at ASC`)
}

func (r *changeRepository) ListDeleted(ctx context.Context) ([]domain.SessionChange, error) {
	return r.list(ctx, `SELECT `+changeColumns+` FROM session_changes
		WHERE deleted_at IS NOT NULL ORDER BY created_at ASC`)
}

func (r *changeRepository) ListByStatus(ctx context.Context, status domain.ChangeStatus) ([]domain.SessionChange, error) {
	return r.list(ctx, `SELECT `+changeColumns+` FROM session_changes
		WHERE status = $1 ORDER BY created_at ASC`, string(status))
}

func (r *changeRepository) list(ctx context.Context, query string, args ...any) ([]domain.SessionChange, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list session changes: %w", err)
	}
	defer rows.Close()

	changes := []domain.SessionChange{}
	for rows.Next() {
		change, scanErr := scanChange(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan session change: %w", scanErr)
		}
		changes = append(changes, change)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate session changes: %w", rowsErr)
	}
	return changes, nil
}

func (r *changeRepository) Update(ctx context.Context, change domain.SessionChange) (domain.SessionChange, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE session_changes
		 SET title = $2, description = $3, category = $4, view_url = $5, files_changed = $6,
		     change_details = $7, screenshot_urls = $8, screenshot_paths = $9, status = $10,
		     added_by = $11, updated_at = now()
		 WHERE id = $1
		 RETURNING `+changeColumns,
		change.ID,
		change.Title,
		textParam(change.Description),
		textParam(change.Category),
		textParam(change.ViewURL),
		textArrayParam(change.FilesChanged),
		textArrayParam(change.ChangeDetails),
		textArrayParam(change.ScreenshotURLs),
		textArrayParam(change.ScreenshotPaths),
		string(change.Status),
		change.AddedBy,
	)
	updated, err := scanChange(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SessionChange{}, domain.ErrNotFound
		}
		return domain.SessionChange{}, fmt.Errorf("update session change: %w", err)
	}
	return updated, nil
}

func (r *changeRepository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE session_changes SET deleted_at = $2, updated_at = now() WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete session change: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *changeRepository) Restore(ctx context.Context, id uuid.UUID) (domain.SessionChange, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE session_changes SET deleted_at = NULL, updated_at = now()
		 WHERE id = $1
		 RETURNING `+changeColumns,
		id,
	)
	restored, err := scanChange(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SessionChange{}, domain.ErrNotFound
		}
		return domain.SessionChange{}, fmt.Errorf("restore session change: %w", err)
	}
	return restored, nil
}

// DeletePermanently removes the change and its feedback rows in one
// transaction. No foreign-key cascade is relied upon; the cascade is explicit.
func (r *changeRepository) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin permanent delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM session_change_feedback WHERE change_id = $1`, id); err != nil {
		return fmt.Errorf("delete feedback rows: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM session_changes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session change: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit permanent delete: %w", err)
	}
	return nil
}

func (r *changeRepository) CreateFeedback(ctx context.Context, feedback domain.SessionChangeFeedback) (domain.SessionChangeFeedback, error) {
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO session_change_feedback (id, change_id, feedback_text, screenshot_url,
			screenshot_path, screenshot_urls, screenshot_paths)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+feedbackColumns,
		feedback.ID,
		feedback.ChangeID,
		textParam(feedback.FeedbackText),
		textParam(feedback.ScreenshotURL),
		textParam(feedback.ScreenshotPath),
		textArrayParam(feedback.ScreenshotURLs),
		textArrayParam(feedback.ScreenshotPaths),
	)
	created, err := scanFeedback(row)
	if err != nil {
		return domain.SessionChangeFeedback{}, fmt.Errorf("insert feedback: %w", err)
	}
	return created, nil
}

func (r *changeRepository) GetFeedback(ctx context.Context, id uuid.UUID) (domain.SessionChangeFeedback, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+feedbackColumns+` FROM session_change_feedback WHERE id = $1`,
		id,
	)
	feedback, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SessionChangeFeedback{}, domain.ErrNotFound
		}
		return domain.SessionChangeFeedback{}, fmt.Errorf("get feedback: %w", err)
	}
	return feedback, nil
}

func (r *changeRepository) ListFeedback(ctx context.Context, changeID uuid.UUID) ([]domain.SessionChangeFeedback, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+feedbackColumns+` FROM session_change_feedback
		 WHERE change_id = $1 ORDER BY created_at DESC`,
		changeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	items := []domain.SessionChangeFeedback{}
	for rows.Next() {
		feedback, scanErr := scanFeedback(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan feedback: %w", scanErr)
		}
		items = append(items, feedback)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate feedback: %w", rowsErr)
	}
	return items, nil
}

func (r *changeRepository) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM session_change_feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanChange(row pgx.Row) (domain.SessionChange, error) {
	var (
		change      domain.SessionChange
		description pgtype.Text
		category    pgtype.Text
		viewURL     pgtype.Text
		status      string
		deletedAt   pgtype.Timestamptz
	)
	if err := row.Scan(
		&change.ID,
		&change.Title,
		&description,
		&category,
		&viewURL,
		&change.FilesChanged,
		&change.ChangeDetails,
		&change.ScreenshotURLs,
		&change.ScreenshotPaths,
		&status,
		&change.AddedBy,
		&deletedAt,
		&change.CreatedAt,
		&change.UpdatedAt,
	); err != nil {
		return domain.SessionChange{}, err
	}

	change.Description = textPtr(description)
	change.Category = textPtr(category)
	change.ViewURL = textPtr(viewURL)
	change.Status = domain.ChangeStatus(status)
	if deletedAt.Valid {
		value := deletedAt.Time
		change.DeletedAt = &value
	}
	return change, nil
}

func scanFeedback(row pgx.Row) (domain.SessionChangeFeedback, error) {
	var (
		feedback       domain.SessionChangeFeedback
		feedbackText   pgtype.Text
		screenshotURL  pgtype.Text
		screenshotPath pgtype.Text
	)
	if err := row.Scan(
		&feedback.ID,
		&feedback.ChangeID,
		&feedbackText,
		&screenshotURL,
		&screenshotPath,
		&feedback.ScreenshotURLs,
		&feedback.ScreenshotPaths,
		&feedback.CreatedAt,
	); err != nil {
		return domain.SessionChangeFeedback{}, err
	}

	feedback.FeedbackText = textPtr(feedbackText)
	feedback.ScreenshotURL = textPtr(screenshotURL)
	feedback.ScreenshotPath = textPtr(screenshotPath)
	return feedback, nil
}

func textParam(value *string) pgtype.Text {
	if value == nil || *value == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *value, Valid: true}
}

func textPtr(value pgtype.Text) *string {
	if !value.Valid {
		return nil
	}
	result := value.String
	return &result
}
