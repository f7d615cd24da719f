package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/beatworks/workshop-dashboard/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type siteRepository struct {
	pool *pgxpool.Pool
}

// NewSiteRepository wires a repository for page content and the about-page
// collections (team members, testimonials, FAQ).
func NewSiteRepository(pool *pgxpool.Pool) SiteRepository {
	return &siteRepository{pool: pool}
}

func (r *siteRepository) UpsertContent(ctx context.Context, content domain.PageContent) (domain.PageContent, error) {
	if content.ID == uuid.Nil {
		content.ID = uuid.New()
	}
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO page_content (id, page, section_key, value)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (page, section_key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		 RETURNING id, page, section_key, value, updated_at`,
		content.ID, content.Page, content.SectionKey, content.Value,
	)
	var saved domain.PageContent
	if err := row.Scan(&saved.ID, &saved.Page, &saved.SectionKey, &saved.Value, &saved.UpdatedAt); err != nil {
		return domain.PageContent{}, fmt.Errorf("upsert page content: %w", err)
	}
	return saved, nil
}

func (r *siteRepository) ListContent(ctx context.Context, page string) ([]domain.PageContent, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, page, section_key, value, updated_at FROM page_content
		 WHERE page = $1 ORDER BY section_key ASC`,
		page,
	)
	if err != nil {
		return nil, fmt.Errorf("list page content: %w", err)
	}
	defer rows.Close()

	entries := []domain.PageContent{}
	for rows.Next() {
		var entry domain.PageContent
		if scanErr := rows.Scan(&entry.ID, &entry.Page, &entry.SectionKey, &entry.Value, &entry.UpdatedAt); scanErr != nil {
			return nil, fmt.Errorf("scan page content: %w", scanErr)
		}
		entries = append(entries, entry)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate page content: %w", rowsErr)
	}
	return entries, nil
}

func (r *siteRepository) DeleteContent(ctx context.Context, page, sectionKey string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM page_content WHERE page = $1 AND section_key = $2`, page, sectionKey)
	if err != nil {
		return fmt.Errorf("delete page content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *siteRepository) CreateTeamMember(ctx context.Context, member domain.TeamMember) (domain.TeamMember, error) {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO team_members (id, name, role, bio, photo_url, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, name, role, bio, photo_url, sort_order, created_at`,
		member.ID, member.Name, textParam(member.Role), textParam(member.Bio),
		textParam(member.PhotoURL), member.SortOrder,
	)
	created, err := scanTeamMember(row)
	if err != nil {
		return domain.TeamMember{}, fmt.Errorf("insert team member: %w", err)
	}
	return created, nil
}

func (r *siteRepository) ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, name, role, bio, photo_url, sort_order, created_at
		 FROM team_members ORDER BY sort_order ASC, created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	members := []domain.TeamMember{}
	for rows.Next() {
		member, scanErr := scanTeamMember(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan team member: %w", scanErr)
		}
		members = append(members, member)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate team members: %w", rowsErr)
	}
	return members, nil
}

func (r *siteRepository) UpdateTeamMember(ctx context.Context, member domain.TeamMember) (domain.TeamMember, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE team_members
		 SET name = $2, role = $3, bio = $4, photo_url = $5, sort_order = $6
		 WHERE id = $1
		 RETURNING id, name, role, bio, photo_url, sort_order, created_at`,
		member.ID, member.Name, textParam(member.Role), textParam(member.Bio),
		textParam(member.PhotoURL), member.SortOrder,
	)
	updated, err := scanTeamMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TeamMember{}, domain.ErrNotFound
		}
		return domain.TeamMember{}, fmt.Errorf("update team member: %w", err)
	}
	return updated, nil
}

func (r *siteRepository) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	return r.deleteRow(ctx, `DELETE FROM team_members WHERE id = $1`, id, "team member")
}

func (r *siteRepository) CreateTestimonial(ctx context.Context, t domain.Testimonial) (domain.Testimonial, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO testimonials (id, author, quote, context, sort_order)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, author, quote, context, sort_order, created_at`,
		t.ID, t.Author, t.Quote, textParam(t.Context), t.SortOrder,
	)
	var (
		created  domain.Testimonial
		tContext pgtype.Text
	)
	if err := row.Scan(&created.ID, &created.Author, &created.Quote, &tContext, &created.SortOrder, &created.CreatedAt); err != nil {
		return domain.Testimonial{}, fmt.Errorf("insert testimonial: %w", err)
	}
	created.Context = textPtr(tContext)
	return created, nil
}

func (r *siteRepository) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, author, quote, context, sort_order, created_at
		 FROM testimonials ORDER BY sort_order ASC, created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	items := []domain.Testimonial{}
	for rows.Next() {
		var (
			t        domain.Testimonial
			tContext pgtype.Text
		)
		if scanErr := rows.Scan(&t.ID, &t.Author, &t.Quote, &tContext, &t.SortOrder, &t.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("scan testimonial: %w", scanErr)
		}
		t.Context = textPtr(tContext)
		items = append(items, t)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate testimonials: %w", rowsErr)
	}
	return items, nil
}

func (r *siteRepository) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	return r.deleteRow(ctx, `DELETE FROM testimonials WHERE id = $1`, id, "testimonial")
}

func (r *siteRepository) CreateFAQEntry(ctx context.Context, entry domain.FAQEntry) (domain.FAQEntry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO faq_entries (id, question, answer, sort_order)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, question, answer, sort_order, created_at`,
		entry.ID, entry.Question, entry.Answer, entry.SortOrder,
	)
	var created domain.FAQEntry
	if err := row.Scan(&created.ID, &created.Question, &created.Answer, &created.SortOrder, &created.CreatedAt); err != nil {
		return domain.FAQEntry{}, fmt.Errorf("insert faq entry: %w", err)
	}
	return created, nil
}

func (r *siteRepository) ListFAQEntries(ctx context.Context) ([]domain.FAQEntry, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, question, answer, sort_order, created_at
		 FROM faq_entries ORDER BY sort_order ASC, created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list faq entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.FAQEntry{}
	for rows.Next() {
		var entry domain.FAQEntry
		if scanErr := rows.Scan(&entry.ID, &entry.Question, &entry.Answer, &entry.SortOrder, &entry.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("scan faq entry: %w", scanErr)
		}
		entries = append(entries, entry)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate faq entries: %w", rowsErr)
	}
	return entries, nil
}

func (r *siteRepository) UpdateFAQEntry(ctx context.Context, entry domain.FAQEntry) (domain.FAQEntry, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE faq_entries SET question = $2, answer = $3, sort_order = $4
		 WHERE id = $1
		 RETURNING id, question, answer, sort_order, created_at`,
		entry.ID, entry.Question, entry.Answer, entry.SortOrder,
	)
	var updated domain.FAQEntry
	if err := row.Scan(&updated.ID, &updated.Question, &updated.Answer, &updated.SortOrder, &updated.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FAQEntry{}, domain.ErrNotFound
		}
		return domain.FAQEntry{}, fmt.Errorf("update faq entry: %w", err)
	}
	return updated, nil
}

func (r *siteRepository) DeleteFAQEntry(ctx context.Context, id uuid.UUID) error {
	return r.deleteRow(ctx, `DELETE FROM faq_entries WHERE id = $1`, id, "faq entry")
}

func (r *siteRepository) deleteRow(ctx context.Context, query string, id uuid.UUID, kind string) error {
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTeamMember(row pgx.Row) (domain.TeamMember, error) {
	var (
		member   domain.TeamMember
		role     pgtype.Text
		bio      pgtype.Text
		photoURL pgtype.Text
	)
	if err := row.Scan(&member.ID, &member.Name, &role, &bio, &photoURL, &member.SortOrder, &member.CreatedAt); err != nil {
		return domain.TeamMember{}, err
	}
	member.Role = textPtr(role)
	member.Bio = textPtr(bio)
	member.PhotoURL = textPtr(photoURL)
	return member, nil
}
