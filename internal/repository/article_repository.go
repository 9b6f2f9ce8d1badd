package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/visapath/content-service/internal/model"
)

// ArticleRepo manages persistence for articles.  The visa_types column is a
// JSON array (or NULL for "no restriction"); timestamps are stored in UTC
// and scanned via parseTime=true on the DSN.
type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

const articleCols = `id, slug, title, summary, content, cover_image_url,
    destination_country_code, origin_country_code, visa_types, is_global,
    access_tier, published, reading_time_minutes, created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }) (*model.Article, error) {
	var a model.Article
	var summary, cover, dest, origin, visas sql.NullString
	var tier string
	var reading sql.NullInt64
	err := row.Scan(&a.ID, &a.Slug, &a.Title, &summary, &a.Content, &cover,
		&dest, &origin, &visas, &a.IsGlobal, &tier, &a.Published, &reading,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if summary.Valid {
		a.Summary = &summary.String
	}
	if cover.Valid {
		a.CoverImageURL = &cover.String
	}
	if dest.Valid {
		a.DestinationCountryCode = &dest.String
	}
	if origin.Valid {
		a.OriginCountryCode = &origin.String
	}
	if visas.Valid && visas.String != "" {
		if err := json.Unmarshal([]byte(visas.String), &a.VisaTypes); err != nil {
			return nil, err
		}
		if len(a.VisaTypes) == 0 {
			a.VisaTypes = nil // empty array and NULL mean the same thing
		}
	}
	a.AccessTier = model.AccessTier(tier)
	if reading.Valid {
		n := int(reading.Int64)
		a.ReadingTimeMinutes = &n
	}
	return &a, nil
}

// visaTypesValue renders the visa list for storage: NULL when unrestricted.
func visaTypesValue(a *model.Article) (any, error) {
	if len(a.VisaTypes) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(a.VisaTypes)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// SlugTaken reports whether an article slug is already used by a row other
// than excludeID.
func (r *ArticleRepo) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	const q = `SELECT 1 FROM articles WHERE slug = ? AND id <> ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, slug, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ArticleRepo) Create(ctx context.Context, a *model.Article) error {
	visas, err := visaTypesValue(a)
	if err != nil {
		return err
	}
	const q = `INSERT INTO articles (` + articleCols + `)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, q, a.ID, a.Slug, a.Title, a.Summary, a.Content,
		a.CoverImageURL, a.DestinationCountryCode, a.OriginCountryCode, visas,
		a.IsGlobal, string(a.AccessTier), a.Published, a.ReadingTimeMinutes,
		a.CreatedAt, a.UpdatedAt)
	if isDuplicate(err) {
		return ErrSlugExists
	}
	return err
}

// Update rewrites the full mutable field set; last write wins, no
// concurrency token.
func (r *ArticleRepo) Update(ctx context.Context, a *model.Article) error {
	visas, err := visaTypesValue(a)
	if err != nil {
		return err
	}
	const q = `UPDATE articles SET slug = ?, title = ?, summary = ?, content = ?,
               cover_image_url = ?, destination_country_code = ?, origin_country_code = ?,
               visa_types = ?, is_global = ?, access_tier = ?, published = ?,
               reading_time_minutes = ?, updated_at = ?
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Slug, a.Title, a.Summary, a.Content,
		a.CoverImageURL, a.DestinationCountryCode, a.OriginCountryCode, visas,
		a.IsGlobal, string(a.AccessTier), a.Published, a.ReadingTimeMinutes,
		a.UpdatedAt, a.ID)
	if isDuplicate(err) {
		return ErrSlugExists
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM articles WHERE id = ? LIMIT 1`, a.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArticleNotFound
			}
			return err
		}
	}
	return nil
}

func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*model.Article, error) {
	const q = `SELECT ` + articleCols + ` FROM articles WHERE id = ?`
	a, err := scanArticle(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	return a, err
}

// GetPublishedBySlug backs the public detail page: only published rows.
func (r *ArticleRepo) GetPublishedBySlug(ctx context.Context, slug string) (*model.Article, error) {
	const q = `SELECT ` + articleCols + ` FROM articles WHERE slug = ? AND published = TRUE`
	a, err := scanArticle(r.db.QueryRowContext(ctx, q, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	return a, err
}

// ListAll returns every article newest-updated first, for the admin list.
// Further filtering happens in memory through the applicability resolver so
// both surfaces share one predicate.
func (r *ArticleRepo) ListAll(ctx context.Context) ([]*model.Article, error) {
	const q = `SELECT ` + articleCols + ` FROM articles ORDER BY updated_at DESC`
	return r.list(ctx, q)
}

// ListPublished returns published articles newest-updated first, the base
// set for the public feed.
func (r *ArticleRepo) ListPublished(ctx context.Context) ([]*model.Article, error) {
	const q = `SELECT ` + articleCols + ` FROM articles WHERE published = TRUE ORDER BY updated_at DESC`
	return r.list(ctx, q)
}

func (r *ArticleRepo) list(ctx context.Context, q string) ([]*model.Article, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// Delete removes a single article row.  The category map cascade is the
// caller's responsibility and must happen before this call.
func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrArticleNotFound
	}
	return nil
}
