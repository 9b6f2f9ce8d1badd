package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/visapath/content-service/internal/model"
)

// CategoryRepo manages persistence for article categories.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

const categoryCols = `id, slug, title, description, sort_order, is_active`

// Listing order everywhere: sort_order ascending with nulls last, then title.
// MySQL sorts NULLs first on ASC, hence the IS NULL key in front.
const categoryOrder = ` ORDER BY sort_order IS NULL ASC, sort_order ASC, title ASC`

func scanCategory(row interface{ Scan(...any) error }) (*model.ArticleCategory, error) {
	var c model.ArticleCategory
	var desc sql.NullString
	var sort sql.NullInt64
	if err := row.Scan(&c.ID, &c.Slug, &c.Title, &desc, &sort, &c.IsActive); err != nil {
		return nil, err
	}
	if desc.Valid {
		c.Description = &desc.String
	}
	if sort.Valid {
		n := int(sort.Int64)
		c.SortOrder = &n
	}
	return &c, nil
}

// SlugTaken reports whether a category slug is already in use by a row other
// than excludeID.  Used as the proactive half of conflict detection; the
// unique index is the reactive half.
func (r *CategoryRepo) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	const q = `SELECT 1 FROM article_categories WHERE slug = ? AND id <> ? LIMIT 1`
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

func (r *CategoryRepo) Create(ctx context.Context, c *model.ArticleCategory) error {
	const q = `INSERT INTO article_categories (id, slug, title, description, sort_order, is_active)
               VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.Slug, c.Title, c.Description, c.SortOrder, c.IsActive)
	if isDuplicate(err) {
		return ErrSlugExists
	}
	return err
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*model.ArticleCategory, error) {
	const q = `SELECT ` + categoryCols + ` FROM article_categories WHERE id = ?`
	c, err := scanCategory(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	return c, err
}

// ListActive returns active categories in display order, for the public
// category bar and admin selection lists.
func (r *CategoryRepo) ListActive(ctx context.Context) ([]*model.ArticleCategory, error) {
	const q = `SELECT ` + categoryCols + ` FROM article_categories WHERE is_active = TRUE` + categoryOrder
	return r.list(ctx, q)
}

// ListAll returns every category for the admin table view.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]*model.ArticleCategory, error) {
	const q = `SELECT ` + categoryCols + ` FROM article_categories` + categoryOrder
	return r.list(ctx, q)
}

func (r *CategoryRepo) list(ctx context.Context, q string) ([]*model.ArticleCategory, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*model.ArticleCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *CategoryRepo) Update(ctx context.Context, c *model.ArticleCategory) error {
	const q = `UPDATE article_categories SET slug = ?, title = ?, description = ?, sort_order = ?, is_active = ?
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Slug, c.Title, c.Description, c.SortOrder, c.IsActive, c.ID)
	if isDuplicate(err) {
		return ErrSlugExists
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM article_categories WHERE id = ? LIMIT 1`, c.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCategoryNotFound
			}
			return err
		}
	}
	return nil
}
