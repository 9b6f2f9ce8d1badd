package repository

import (
	"context"
	"database/sql"
)

// ArticleCategoryMapRepo manages the article↔category join rows.  Rows carry
// no payload; the (article_id, category_id) pair is unique.  The full
// replace operation lives in the service layer since it spans two calls.
type ArticleCategoryMapRepo struct {
	db *sql.DB
}

func NewArticleCategoryMapRepo(db *sql.DB) *ArticleCategoryMapRepo {
	return &ArticleCategoryMapRepo{db: db}
}

// DeleteByArticle removes every mapping for one article.  Deleting zero rows
// is not an error; a fresh article simply has none yet.
func (r *ArticleCategoryMapRepo) DeleteByArticle(ctx context.Context, articleID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM article_category_map WHERE article_id = ?`, articleID)
	return err
}

// Insert adds one mapping row.  INSERT IGNORE keeps the call idempotent for
// a pair that already exists.
func (r *ArticleCategoryMapRepo) Insert(ctx context.Context, articleID, categoryID string) error {
	const q = `INSERT IGNORE INTO article_category_map (article_id, category_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, articleID, categoryID)
	return err
}

// ActiveCategoryIDs resolves one article's category set restricted to
// categories that are currently active.  Stored references to inactive
// categories survive in the table but do not appear here.
func (r *ArticleCategoryMapRepo) ActiveCategoryIDs(ctx context.Context, articleID string) ([]string, error) {
	const q = `SELECT m.category_id
               FROM article_category_map m
               JOIN article_categories c ON c.id = m.category_id
               WHERE m.article_id = ? AND c.is_active = TRUE`
	rows, err := r.db.QueryContext(ctx, q, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ActiveMap returns article_id -> active category ids across the whole
// table, feeding the list views' category filter in one query instead of
// one per article.
func (r *ArticleCategoryMapRepo) ActiveMap(ctx context.Context) (map[string][]string, error) {
	const q = `SELECT m.article_id, m.category_id
               FROM article_category_map m
               JOIN article_categories c ON c.id = m.category_id
               WHERE c.is_active = TRUE`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[string][]string)
	for rows.Next() {
		var articleID, categoryID string
		if err := rows.Scan(&articleID, &categoryID); err != nil {
			return nil, err
		}
		result[articleID] = append(result[articleID], categoryID)
	}
	return result, rows.Err()
}
