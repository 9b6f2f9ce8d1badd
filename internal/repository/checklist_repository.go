package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/visapath/content-service/internal/model"
)

// ChecklistRepo manages persistence for checklists.  Sort order is scoped
// per visa type; assignment of new sort values is the ordering service's
// job, the repo only stores and counts.
type ChecklistRepo struct {
	db *sql.DB
}

func NewChecklistRepo(db *sql.DB) *ChecklistRepo {
	return &ChecklistRepo{db: db}
}

const checklistCols = `id, country_code, visa_type, title, subscription_tier, sort_order`

func scanChecklist(row interface{ Scan(...any) error }) (*model.Checklist, error) {
	var cl model.Checklist
	var tier string
	if err := row.Scan(&cl.ID, &cl.CountryCode, &cl.VisaType, &cl.Title, &tier, &cl.SortOrder); err != nil {
		return nil, err
	}
	cl.SubscriptionTier = model.SubscriptionTier(tier)
	return &cl, nil
}

func (r *ChecklistRepo) Create(ctx context.Context, cl *model.Checklist) error {
	const q = `INSERT INTO checklists (id, country_code, visa_type, title, subscription_tier, sort_order)
               VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, cl.ID, cl.CountryCode, cl.VisaType, cl.Title,
		string(cl.SubscriptionTier), cl.SortOrder)
	return err
}

func (r *ChecklistRepo) GetByID(ctx context.Context, id string) (*model.Checklist, error) {
	const q = `SELECT ` + checklistCols + ` FROM checklists WHERE id = ?`
	cl, err := scanChecklist(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChecklistNotFound
	}
	return cl, err
}

// ListAll returns every checklist ordered by visa type then sort order, the
// base set for both the admin table and the public browse (which filter
// further in memory).
func (r *ChecklistRepo) ListAll(ctx context.Context) ([]*model.Checklist, error) {
	const q = `SELECT ` + checklistCols + ` FROM checklists ORDER BY visa_type ASC, sort_order ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*model.Checklist
	for rows.Next() {
		cl, err := scanChecklist(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, cl)
	}
	return result, rows.Err()
}

// CountByVisaType counts checklists for one visa type, backing the
// sort_order = count+1 assignment on create.
func (r *ChecklistRepo) CountByVisaType(ctx context.Context, visaType string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM checklists WHERE visa_type = ?`, visaType).Scan(&n)
	return n, err
}

// Update rewrites the mutable fields; sort_order moves only through the
// ordering service.
func (r *ChecklistRepo) Update(ctx context.Context, cl *model.Checklist) error {
	const q = `UPDATE checklists SET country_code = ?, visa_type = ?, title = ?, subscription_tier = ?
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, cl.CountryCode, cl.VisaType, cl.Title,
		string(cl.SubscriptionTier), cl.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM checklists WHERE id = ? LIMIT 1`, cl.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrChecklistNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a single checklist row.  Item cleanup happens first in the
// ordering service; this call does not cascade.
func (r *ChecklistRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM checklists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrChecklistNotFound
	}
	return nil
}
