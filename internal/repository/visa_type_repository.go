package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/visapath/content-service/internal/model"
)

// VisaTypeRepo manages persistence for visa types.
type VisaTypeRepo struct {
	db *sql.DB
}

func NewVisaTypeRepo(db *sql.DB) *VisaTypeRepo {
	return &VisaTypeRepo{db: db}
}

const visaTypeCols = `id, country_code, code, title, description, is_active`

func scanVisaType(row interface{ Scan(...any) error }) (*model.VisaType, error) {
	var v model.VisaType
	var country, desc sql.NullString
	if err := row.Scan(&v.ID, &country, &v.Code, &v.Title, &desc, &v.IsActive); err != nil {
		return nil, err
	}
	if country.Valid {
		v.CountryCode = &country.String
	}
	if desc.Valid {
		v.Description = &desc.String
	}
	return &v, nil
}

// Create inserts a new visa type.  Code is unique; a duplicate surfaces as
// ErrSlugExists since codes play the same uniqueness role slugs do.
func (r *VisaTypeRepo) Create(ctx context.Context, v *model.VisaType) error {
	const q = `INSERT INTO visa_types (id, country_code, code, title, description, is_active)
               VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, v.ID, v.CountryCode, v.Code, v.Title, v.Description, v.IsActive)
	if isDuplicate(err) {
		return ErrSlugExists
	}
	return err
}

// GetByID returns a visa type regardless of active state.
func (r *VisaTypeRepo) GetByID(ctx context.Context, id string) (*model.VisaType, error) {
	const q = `SELECT ` + visaTypeCols + ` FROM visa_types WHERE id = ?`
	v, err := scanVisaType(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVisaTypeNotFound
	}
	return v, err
}

// GetByCode resolves a visa type by its code.  Inactive types still resolve
// here so that articles referencing a retired code keep rendering.
func (r *VisaTypeRepo) GetByCode(ctx context.Context, code string) (*model.VisaType, error) {
	const q = `SELECT ` + visaTypeCols + ` FROM visa_types WHERE code = ?`
	v, err := scanVisaType(r.db.QueryRowContext(ctx, q, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVisaTypeNotFound
	}
	return v, err
}

// ListActive returns visa types available for new selections, ordered by
// title as the admin form expects.
func (r *VisaTypeRepo) ListActive(ctx context.Context) ([]*model.VisaType, error) {
	const q = `SELECT ` + visaTypeCols + ` FROM visa_types WHERE is_active = TRUE ORDER BY title ASC`
	return r.list(ctx, q)
}

// ListAll returns every visa type for the admin table view.
func (r *VisaTypeRepo) ListAll(ctx context.Context) ([]*model.VisaType, error) {
	const q = `SELECT ` + visaTypeCols + ` FROM visa_types ORDER BY title ASC`
	return r.list(ctx, q)
}

// ListActiveByCountry returns the active visa types tied to one destination.
// Types without a country are considered valid for every destination and
// are included as well.
func (r *VisaTypeRepo) ListActiveByCountry(ctx context.Context, countryCode string) ([]*model.VisaType, error) {
	const q = `SELECT ` + visaTypeCols + ` FROM visa_types
               WHERE is_active = TRUE AND (country_code = ? OR country_code IS NULL)
               ORDER BY title ASC`
	rows, err := r.db.QueryContext(ctx, q, countryCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVisaTypes(rows)
}

func (r *VisaTypeRepo) list(ctx context.Context, q string) ([]*model.VisaType, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVisaTypes(rows)
}

func collectVisaTypes(rows *sql.Rows) ([]*model.VisaType, error) {
	var result []*model.VisaType
	for rows.Next() {
		v, err := scanVisaType(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// Update rewrites the mutable fields of a visa type.
func (r *VisaTypeRepo) Update(ctx context.Context, v *model.VisaType) error {
	const q = `UPDATE visa_types SET country_code = ?, code = ?, title = ?, description = ?, is_active = ?
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, v.CountryCode, v.Code, v.Title, v.Description, v.IsActive, v.ID)
	if isDuplicate(err) {
		return ErrSlugExists
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM visa_types WHERE id = ? LIMIT 1`, v.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVisaTypeNotFound
			}
			return err
		}
	}
	return nil
}
