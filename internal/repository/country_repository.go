package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/visapath/content-service/internal/model"
)

// CountryRepo manages one of the two disjoint country pools.  The pools are
// structurally identical but live in separate tables and are never joined,
// so the repo is parameterized by table name and instantiated twice.
type CountryRepo struct {
	db    *sql.DB
	table string // "destination_countries" or "origin_countries"
}

// NewDestinationCountryRepo returns the repo for the destination pool.
func NewDestinationCountryRepo(db *sql.DB) *CountryRepo {
	return &CountryRepo{db: db, table: "destination_countries"}
}

// NewOriginCountryRepo returns the repo for the origin pool.
func NewOriginCountryRepo(db *sql.DB) *CountryRepo {
	return &CountryRepo{db: db, table: "origin_countries"}
}

// Create inserts a new country.  A duplicate code maps onto ErrSlugExists
// semantics at the handler level; here the raw duplicate error is surfaced
// so the caller can decide.
func (r *CountryRepo) Create(ctx context.Context, c *model.Country) error {
	q := fmt.Sprintf(`INSERT INTO %s (code, name, is_active) VALUES (?, ?, ?)`, r.table)
	_, err := r.db.ExecContext(ctx, q, c.Code, c.Name, c.IsActive)
	return err
}

// GetByCode retrieves a country regardless of its active flag, so that
// historical references on articles keep resolving after deactivation.
func (r *CountryRepo) GetByCode(ctx context.Context, code string) (*model.Country, error) {
	q := fmt.Sprintf(`SELECT code, name, is_active FROM %s WHERE code = ?`, r.table)
	var c model.Country
	err := r.db.QueryRowContext(ctx, q, code).Scan(&c.Code, &c.Name, &c.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCountryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListActive returns active countries ordered by name, for selection lists.
func (r *CountryRepo) ListActive(ctx context.Context) ([]*model.Country, error) {
	q := fmt.Sprintf(`SELECT code, name, is_active FROM %s WHERE is_active = TRUE ORDER BY name ASC`, r.table)
	return r.list(ctx, q)
}

// ListAll returns every country including deactivated ones, for the admin
// table view.
func (r *CountryRepo) ListAll(ctx context.Context) ([]*model.Country, error) {
	q := fmt.Sprintf(`SELECT code, name, is_active FROM %s ORDER BY name ASC`, r.table)
	return r.list(ctx, q)
}

func (r *CountryRepo) list(ctx context.Context, q string) ([]*model.Country, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*model.Country
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.Code, &c.Name, &c.IsActive); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

// Update changes the name and active flag of a country.  Deactivation hides
// the country from selection lists; rows are never deleted.
func (r *CountryRepo) Update(ctx context.Context, c *model.Country) error {
	q := fmt.Sprintf(`UPDATE %s SET name = ?, is_active = ? WHERE code = ?`, r.table)
	res, err := r.db.ExecContext(ctx, q, c.Name, c.IsActive, c.Code)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "missing" from "values already identical".
		var one int
		sel := fmt.Sprintf(`SELECT 1 FROM %s WHERE code = ? LIMIT 1`, r.table)
		if err := r.db.QueryRowContext(ctx, sel, c.Code).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCountryNotFound
			}
			return err
		}
	}
	return nil
}
