package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/visapath/content-service/internal/model"
)

// ChecklistItemRepo manages persistence for checklist items.  Metadata is a
// JSON object column; sort_order is scoped per checklist and maintained by
// the ordering service.
type ChecklistItemRepo struct {
	db *sql.DB
}

func NewChecklistItemRepo(db *sql.DB) *ChecklistItemRepo {
	return &ChecklistItemRepo{db: db}
}

const itemCols = `id, checklist_id, label, field_type, sort_order, metadata`

func scanItem(row interface{ Scan(...any) error }) (*model.ChecklistItem, error) {
	var it model.ChecklistItem
	var checklistID sql.NullString
	var fieldType string
	var meta sql.NullString
	if err := row.Scan(&it.ID, &checklistID, &it.Label, &fieldType, &it.SortOrder, &meta); err != nil {
		return nil, err
	}
	if checklistID.Valid {
		it.ChecklistID = &checklistID.String
	}
	it.FieldType = model.FieldType(fieldType)
	it.Metadata = map[string]any{}
	if meta.Valid && meta.String != "" {
		if err := json.Unmarshal([]byte(meta.String), &it.Metadata); err != nil {
			return nil, err
		}
	}
	return &it, nil
}

func metadataValue(it *model.ChecklistItem) (string, error) {
	if len(it.Metadata) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(it.Metadata)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *ChecklistItemRepo) Create(ctx context.Context, it *model.ChecklistItem) error {
	meta, err := metadataValue(it)
	if err != nil {
		return err
	}
	const q = `INSERT INTO checklist_items (id, checklist_id, label, field_type, sort_order, metadata)
               VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, q, it.ID, it.ChecklistID, it.Label, string(it.FieldType),
		it.SortOrder, meta)
	return err
}

func (r *ChecklistItemRepo) GetByID(ctx context.Context, id string) (*model.ChecklistItem, error) {
	const q = `SELECT ` + itemCols + ` FROM checklist_items WHERE id = ?`
	it, err := scanItem(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return it, err
}

// ListByChecklist returns a checklist's items sorted by sort_order.  Gaps in
// the sort values are fine; the ordering is a comparison key, not an index.
func (r *ChecklistItemRepo) ListByChecklist(ctx context.Context, checklistID string) ([]*model.ChecklistItem, error) {
	const q = `SELECT ` + itemCols + ` FROM checklist_items WHERE checklist_id = ? ORDER BY sort_order ASC`
	rows, err := r.db.QueryContext(ctx, q, checklistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*model.ChecklistItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	return result, rows.Err()
}

// CountByChecklist backs the append operation's sort_order = count+1 rule.
func (r *ChecklistItemRepo) CountByChecklist(ctx context.Context, checklistID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM checklist_items WHERE checklist_id = ?`, checklistID).Scan(&n)
	return n, err
}

// Update rewrites label, field type and metadata; sort_order moves only
// through UpdateSortOrder so the ordering invariant has a single owner.
func (r *ChecklistItemRepo) Update(ctx context.Context, it *model.ChecklistItem) error {
	meta, err := metadataValue(it)
	if err != nil {
		return err
	}
	const q = `UPDATE checklist_items SET label = ?, field_type = ?, metadata = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, it.Label, string(it.FieldType), meta, it.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM checklist_items WHERE id = ? LIMIT 1`, it.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrItemNotFound
			}
			return err
		}
	}
	return nil
}

// UpdateSortOrder sets one item's sort key.  The pairwise swap in the
// ordering service issues two of these as separate calls and reports a
// partial failure if the second one fails.
func (r *ChecklistItemRepo) UpdateSortOrder(ctx context.Context, id string, sortOrder int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE checklist_items SET sort_order = ? WHERE id = ?`, sortOrder, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM checklist_items WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrItemNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes an item without renumbering its former neighbors.
func (r *ChecklistItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM checklist_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// DeleteByChecklist removes every item of a checklist; part of the
// application-enforced cascade that precedes a checklist delete.
func (r *ChecklistItemRepo) DeleteByChecklist(ctx context.Context, checklistID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM checklist_items WHERE checklist_id = ?`, checklistID)
	return err
}
