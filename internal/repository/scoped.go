package repository

import (
	"context"

	"gorm.io/gorm"
)

// scopedRepository holds the queries shared by notes and todos: every read
// and write is filtered by organization_id, and list/detail reads join the
// creator's username. T is the row model and W its joined projection.
type scopedRepository[T any, W any] struct {
	db      *gorm.DB
	table   string
	columns []string // columns written by update
}

func (r *scopedRepository[T, W]) create(ctx context.Context, item *T) error {
	return translateError(r.db.WithContext(ctx).Create(item).Error)
}

func (r *scopedRepository[T, W]) findByID(ctx context.Context, orgID, id uint) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&item).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

func (r *scopedRepository[T, W]) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table(r.table).
		Select(r.table + ".*, users.username AS created_by_username").
		Joins("JOIN users ON users.id = " + r.table + ".created_by")
}

func (r *scopedRepository[T, W]) findWithAuthor(ctx context.Context, orgID, id uint) (*W, error) {
	var items []W
	err := r.withAuthor(ctx).
		Where(r.table+".id = ? AND "+r.table+".organization_id = ?", id, orgID).
		Limit(1).
		Scan(&items).Error
	if err != nil {
		return nil, translateError(err)
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

// list returns the organization's items; a non-zero creatorID narrows the
// result to that user's items.
func (r *scopedRepository[T, W]) list(ctx context.Context, orgID, creatorID uint) ([]W, error) {
	q := r.withAuthor(ctx).Where(r.table+".organization_id = ?", orgID)
	if creatorID != 0 {
		q = q.Where(r.table+".created_by = ?", creatorID)
	}

	items := []W{}
	if err := q.Order(r.table + ".id").Scan(&items).Error; err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

func (r *scopedRepository[T, W]) update(ctx context.Context, item *T, orgID uint) error {
	res := r.db.WithContext(ctx).
		Model(item).
		Where("organization_id = ?", orgID).
		Select(r.columns).
		Updates(item)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *scopedRepository[T, W]) delete(ctx context.Context, orgID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		Delete(new(T))
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
