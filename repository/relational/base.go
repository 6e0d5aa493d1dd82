package relational

import (
	"context"
	"errors"

	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"gorm.io/gorm"
)

// newestFirst 所有列表的排序
const newestFirst = "created_at DESC, id DESC"

// baseRepository 是每张表通用的增删改查
type baseRepository[T any] struct {
	db *gorm.DB
}

func newBaseRepository[T any](db *gorm.DB) baseRepository[T] {
	return baseRepository[T]{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}

func (r baseRepository[T]) create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r baseRepository[T]) getByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

// update 先确认记录存在，再只更新 columns 中的列
func (r baseRepository[T]) update(ctx context.Context, id int64, columns map[string]interface{}) (*T, error) {
	entity, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return entity, nil
	}
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(columns).Error; err != nil {
		return nil, err
	}
	return r.getByID(ctx, id)
}

func (r baseRepository[T]) delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// list 按创建时间倒序返回，query 为空时返回全部
func (r baseRepository[T]) list(ctx context.Context, query string, args ...interface{}) ([]T, error) {
	entities := make([]T, 0)
	q := r.db.WithContext(ctx).Order(newestFirst)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r baseRepository[T]) count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error
	return count, err
}
