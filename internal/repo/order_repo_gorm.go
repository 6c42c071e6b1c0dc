package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-bookstore-api/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create 显式开事务：全局 Session 关了默认事务，订单和明细必须一起落库
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
}

func (r *OrderRepo) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &o, err
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items").
		Preload("Items.Product").
		Find(&orders).Error
	return orders, err
}

// UpdateStatus 单列更新，不碰明细和时间戳；订单是否存在由 service 先查
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint, s domain.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Update("status", s).Error
}
