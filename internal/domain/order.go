package domain

import (
	"context"
	"fmt"
	"time"
)

// OrderStatus 同样以文本入库；已有存量数据，枚举名不可改
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
)

// ParseStatus 校验调用方传入的状态名，未知值返回 ErrValidation
func ParseStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusShipped, StatusDelivered:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrValidation, s)
}

type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"index;not null" json:"userId"`
	User      *User       `json:"user,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	Status    OrderStatus `gorm:"type:varchar(16);not null" json:"status"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	OrderID   uint     `gorm:"index;not null" json:"orderId"`
	ProductID uint     `gorm:"index;not null" json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
}

func (OrderItem) TableName() string { return "order_items" }

type OrderRepository interface {
	// Create 单事务写入订单与明细，不允许半截提交
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id uint, s OrderStatus) error
}
