package service

import (
	"context"
	"time"

	"go-bookstore-api/internal/domain"
)

// OrderLine 下单入参，productId/quantity 原样入库，不做存在性/库存校验
type OrderLine struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type OrderItemView struct {
	ProductTitle string `json:"productTitle"`
	Quantity     int    `json:"quantity"`
}

// OrderSummary "我的订单"投影，不暴露 productId
type OrderSummary struct {
	ID        uint               `json:"id"`
	CreatedAt time.Time          `json:"createdAt"`
	Status    domain.OrderStatus `json:"status"`
	Items     []OrderItemView    `json:"items"`
}

type OrderService struct {
	users  domain.UserRepository
	orders domain.OrderRepository
}

func NewOrderService(users domain.UserRepository, orders domain.OrderRepository) *OrderService {
	return &OrderService{users: users, orders: orders}
}

// Create 以调用方用户名建单；解析不到账号直接拒绝，不落任何行
func (s *OrderService) Create(ctx context.Context, username string, lines []OrderLine) (uint, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, domain.ErrUnknownUser
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	o := &domain.Order{
		UserID:    u.ID,
		CreatedAt: time.Now().UTC(),
		Status:    domain.StatusPending,
		Items:     items,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return 0, err
	}
	return o.ID, nil
}

// ListMine 只返回调用方自己的订单，明细展开为商品标题+数量
func (s *OrderService) ListMine(ctx context.Context, username string) ([]OrderSummary, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnknownUser
	}

	orders, err := s.orders.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		items := make([]OrderItemView, 0, len(o.Items))
		for _, it := range o.Items {
			title := ""
			if it.Product != nil {
				title = it.Product.Title
			}
			items = append(items, OrderItemView{ProductTitle: title, Quantity: it.Quantity})
		}
		out = append(out, OrderSummary{ID: o.ID, CreatedAt: o.CreatedAt, Status: o.Status, Items: items})
	}
	return out, nil
}

// ListAll 管理端全量订单，带用户和商品完整对象
func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// UpdateStatus 任意成员之间可互转，不做单调推进约束；并发更新 last-write-wins
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, statusName string) (domain.OrderStatus, error) {
	status, err := domain.ParseStatus(statusName)
	if err != nil {
		return "", err
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if o == nil {
		return "", domain.ErrOrderNotFound
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return "", err
	}
	return status, nil
}
