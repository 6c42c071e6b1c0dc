package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"go-bookstore-api/internal/core/cache"
	"go-bookstore-api/internal/domain"
)

const productListKey = "products:all"

type ProductInput struct {
	Title  string          `json:"title" binding:"required"`
	Author string          `json:"author" binding:"required"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
}

type ProductService struct {
	products domain.ProductRepository
	cache    *cache.Cache // 可为 nil（测试或未配 redis）
	listTTL  time.Duration
}

func NewProductService(products domain.ProductRepository, c *cache.Cache, listTTL time.Duration) *ProductService {
	if listTTL <= 0 {
		listTTL = 30 * time.Second
	}
	return &ProductService{products: products, cache: c, listTTL: listTTL}
}

// List 公共目录读路径走 redis + singleflight，写操作后主动失效
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache == nil {
		return s.products.List(ctx)
	}
	out, err := cache.GetOrLoadJSON[[]domain.Product](s.cache, ctx, productListKey, s.listTTL,
		func(ctx context.Context) (*[]domain.Product, error) {
			ps, e := s.products.List(ctx)
			if e != nil {
				return nil, e
			}
			return &ps, nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return []domain.Product{}, nil
	}
	return *out, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p := &domain.Product{Title: in.Title, Author: in.Author, Price: in.Price, Stock: in.Stock}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

// Update 与存量行为一致：只覆盖 title/author/price/stock，imageUrl 不动
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	p.Title = in.Title
	p.Author = in.Author
	p.Price = in.Price
	p.Stock = in.Stock
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.RDB.Del(ctx, productListKey).Err()
	}
}
