package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	Title    string          `gorm:"size:255;not null" json:"title"`
	Author   string          `gorm:"size:255;not null" json:"author"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Stock    int             `json:"stock"`
	ImageURL *string         `gorm:"size:512" json:"imageUrl,omitempty"`
}

func (Product) TableName() string { return "products" }

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
}
