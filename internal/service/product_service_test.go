package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"go-bookstore-api/internal/domain"
	"go-bookstore-api/internal/repo"
)

func newProductFixture(t *testing.T) *ProductService {
	t.Helper()
	db := openTestDB(t)
	// cache=nil：直查库
	return NewProductService(repo.NewProductRepo(db), nil, 0)
}

func TestProductCRUD(t *testing.T) {
	svc := newProductFixture(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProductInput{Title: "Clean Code", Author: "Robert C. Martin",
		Price: decimal.NewFromFloat(29.99), Stock: 100})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Clean Code" {
		t.Errorf("list = %+v", list)
	}

	upd, err := svc.Update(ctx, p.ID, ProductInput{Title: "Clean Code", Author: "Robert C. Martin",
		Price: decimal.NewFromFloat(24.99), Stock: 90})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !upd.Price.Equal(decimal.NewFromFloat(24.99)) || upd.Stock != 90 {
		t.Errorf("update = %+v", upd)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestProductUpdateKeepsImageURL(t *testing.T) {
	svc := newProductFixture(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProductInput{Title: "Design Patterns", Author: "Erich Gamma",
		Price: decimal.NewFromFloat(49.99), Stock: 30})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	img := "https://example.com/cover.jpg"
	p.ImageURL = &img
	if err := svc.products.Update(ctx, p); err != nil {
		t.Fatalf("set image: %v", err)
	}

	upd, err := svc.Update(ctx, p.ID, ProductInput{Title: "Design Patterns", Author: "Gamma et al.",
		Price: decimal.NewFromFloat(44.99), Stock: 25})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.ImageURL == nil || *upd.ImageURL != img {
		t.Error("imageUrl lost on update")
	}
}

func TestGetMissingProduct(t *testing.T) {
	svc := newProductFixture(t)
	if _, err := svc.Get(context.Background(), 424242); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}
