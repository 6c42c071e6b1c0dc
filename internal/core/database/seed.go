package database

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-bookstore-api/internal/domain"
	"go-bookstore-api/pkg/utils"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
	)
}

// Seed 初始账号和商品，库里已有用户则跳过
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []domain.User{
		{Username: "admin", PasswordHash: utils.HashPassword("admin123"), Role: domain.RoleAdmin},
		{Username: "manager", PasswordHash: utils.HashPassword("manager123"), Role: domain.RoleManager},
		{Username: "user", PasswordHash: utils.HashPassword("user123"), Role: domain.RoleUser},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	img := func(s string) *string { return &s }
	products := []domain.Product{
		{Title: "Clean Code", Author: "Robert C. Martin", Price: decimal.NewFromFloat(29.99), Stock: 100,
			ImageURL: img("https://m.media-amazon.com/images/I/41jEbK-jG+L.jpg")},
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Price: decimal.NewFromFloat(39.99), Stock: 50,
			ImageURL: img("https://m.media-amazon.com/images/I/41as+WafrFL._SX258_BO1,204,203,200_.jpg")},
		{Title: "Design Patterns", Author: "Erich Gamma", Price: decimal.NewFromFloat(49.99), Stock: 30,
			ImageURL: img("https://m.media-amazon.com/images/I/51kY5Pz2TML._SX258_BO1,204,203,200_.jpg")},
	}
	return db.Create(&products).Error
}
