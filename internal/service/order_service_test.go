package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go-bookstore-api/internal/core/database"
	"go-bookstore-api/internal/domain"
	"go-bookstore-api/internal/repo"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type orderFixture struct {
	db      *gorm.DB
	svc     *OrderService
	alice   domain.User
	mobyDic domain.Product
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := openTestDB(t)
	alice := domain.User{Username: "alice", PasswordHash: "hash", Role: domain.RoleUser}
	if err := db.Create(&alice).Error; err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	moby := domain.Product{Title: "Moby Dick", Author: "Herman Melville", Price: decimal.NewFromFloat(19.99), Stock: 7}
	if err := db.Create(&moby).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &orderFixture{
		db:      db,
		svc:     NewOrderService(repo.NewUserRepo(db), repo.NewOrderRepo(db)),
		alice:   alice,
		mobyDic: moby,
	}
}

func (f *orderFixture) orderRows(t *testing.T) (orders, items int64) {
	t.Helper()
	if err := f.db.Model(&domain.Order{}).Count(&orders).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if err := f.db.Model(&domain.OrderItem{}).Count(&items).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	return
}

func TestCreateOrderForKnownUser(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	before := time.Now().UTC()
	id, err := f.svc.Create(ctx, "alice", []OrderLine{
		{ProductID: f.mobyDic.ID, Quantity: 2},
		{ProductID: 12345, Quantity: 9}, // 不校验商品存在性，原样入库
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var o domain.Order
	if err := f.db.Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if o.Status != domain.StatusPending {
		t.Errorf("status = %q, want Pending", o.Status)
	}
	if o.UserID != f.alice.ID {
		t.Errorf("owner = %d, want %d", o.UserID, f.alice.ID)
	}
	if o.CreatedAt.Before(before.Add(-time.Second)) || o.CreatedAt.After(time.Now().UTC().Add(time.Second)) {
		t.Errorf("createdAt not server-assigned: %v", o.CreatedAt)
	}
	if len(o.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(o.Items))
	}
	got := map[uint]int{}
	for _, it := range o.Items {
		got[it.ProductID] = it.Quantity
	}
	if got[f.mobyDic.ID] != 2 || got[12345] != 9 {
		t.Errorf("item pairs = %v", got)
	}
}

func TestCreateOrderUnknownUserWritesNothing(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Create(context.Background(), "nobody", []OrderLine{{ProductID: f.mobyDic.ID, Quantity: 1}})
	if !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("err = %v, want ErrUnknownUser", err)
	}
	orders, items := f.orderRows(t)
	if orders != 0 || items != 0 {
		t.Errorf("rows persisted: orders=%d items=%d", orders, items)
	}
}

func TestCreateOrderEmptyItemList(t *testing.T) {
	f := newOrderFixture(t)

	id, err := f.svc.Create(context.Background(), "alice", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	orders, items := f.orderRows(t)
	if orders != 1 || items != 0 {
		t.Errorf("rows: orders=%d items=%d, want 1/0", orders, items)
	}
	if id == 0 {
		t.Error("order id not returned")
	}
}

func TestListMineReturnsOnlyOwnOrdersWithTitles(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	bob := domain.User{Username: "bob", PasswordHash: "hash", Role: domain.RoleUser}
	if err := f.db.Create(&bob).Error; err != nil {
		t.Fatalf("seed bob: %v", err)
	}
	if _, err := f.svc.Create(ctx, "alice", []OrderLine{{ProductID: f.mobyDic.ID, Quantity: 2}}); err != nil {
		t.Fatalf("alice order: %v", err)
	}
	if _, err := f.svc.Create(ctx, "bob", []OrderLine{{ProductID: f.mobyDic.ID, Quantity: 5}}); err != nil {
		t.Fatalf("bob order: %v", err)
	}

	mine, err := f.svc.ListMine(ctx, "alice")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("orders = %d, want 1", len(mine))
	}
	if mine[0].Status != domain.StatusPending {
		t.Errorf("status = %q", mine[0].Status)
	}
	if len(mine[0].Items) != 1 {
		t.Fatalf("items = %d, want 1", len(mine[0].Items))
	}
	if mine[0].Items[0].ProductTitle != "Moby Dick" || mine[0].Items[0].Quantity != 2 {
		t.Errorf("item = %+v", mine[0].Items[0])
	}
}

func TestListMineReflectsCurrentProductTitle(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, "alice", []OrderLine{{ProductID: f.mobyDic.ID, Quantity: 1}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.db.Model(&domain.Product{}).Where("id = ?", f.mobyDic.ID).Update("title", "Moby-Dick; or, The Whale").Error; err != nil {
		t.Fatalf("retitle: %v", err)
	}

	mine, err := f.svc.ListMine(ctx, "alice")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if mine[0].Items[0].ProductTitle != "Moby-Dick; or, The Whale" {
		t.Errorf("title = %q, want the renamed one", mine[0].Items[0].ProductTitle)
	}
}

func TestListMineUnknownCaller(t *testing.T) {
	f := newOrderFixture(t)
	if _, err := f.svc.ListMine(context.Background(), "nobody"); !errors.Is(err, domain.ErrUnknownUser) {
		t.Errorf("err = %v, want ErrUnknownUser", err)
	}
}

func TestListAllReturnsEveryOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	bob := domain.User{Username: "bob", PasswordHash: "hash", Role: domain.RoleUser}
	if err := f.db.Create(&bob).Error; err != nil {
		t.Fatalf("seed bob: %v", err)
	}
	for _, username := range []string{"alice", "alice", "bob"} {
		if _, err := f.svc.Create(ctx, username, []OrderLine{{ProductID: f.mobyDic.ID, Quantity: 1}}); err != nil {
			t.Fatalf("create for %s: %v", username, err)
		}
	}

	all, err := f.svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("orders = %d, want 3", len(all))
	}
	for _, o := range all {
		if o.User == nil {
			t.Errorf("order %d missing user", o.ID)
		}
	}
}

func TestUpdateStatusScenario(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	id, err := f.svc.Create(ctx, "alice", []OrderLine{{ProductID: f.mobyDic.ID, Quantity: 2}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	status, err := f.svc.UpdateStatus(ctx, id, "Shipped")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if status != domain.StatusShipped {
		t.Errorf("status = %q, want Shipped", status)
	}
	var o domain.Order
	if err := f.db.First(&o, "id = ?", id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if o.Status != domain.StatusShipped {
		t.Errorf("persisted status = %q", o.Status)
	}

	// 没有终态约束，可以再退回 Pending
	if _, err := f.svc.UpdateStatus(ctx, id, "Pending"); err != nil {
		t.Errorf("regress to Pending: %v", err)
	}
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	f := newOrderFixture(t)
	if _, err := f.svc.UpdateStatus(context.Background(), 999999, "Shipped"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestUpdateStatusRejectsUnknownName(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	id, err := f.svc.Create(ctx, "alice", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.UpdateStatus(ctx, id, "Cancelled"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	var o domain.Order
	if err := f.db.First(&o, "id = ?", id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if o.Status != domain.StatusPending {
		t.Errorf("status mutated to %q on bad input", o.Status)
	}
}
