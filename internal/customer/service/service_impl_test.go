package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/electromax/storefront/internal/customer/domain"
	"github.com/electromax/storefront/internal/migration"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) customerdomain.Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := migration.Run(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewService(ServiceParam{DB: conn, Log: zap.NewNop(), GenID: node})
}

func TestGetOrCreateBuyerNormalizesAndDefaults(t *testing.T) {
	svc := newTestService(t)

	buyer, err := svc.GetOrCreateBuyer(context.Background(), customerdomain.GetOrCreateBuyerRequest{
		Username:  "  Buyer1 ",
		FirstName: "John",
		LastName:  "Perez",
	})
	if err != nil {
		t.Fatalf("GetOrCreateBuyer: %v", err)
	}
	if buyer.Username != "buyer1" {
		t.Errorf("username %q, want lowercased trimmed %q", buyer.Username, "buyer1")
	}
	if buyer.Email != "buyer1@demo.example.com" {
		t.Errorf("email %q, want generated default", buyer.Email)
	}
	if buyer.Role != customerdomain.RoleBuyer {
		t.Errorf("role %q, want %q", buyer.Role, customerdomain.RoleBuyer)
	}
}

func TestGetOrCreateBuyerIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetOrCreateBuyer(ctx, customerdomain.GetOrCreateBuyerRequest{Username: "buyer1"})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.GetOrCreateBuyer(ctx, customerdomain.GetOrCreateBuyerRequest{Username: "BUYER1"})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("case-insensitive lookup created a new row: %d vs %d", first.ID, second.ID)
	}

	count, err := svc.CountBuyers(ctx)
	if err != nil {
		t.Fatalf("CountBuyers: %v", err)
	}
	if count != 1 {
		t.Errorf("%d buyers, want 1", count)
	}
}

func TestGetOrCreateBuyerRejectsBlankUsername(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.GetOrCreateBuyer(context.Background(), customerdomain.GetOrCreateBuyerRequest{Username: "   "}); err != customerdomain.ErrInvalidUsername {
		t.Errorf("got %v, want ErrInvalidUsername", err)
	}
}

func TestListBuyersOrderedByUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"charlie", "alice", "bob"} {
		if _, err := svc.GetOrCreateBuyer(ctx, customerdomain.GetOrCreateBuyerRequest{Username: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	buyers, err := svc.ListBuyers(ctx, 0)
	if err != nil {
		t.Fatalf("ListBuyers: %v", err)
	}
	if len(buyers) != 3 {
		t.Fatalf("got %d buyers, want 3", len(buyers))
	}
	for i, want := range []string{"alice", "bob", "charlie"} {
		if buyers[i].Username != want {
			t.Errorf("position %d: %q, want %q", i, buyers[i].Username, want)
		}
	}

	limited, err := svc.ListBuyers(ctx, 2)
	if err != nil {
		t.Fatalf("ListBuyers limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d buyers with limit 2", len(limited))
	}
}
