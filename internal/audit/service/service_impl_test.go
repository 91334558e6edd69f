package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/electromax/storefront/internal/audit/domain"
	"github.com/electromax/storefront/internal/migration"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) auditdomain.Service {
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

func TestRecordAndList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	err := svc.Record(ctx, auditdomain.RecordRequest{
		ActorType:  auditdomain.ActorTypeAPI,
		Action:     "demo.sales.generate",
		TargetType: "order",
		Metadata:   map[string]any{"total_orders": 42},
		IPAddress:  "127.0.0.1",
		UserAgent:  "curl/8.0",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := svc.List(ctx, auditdomain.ListRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	entry := entries[0]
	if entry.Action != "demo.sales.generate" || entry.TargetType != "order" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.ActorType != auditdomain.ActorTypeAPI {
		t.Errorf("actor type %q, want api", entry.ActorType)
	}
	if entry.IPAddress == nil || *entry.IPAddress != "127.0.0.1" {
		t.Errorf("ip address %v, want 127.0.0.1", entry.IPAddress)
	}
	if len(entry.Metadata) == 0 {
		t.Error("metadata not persisted")
	}
}

func TestRecordDefaultsActorToSystem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Record(ctx, auditdomain.RecordRequest{Action: "x", TargetType: "y"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	entries, err := svc.List(ctx, auditdomain.ListRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if entries[0].ActorType != auditdomain.ActorTypeSystem {
		t.Errorf("actor type %q, want system default", entries[0].ActorType)
	}
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.Record(ctx, auditdomain.RecordRequest{Action: "a.one", TargetType: "t"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := svc.Record(ctx, auditdomain.RecordRequest{Action: "a.two", TargetType: "t"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := svc.List(ctx, auditdomain.ListRequest{Action: "a.one"})
	if err != nil {
		t.Fatalf("List by action: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d a.one entries, want 3", len(entries))
	}

	limited, err := svc.List(ctx, auditdomain.ListRequest{Limit: 2})
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d entries with limit 2", len(limited))
	}

	future := time.Now().UTC().Add(time.Hour)
	none, err := svc.List(ctx, auditdomain.ListRequest{StartAt: &future})
	if err != nil {
		t.Fatalf("List future: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d entries starting in the future, want 0", len(none))
	}
}
