package service

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/electromax/storefront/internal/catalog/domain"
	"github.com/electromax/storefront/internal/clock"
	"github.com/electromax/storefront/internal/config"
	customerdomain "github.com/electromax/storefront/internal/customer/domain"
	orderdomain "github.com/electromax/storefront/internal/order/domain"
	"github.com/electromax/storefront/internal/seed"
	"github.com/electromax/storefront/internal/simulation/demand"
	simulationdomain "github.com/electromax/storefront/internal/simulation/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Config    config.Config
	Clock     clock.Clock
	Bootstrap *seed.Bootstrap
}

// Service generates multi-year synthetic sales history. The run is a
// best-effort batch job: every persistence failure is absorbed at the
// narrowest scope (one order header or one line) and counted, never
// propagated. Only a requested history clear may abort the run.
type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID     *snowflake.Node
	cfg       config.Config
	clock     clock.Clock
	bootstrap *seed.Bootstrap

	// rng overrides the per-run time-seeded source in tests.
	rng *rand.Rand
}

func NewService(p ServiceParam) simulationdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("simulation.service"),

		genID:     p.GenID,
		cfg:       p.Config,
		clock:     p.Clock,
		bootstrap: p.Bootstrap,
	}
}

func (s *Service) Generate(ctx context.Context, req simulationdomain.GenerateRequest) (*simulationdomain.Summary, error) {
	ctx, span := otel.Tracer("storefront/simulation").Start(ctx, "simulation.generate")
	defer span.End()

	if req.ClearExisting {
		if err := s.clearHistory(ctx); err != nil {
			return nil, err
		}
		s.log.Info("existing order history cleared")
	}

	products, weights, err := s.bootstrap.EnsureCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, simulationdomain.ErrEmptyCatalog
	}

	customers, err := s.bootstrap.EnsureBuyers(ctx)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, simulationdomain.ErrEmptyCustomerPool
	}

	window := simulationdomain.NewWindow(s.clock.Now(), s.cfg.Simulation.WindowDays)
	rng := s.rng
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>16))
	}
	model := demand.NewModel(window, rng)
	sampler := demand.NewSampler(rng)

	summary := &simulationdomain.Summary{
		StartDate:      window.Start.Format(time.DateOnly),
		EndDate:        window.End.Format(time.DateOnly),
		ProductsCount:  len(products),
		CustomersCount: len(customers),
		TotalRevenue:   decimal.Zero,
	}

	s.log.Info("generation started",
		zap.String("start", summary.StartDate),
		zap.String("end", summary.EndDate),
		zap.Int("products", len(products)),
		zap.Int("customers", len(customers)),
	)

	for day := window.Start; !day.After(window.End); day = day.AddDate(0, 0, 1) {
		orders := model.DailyOrderCount(day)
		for i := 0; i < orders; i++ {
			customer := customers[rng.IntN(len(customers))]
			basket := sampler.Basket(products, weights)
			s.writeOrder(ctx, rng, day, customer, basket, summary)
		}
	}

	span.SetAttributes(
		attribute.Int("simulation.total_orders", summary.TotalOrders),
		attribute.Int("simulation.orders_skipped", summary.OrdersSkipped),
		attribute.Int("simulation.items_skipped", summary.ItemsSkipped),
	)
	s.log.Info("generation finished",
		zap.Int("total_orders", summary.TotalOrders),
		zap.String("total_revenue", summary.TotalRevenue.String()),
		zap.Int("orders_skipped", summary.OrdersSkipped),
		zap.Int("items_skipped", summary.ItemsSkipped),
	)
	return summary, nil
}

// writeOrder persists one order and its lines under per-record isolation
// and folds the outcome into the summary counters.
func (s *Service) writeOrder(
	ctx context.Context,
	rng *rand.Rand,
	day time.Time,
	customer customerdomain.Customer,
	basket []demand.Line,
	summary *simulationdomain.Summary,
) {
	total := decimal.Zero
	for _, line := range basket {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	// Business hours: random instant between 08:00 and 20:59.
	placedAt := day.
		Add(time.Duration(8+rng.IntN(13)) * time.Hour).
		Add(time.Duration(rng.IntN(60)) * time.Minute)

	order := &orderdomain.Order{
		ID:          s.genID.Generate(),
		CustomerID:  customer.ID,
		TotalAmount: total,
		Status:      orderdomain.OrderStatusCompleted,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		s.log.Warn("order create failed, skipping",
			zap.String("day", day.Format(time.DateOnly)),
			zap.Error(err),
		)
		summary.OrdersSkipped++
		return
	}

	s.overrideTimestamps(ctx, order.ID, placedAt)

	for _, line := range basket {
		item := &orderdomain.OrderItem{
			ID:        s.genID.Generate(),
			OrderID:   order.ID,
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(item).Error
		})
		if err != nil {
			s.log.Warn("order item create failed, skipping line",
				zap.Int64("order_id", int64(order.ID)),
				zap.Int64("product_id", int64(line.Product.ID)),
				zap.Error(err),
			)
			summary.ItemsSkipped++
			continue
		}

		if err := s.decrementStock(ctx, line.Product.ID, line.Quantity); err != nil {
			s.log.Warn("stock decrement failed",
				zap.Int64("product_id", int64(line.Product.ID)),
				zap.Error(err),
			)
			summary.StockUpdatesSkipped++
		}
	}

	summary.TotalOrders++
	summary.TotalRevenue = summary.TotalRevenue.Add(total)
}

// overrideTimestamps rewrites the auto-assigned creation instant with the
// simulated one. UpdateColumns bypasses gorm's auto timestamps.
func (s *Service) overrideTimestamps(ctx context.Context, orderID snowflake.ID, placedAt time.Time) {
	err := s.db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("id = ?", orderID).
		UpdateColumns(map[string]any{
			"created_at": placedAt,
			"updated_at": placedAt,
		}).Error
	if err != nil {
		s.log.Warn("timestamp override failed", zap.Int64("order_id", int64(orderID)), zap.Error(err))
	}
}

// decrementStock floors stock at zero. Generation is single-threaded, so a
// read-modify-write is sufficient here.
func (s *Service) decrementStock(ctx context.Context, productID snowflake.ID, quantity int) error {
	var product catalogdomain.Product
	if err := s.db.WithContext(ctx).Select("id", "stock").First(&product, "id = ?", productID).Error; err != nil {
		return err
	}

	next := product.Stock - quantity
	if next < 0 {
		next = 0
	}
	return s.db.WithContext(ctx).
		Model(&catalogdomain.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", next).Error
}

// clearHistory removes all orders and their lines in one atomic scope.
// Unlike the generation loop, this is all-or-nothing: a partial clear would
// leave mixed history behind.
func (s *Service) clearHistory(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM order_items`).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM orders`).Error
	})
}
