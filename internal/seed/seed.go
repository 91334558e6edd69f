// Package seed bootstraps the demo catalog and buyer pool. All entity
// creation is get-or-create by natural key, so re-running is idempotent.
package seed

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/electromax/storefront/internal/catalog/domain"
	"github.com/electromax/storefront/internal/config"
	customerdomain "github.com/electromax/storefront/internal/customer/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Existing pools at or above these sizes are reused instead of extended.
	minReusableProducts = 30
	minReusableBuyers   = 15

	placeholderImagePath = "products/placeholder.png"
)

// Minimal valid 1x1 PNG used as a placeholder product image.
var placeholderPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53, 0xde, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x60, 0x60, 0x60, 0x00,
	0x00, 0x00, 0x02, 0x00, 0x01, 0xe2, 0x21, 0xbc, 0x33, 0x00, 0x00, 0x00,
	0x00, 0x49, 0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

var demoCategories = []catalogdomain.GetOrCreateCategoryRequest{
	{Name: "Refrigerators", Slug: "refrigerators"},
	{Name: "Washing Machines", Slug: "washing-machines"},
	{Name: "Microwaves", Slug: "microwaves"},
	{Name: "Televisions", Slug: "televisions"},
	{Name: "Kitchen Ranges", Slug: "kitchen-ranges"},
	{Name: "Air Conditioning", Slug: "air-conditioning"},
	{Name: "Small Appliances", Slug: "small-appliances"},
}

var demoBrands = []string{"Generic", "HomeTech", "ElectroMax", "SmartGoods"}

var demoWarranties = []catalogdomain.GetOrCreateWarrantyRequest{
	{Name: "Standard 1-Year Warranty", DurationDays: 365},
	{Name: "Extended 2-Year Warranty", DurationDays: 730},
}

type demoProduct struct {
	name         string
	price        string
	categorySlug string
	popularity   float64
}

var demoProducts = []demoProduct{
	{"No-Frost Refrigerator 320L", "1500.00", "refrigerators", 0.95},
	{"Top-Mount Refrigerator 260L", "900.00", "refrigerators", 0.8},
	{"Front-Load Washer 8kg", "1100.00", "washing-machines", 0.9},
	{"Top-Load Washer 7kg", "750.00", "washing-machines", 0.7},
	{"Microwave 700W", "180.00", "microwaves", 0.85},
	{"Convection Microwave 1000W", "320.00", "microwaves", 0.6},
	{"Smart TV 50\" 4K", "800.00", "televisions", 0.9},
	{"Smart TV 32\" HD", "300.00", "televisions", 0.7},
	{"Gas Range 4 Burners", "650.00", "kitchen-ranges", 0.6},
	{"Electric Cooktop 2 Plates", "220.00", "kitchen-ranges", 0.5},
	{"Split Air Conditioner 12000 BTU", "1200.00", "air-conditioning", 0.8},
	{"Portable Air Conditioner 8000 BTU", "420.00", "air-conditioning", 0.5},
	{"Professional Blender", "120.00", "small-appliances", 0.7},
	{"Vertical Steam Iron", "90.00", "small-appliances", 0.4},
	{"Robot Vacuum", "450.00", "small-appliances", 0.6},
}

var demoBuyers = []customerdomain.GetOrCreateBuyerRequest{
	{Username: "buyer1", FirstName: "John", LastName: "Perez"},
	{Username: "buyer2", FirstName: "Maria", LastName: "Garcia"},
	{Username: "buyer3", FirstName: "Carl", LastName: "Lopez"},
	{Username: "buyer4", FirstName: "Anna", LastName: "Martinez"},
	{Username: "buyer5", FirstName: "Louis", LastName: "Rodriguez"},
	{Username: "buyer6", FirstName: "Sophia", LastName: "Fernandez"},
	{Username: "buyer7", FirstName: "Matthew", LastName: "Gomez"},
	{Username: "buyer8", FirstName: "Valentina", LastName: "Diaz"},
	{Username: "buyer9", FirstName: "Lucas", LastName: "Torres"},
	{Username: "buyer10", FirstName: "Camila", LastName: "Ruiz"},
	{Username: "buyer11", FirstName: "Diego", LastName: "Alvarez"},
	{Username: "buyer12", FirstName: "Mia", LastName: "Sanchez"},
	{Username: "buyer13", FirstName: "Martin", LastName: "Romero"},
	{Username: "buyer14", FirstName: "Lucy", LastName: "Ramirez"},
	{Username: "buyer15", FirstName: "Thomas", LastName: "Vega"},
	{Username: "buyer16", FirstName: "Isabella", LastName: "Rossi"},
}

type Param struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Config      config.Config
	CatalogSvc  catalogdomain.Service
	CustomerSvc customerdomain.Service
}

// Bootstrap ensures the reference entities a generation run needs.
type Bootstrap struct {
	db          *gorm.DB
	log         *zap.Logger
	cfg         config.Config
	catalogSvc  catalogdomain.Service
	customerSvc customerdomain.Service
}

func NewBootstrap(p Param) *Bootstrap {
	return &Bootstrap{
		db:          p.DB,
		log:         p.Log.Named("seed"),
		cfg:         p.Config,
		catalogSvc:  p.CatalogSvc,
		customerSvc: p.CustomerSvc,
	}
}

// EnsureCatalog returns the working catalog and its popularity weights.
// A large enough existing catalog is reused as-is (after a metric backfill
// pass); otherwise the demo products are created. Popularity weights are
// attached out-of-band: they are generator state, not persisted fields.
func (b *Bootstrap) EnsureCatalog(ctx context.Context) ([]catalogdomain.Product, map[snowflake.ID]float64, error) {
	popularityByName := make(map[string]float64, len(demoProducts))
	for _, p := range demoProducts {
		popularityByName[p.name] = p.popularity
	}

	count, err := b.catalogSvc.CountProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	if count >= minReusableProducts {
		products, err := b.catalogSvc.ListProducts(ctx, catalogdomain.ListProductsRequest{Limit: minReusableProducts})
		if err != nil {
			return nil, nil, err
		}
		weights := make(map[snowflake.ID]float64, len(products))
		for i := range products {
			if pop, ok := popularityByName[products[i].Name]; ok {
				weights[products[i].ID] = pop
			}
			b.catalogSvc.EnsureMetrics(ctx, &products[i], nil)
		}
		return products, weights, nil
	}

	categories := make(map[string]*catalogdomain.Category, len(demoCategories))
	for _, req := range demoCategories {
		category, err := b.catalogSvc.GetOrCreateCategory(ctx, req)
		if err != nil {
			return nil, nil, err
		}
		categories[category.Slug] = category
	}

	brands := make([]*catalogdomain.Brand, 0, len(demoBrands))
	for _, name := range demoBrands {
		brand, err := b.catalogSvc.GetOrCreateBrand(ctx, name)
		if err != nil {
			return nil, nil, err
		}
		brands = append(brands, brand)
	}

	warranties := make([]*catalogdomain.Warranty, 0, len(demoWarranties))
	for _, req := range demoWarranties {
		warranty, err := b.catalogSvc.GetOrCreateWarranty(ctx, req)
		if err != nil {
			return nil, nil, err
		}
		warranties = append(warranties, warranty)
	}

	products := make([]catalogdomain.Product, 0, len(demoProducts))
	weights := make(map[snowflake.ID]float64, len(demoProducts))
	for i, d := range demoProducts {
		category, ok := categories[d.categorySlug]
		if !ok {
			return nil, nil, catalogdomain.ErrInvalidCategory
		}

		brandID := brands[i%len(brands)].ID
		warrantyID := warranties[i%len(warranties)].ID
		product, err := b.catalogSvc.GetOrCreateProduct(ctx, catalogdomain.GetOrCreateProductRequest{
			Name:        d.name,
			Description: "Demo product: " + d.name,
			Price:       decimal.RequireFromString(d.price),
			Stock:       20 + rand.IntN(181),
			CategoryID:  category.ID,
			BrandID:     &brandID,
			WarrantyID:  &warrantyID,
		})
		if err != nil {
			return nil, nil, err
		}

		popularity := d.popularity
		b.catalogSvc.EnsureMetrics(ctx, product, &popularity)
		b.ensurePlaceholderImage(ctx, product)

		products = append(products, *product)
		weights[product.ID] = popularity
	}

	b.log.Info("demo catalog ensured", zap.Int("products", len(products)))
	return products, weights, nil
}

// EnsureBuyers returns the buyer pool, creating the demo buyers when the
// existing pool is too small.
func (b *Bootstrap) EnsureBuyers(ctx context.Context) ([]customerdomain.Customer, error) {
	count, err := b.customerSvc.CountBuyers(ctx)
	if err != nil {
		return nil, err
	}
	if count >= minReusableBuyers {
		return b.customerSvc.ListBuyers(ctx, 2*minReusableBuyers)
	}

	buyers := make([]customerdomain.Customer, 0, len(demoBuyers))
	for _, req := range demoBuyers {
		buyer, err := b.customerSvc.GetOrCreateBuyer(ctx, req)
		if err != nil {
			return nil, err
		}
		buyers = append(buyers, *buyer)
	}

	b.log.Info("demo buyers ensured", zap.Int("buyers", len(buyers)))
	return buyers, nil
}

// ensurePlaceholderImage assigns a placeholder asset to products without an
// image. Failures here never block catalog creation.
func (b *Bootstrap) ensurePlaceholderImage(ctx context.Context, product *catalogdomain.Product) {
	if product.Image != "" {
		return
	}

	target := filepath.Join(b.cfg.Bootstrap.MediaRoot, filepath.FromSlash(placeholderImagePath))
	if _, err := os.Stat(target); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			b.log.Debug("placeholder dir not created", zap.Error(err))
			return
		}
		if err := os.WriteFile(target, placeholderPNG, 0o644); err != nil {
			b.log.Debug("placeholder image not written", zap.Error(err))
			return
		}
	}

	err := b.db.WithContext(ctx).
		Model(&catalogdomain.Product{}).
		Where("id = ? AND (image IS NULL OR image = '')", product.ID).
		UpdateColumn("image", placeholderImagePath).Error
	if err != nil {
		b.log.Debug("placeholder image not assigned", zap.Error(err))
		return
	}
	product.Image = placeholderImagePath
}
