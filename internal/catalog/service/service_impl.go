package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/electromax/storefront/internal/cache"
	catalogdomain "github.com/electromax/storefront/internal/catalog/domain"
	"github.com/electromax/storefront/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const productCacheTTL = 10 * time.Second

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID        *snowflake.Node
	categoryrepo repository.Repository[catalogdomain.Category]
	brandrepo    repository.Repository[catalogdomain.Brand]
	warrantyrepo repository.Repository[catalogdomain.Warranty]
	productrepo  repository.Repository[catalogdomain.Product]
	productCache *cache.TTLCache[snowflake.ID, catalogdomain.Product]
}

func NewService(p ServiceParam) catalogdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("catalog.service"),

		genID:        p.GenID,
		categoryrepo: repository.ProvideStore[catalogdomain.Category](p.DB),
		brandrepo:    repository.ProvideStore[catalogdomain.Brand](p.DB),
		warrantyrepo: repository.ProvideStore[catalogdomain.Warranty](p.DB),
		productrepo:  repository.ProvideStore[catalogdomain.Product](p.DB),
		productCache: cache.NewTTLCache[snowflake.ID, catalogdomain.Product](),
	}
}

func (s *Service) GetOrCreateCategory(ctx context.Context, req catalogdomain.GetOrCreateCategoryRequest) (*catalogdomain.Category, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return nil, catalogdomain.ErrInvalidSlug
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}

	existing, err := s.categoryrepo.FindOne(ctx, &catalogdomain.Category{Slug: slug})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC()
	category := &catalogdomain.Category{
		ID:        s.genID.Generate(),
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categoryrepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) GetOrCreateBrand(ctx context.Context, name string) (*catalogdomain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}

	existing, err := s.brandrepo.FindOne(ctx, &catalogdomain.Brand{Name: name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	brand := &catalogdomain.Brand{
		ID:        s.genID.Generate(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.brandrepo.Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *Service) GetOrCreateWarranty(ctx context.Context, req catalogdomain.GetOrCreateWarrantyRequest) (*catalogdomain.Warranty, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}

	existing, err := s.warrantyrepo.FindOne(ctx, &catalogdomain.Warranty{Name: name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	warranty := &catalogdomain.Warranty{
		ID:           s.genID.Generate(),
		Name:         name,
		DurationDays: req.DurationDays,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.warrantyrepo.Create(ctx, warranty); err != nil {
		return nil, err
	}
	return warranty, nil
}

func (s *Service) GetOrCreateProduct(ctx context.Context, req catalogdomain.GetOrCreateProductRequest) (*catalogdomain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}
	if req.Price.IsNegative() {
		return nil, catalogdomain.ErrInvalidPrice
	}
	if req.CategoryID == 0 {
		return nil, catalogdomain.ErrInvalidCategory
	}

	existing, err := s.productrepo.FindOne(ctx, &catalogdomain.Product{Name: name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC()
	product := &catalogdomain.Product{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		WarrantyID:  req.WarrantyID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.productrepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context, req catalogdomain.ListProductsRequest) ([]catalogdomain.Product, error) {
	q := s.db.WithContext(ctx).Model(&catalogdomain.Product{}).Preload("Category").Order("name")
	if len(req.IDs) > 0 {
		q = q.Where("id IN ?", req.IDs)
	}
	if req.Limit > 0 {
		q = q.Limit(req.Limit)
	}

	var products []catalogdomain.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Service) GetProductByID(ctx context.Context, id string) (*catalogdomain.Product, error) {
	productID, err := catalogdomain.ParseID(id)
	if err != nil || productID == 0 {
		return nil, catalogdomain.ErrInvalidID
	}

	if cached, ok := s.productCache.Get(productID); ok {
		return &cached, nil
	}

	product, err := s.productrepo.FindOne(ctx, &catalogdomain.Product{ID: productID})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, catalogdomain.ErrNotFound
	}

	s.productCache.Set(productID, *product, productCacheTTL)
	return product, nil
}

func (s *Service) CountProducts(ctx context.Context) (int64, error) {
	return s.productrepo.Count(ctx, &catalogdomain.Product{})
}
