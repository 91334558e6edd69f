package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/electromax/storefront/internal/customer/domain"
	"github.com/electromax/storefront/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

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
	customerrepo repository.Repository[customerdomain.Customer]
}

func NewService(p ServiceParam) customerdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("customer.service"),

		genID:        p.GenID,
		customerrepo: repository.ProvideStore[customerdomain.Customer](p.DB),
	}
}

func (s *Service) GetOrCreateBuyer(ctx context.Context, req customerdomain.GetOrCreateBuyerRequest) (*customerdomain.Customer, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, customerdomain.ErrInvalidUsername
	}

	existing, err := s.customerrepo.FindOne(ctx, &customerdomain.Customer{Username: username})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = username + "@demo.example.com"
	}

	now := time.Now().UTC()
	customer := &customerdomain.Customer{
		ID:        s.genID.Generate(),
		Username:  username,
		Email:     strings.ToLower(email),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      customerdomain.RoleBuyer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.customerrepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) ListBuyers(ctx context.Context, limit int) ([]customerdomain.Customer, error) {
	records, err := s.customerrepo.Find(ctx,
		&customerdomain.Customer{Role: customerdomain.RoleBuyer},
		repository.WithOrder("username"),
		repository.WithLimit(limit),
	)
	if err != nil {
		return nil, err
	}

	buyers := make([]customerdomain.Customer, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		buyers = append(buyers, *record)
	}
	return buyers, nil
}

func (s *Service) CountBuyers(ctx context.Context) (int64, error) {
	return s.customerrepo.Count(ctx, &customerdomain.Customer{Role: customerdomain.RoleBuyer})
}
