package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	notificationdomain "github.com/electromax/storefront/internal/notification/domain"
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

	genID     *snowflake.Node
	tokenrepo repository.Repository[notificationdomain.DeviceToken]
}

func NewService(p ServiceParam) notificationdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("notification.service"),

		genID:     p.GenID,
		tokenrepo: repository.ProvideStore[notificationdomain.DeviceToken](p.DB),
	}
}

func (s *Service) Register(ctx context.Context, req notificationdomain.RegisterDeviceRequest) (*notificationdomain.DeviceToken, error) {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return nil, notificationdomain.ErrInvalidToken
	}

	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil || customerID == 0 {
		return nil, notificationdomain.ErrInvalidCustomer
	}

	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	switch platform {
	case "":
		platform = notificationdomain.PlatformWeb
	case notificationdomain.PlatformWeb, notificationdomain.PlatformIOS, notificationdomain.PlatformAndroid:
	default:
		return nil, notificationdomain.ErrInvalidPlatform
	}

	existing, err := s.tokenrepo.FindOne(ctx, &notificationdomain.DeviceToken{Token: token})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		values := map[string]any{
			"customer_id": customerID,
			"platform":    platform,
			"is_active":   true,
			"updated_at":  time.Now().UTC(),
		}
		if req.DeviceName != nil {
			values["device_name"] = *req.DeviceName
		}
		if _, err := s.tokenrepo.Updates(ctx, &notificationdomain.DeviceToken{ID: existing.ID}, values); err != nil {
			return nil, err
		}
		return s.tokenrepo.FindOne(ctx, &notificationdomain.DeviceToken{ID: existing.ID})
	}

	now := time.Now().UTC()
	record := &notificationdomain.DeviceToken{
		ID:         s.genID.Generate(),
		CustomerID: customerID,
		Token:      token,
		Platform:   platform,
		DeviceName: req.DeviceName,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.tokenrepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) Unregister(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return notificationdomain.ErrInvalidToken
	}

	affected, err := s.tokenrepo.Updates(ctx,
		&notificationdomain.DeviceToken{Token: token},
		map[string]any{"is_active": false, "updated_at": time.Now().UTC()},
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notificationdomain.ErrNotFound
	}
	return nil
}

func (s *Service) ListActive(ctx context.Context, customerID string) ([]notificationdomain.DeviceToken, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(customerID))
	if err != nil || id == 0 {
		return nil, notificationdomain.ErrInvalidCustomer
	}

	records, err := s.tokenrepo.Find(ctx,
		&notificationdomain.DeviceToken{CustomerID: id, IsActive: true},
		repository.WithOrder("created_at DESC"),
	)
	if err != nil {
		return nil, err
	}

	tokens := make([]notificationdomain.DeviceToken, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		tokens = append(tokens, *record)
	}
	return tokens, nil
}
