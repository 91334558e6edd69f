package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/electromax/storefront/internal/audit/domain"
	"github.com/electromax/storefront/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultListLimit = 50

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	repo  repository.Repository[auditdomain.Entry]
}

func NewService(p ServiceParam) auditdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("audit.service"),

		genID: p.GenID,
		repo:  repository.ProvideStore[auditdomain.Entry](p.DB),
	}
}

func (s *Service) Record(ctx context.Context, req auditdomain.RecordRequest) error {
	actor := req.ActorType
	if actor == "" {
		actor = auditdomain.ActorTypeSystem
	}

	metadata := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	entry := &auditdomain.Entry{
		ID:         s.genID.Generate(),
		ActorType:  actor,
		Action:     strings.TrimSpace(req.Action),
		TargetType: strings.TrimSpace(req.TargetType),
		Metadata:   metadata,
		CreatedAt:  time.Now().UTC(),
	}
	if req.TargetID != "" {
		entry.TargetID = &req.TargetID
	}
	if req.IPAddress != "" {
		entry.IPAddress = &req.IPAddress
	}
	if req.UserAgent != "" {
		entry.UserAgent = &req.UserAgent
	}

	return s.repo.Create(ctx, entry)
}

func (s *Service) List(ctx context.Context, req auditdomain.ListRequest) ([]auditdomain.Entry, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	q := s.db.WithContext(ctx).Model(&auditdomain.Entry{})
	if req.Action != "" {
		q = q.Where("action = ?", req.Action)
	}
	if req.StartAt != nil {
		q = q.Where("created_at >= ?", *req.StartAt)
	}
	if req.EndAt != nil {
		q = q.Where("created_at < ?", *req.EndAt)
	}

	var entries []auditdomain.Entry
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
