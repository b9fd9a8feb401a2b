package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hris/internal/domain/entity"
	repo "github.com/oksasatya/go-hris/internal/domain/repository"
	"github.com/oksasatya/go-hris/pkg/helpers"
)

// ReferenceService serves the role and organization pick-lists, read-through a cache when one is set.
type ReferenceService struct {
	Refs   repo.ReferenceRepository
	Cache  ReferenceCache
	Logger *logrus.Logger
}

func NewReferenceService(refs repo.ReferenceRepository, cache ReferenceCache, logger *logrus.Logger) *ReferenceService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &ReferenceService{Refs: refs, Cache: cache, Logger: logger}
}

func (s *ReferenceService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	if s.Cache != nil {
		roles, ok, err := s.Cache.Roles(ctx)
		if err != nil {
			s.Logger.WithError(err).Warn("roles cache read failed")
		} else if ok {
			return roles, nil
		}
	}

	roles, err := s.Refs.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []entity.Role{}
	}
	if s.Cache != nil {
		if err := s.Cache.SetRoles(ctx, roles); err != nil {
			s.Logger.WithError(err).Warn("roles cache write failed")
		}
	}
	return roles, nil
}

func (s *ReferenceService) ListOrganizations(ctx context.Context) ([]entity.Organization, error) {
	if s.Cache != nil {
		orgs, ok, err := s.Cache.Organizations(ctx)
		if err != nil {
			s.Logger.WithError(err).Warn("organizations cache read failed")
		} else if ok {
			return orgs, nil
		}
	}

	orgs, err := s.Refs.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	if orgs == nil {
		orgs = []entity.Organization{}
	}
	if s.Cache != nil {
		if err := s.Cache.SetOrganizations(ctx, orgs); err != nil {
			s.Logger.WithError(err).Warn("organizations cache write failed")
		}
	}
	return orgs, nil
}
