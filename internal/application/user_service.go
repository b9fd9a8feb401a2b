package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hris/internal/domain/apperr"
	"github.com/oksasatya/go-hris/internal/domain/entity"
	repo "github.com/oksasatya/go-hris/internal/domain/repository"
	"github.com/oksasatya/go-hris/pkg/helpers"
	"github.com/oksasatya/go-hris/pkg/validation"
)

const (
	DefaultPageSize   = 10
	MaxPageSize       = 100
	DefaultSearchSize = 20
)

type UserService struct {
	Users    repo.UserRepository
	Index    UserIndex
	Notifier Notifier
	Logger   *logrus.Logger
}

func NewUserService(users repo.UserRepository, index UserIndex, notifier Notifier, logger *logrus.Logger) *UserService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &UserService{Users: users, Index: index, Notifier: notifier, Logger: logger}
}

type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	RoleID   int64
}

type UserPage struct {
	Items      []entity.UserDetail
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

type CreateUserInput struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	Name           string `json:"name" validate:"required"`
	RoleID         int64  `json:"role_id" validate:"required"`
	OrganizationID int64  `json:"organization_id" validate:"required"`
}

// UpdateUserInput leaves the stored password untouched when Password is empty.
type UpdateUserInput struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password"`
	Name           string `json:"name" validate:"required"`
	RoleID         int64  `json:"role_id" validate:"required"`
	OrganizationID int64  `json:"organization_id" validate:"required"`
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

func totalPages(total, size int) int {
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

func (s *UserService) ListUsers(ctx context.Context, q ListQuery) (*UserPage, error) {
	page, size := normalizePage(q.Page, q.PageSize)
	items, total, err := s.Users.List(ctx, entity.UserFilter{Search: q.Search, RoleID: q.RoleID}, page, size)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.UserDetail{}
	}
	return &UserPage{
		Items:      items,
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages(total, size),
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*entity.UserDetail, error) {
	if id <= 0 {
		return nil, apperr.Invalid("Invalid user id")
	}
	return s.Users.GetByID(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (int64, error) {
	if err := validation.Struct(in); err != nil {
		return 0, directoryValidationError(err, "All fields are required")
	}

	taken, err := s.Users.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, fmt.Errorf("%w: email already exists", apperr.ErrConflict)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return 0, err
	}
	u := &entity.User{
		Email:          in.Email,
		Password:       hash,
		Name:           in.Name,
		RoleID:         in.RoleID,
		OrganizationID: in.OrganizationID,
	}
	id, err := s.Users.Create(ctx, u)
	if err != nil {
		return 0, err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": id, "role_id": u.RoleID}).Info("user created")
	s.reindex(ctx, id)
	if s.Notifier != nil {
		if err := s.Notifier.Welcome(ctx, u.Public()); err != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("welcome notification failed")
		}
	}
	return id, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) error {
	if id <= 0 {
		return apperr.Invalid("Invalid user id")
	}
	if err := validation.Struct(in); err != nil {
		return directoryValidationError(err, "Email, name, role, and organization are required")
	}

	taken, err := s.Users.EmailTaken(ctx, in.Email, id)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: email already exists", apperr.ErrConflict)
	}

	var hash *string
	if in.Password != "" {
		h, err := helpers.HashPassword(in.Password)
		if err != nil {
			return err
		}
		hash = &h
	}

	u := &entity.User{
		ID:             id,
		Email:          in.Email,
		Name:           in.Name,
		RoleID:         in.RoleID,
		OrganizationID: in.OrganizationID,
	}
	if err := s.Users.Update(ctx, u, hash); err != nil {
		return err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": id, "password_changed": hash != nil}).Info("user updated")
	s.reindex(ctx, id)
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.Invalid("Invalid user id")
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.WithField("user_id", id).Info("user deleted")
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("search index remove failed")
		}
	}
	return nil
}

// SearchUsers queries the full-text index. Without an index it returns an empty result.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]entity.UserDetail, error) {
	if s.Index == nil || q == "" {
		return []entity.UserDetail{}, nil
	}
	if size < 1 {
		size = DefaultSearchSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	users, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %w", apperr.ErrSearchUnavailable, err)
	}
	if users == nil {
		users = []entity.UserDetail{}
	}
	return users, nil
}

// directoryValidationError reports a malformed email on its own; any other
// failure is a missing field.
func directoryValidationError(err error, missing string) error {
	details := validation.ToDetails(err)
	if validation.FirstTag(err, "required", "email") == "email" {
		return apperr.InvalidFields("Invalid email address", details)
	}
	return apperr.InvalidFields(missing, details)
}

// reindex pushes the joined row to the search index; failures only get logged.
func (s *UserService) reindex(ctx context.Context, id int64) {
	indexUser(ctx, s.Users, s.Index, s.Logger, id)
}

// indexUser mirrors one stored user into index. It is best effort: a missing
// index is skipped and failures are logged.
func indexUser(ctx context.Context, users repo.UserRepository, index UserIndex, logger logrus.FieldLogger, id int64) {
	if index == nil {
		return
	}
	d, err := users.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			logger.WithError(err).WithField("user_id", id).Warn("search reindex lookup failed")
		}
		return
	}
	if err := index.Index(ctx, d); err != nil {
		logger.WithError(err).WithField("user_id", id).Warn("search index failed")
	}
}
