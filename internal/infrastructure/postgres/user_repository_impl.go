package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-hris/internal/domain/apperr"
	"github.com/oksasatya/go-hris/internal/domain/entity"
	"github.com/oksasatya/go-hris/internal/domain/repository"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	selectUserByEmailSQL = `
		SELECT id, email, password, name, role_id, organization_id, created_at
		FROM users
		WHERE email = $1
	`

	selectUserDetailByIDSQL = `
		SELECT u.id, u.email, u.name, u.role_id, u.organization_id, u.created_at,
		       r.name, o.name
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		LEFT JOIN organizations o ON o.id = u.organization_id
		WHERE u.id = $1
	`

	emailTakenSQL = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`

	insertUserSQL = `
		INSERT INTO users (email, password, name, role_id, organization_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	updateUserSQL = `
		UPDATE users
		SET email = $1, name = $2, role_id = $3, organization_id = $4
		WHERE id = $5
	`

	updateUserWithPasswordSQL = `
		UPDATE users
		SET email = $1, name = $2, role_id = $3, organization_id = $4, password = $5
		WHERE id = $6
	`

	deleteUserSQL = `DELETE FROM users WHERE id = $1`
)

type UserRepository struct {
	db      DBTX
	timeout time.Duration
}

func NewUserRepository(db DBTX, timeout time.Duration) *UserRepository {
	return &UserRepository{db: db, timeout: timeout}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	u := &entity.User{}
	err := r.db.QueryRow(ctx, selectUserByEmailSQL, email).Scan(
		&u.ID, &u.Email, &u.Password, &u.Name, &u.RoleID, &u.OrganizationID, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, translate(err, nil)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.UserDetail, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	d := &entity.UserDetail{}
	err := r.db.QueryRow(ctx, selectUserDetailByIDSQL, id).Scan(
		&d.ID, &d.Email, &d.Name, &d.RoleID, &d.OrganizationID, &d.CreatedAt,
		&d.RoleName, &d.OrganizationName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, translate(err, nil)
	}
	return d, nil
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var taken bool
	if err := r.db.QueryRow(ctx, emailTakenSQL, email, excludeID).Scan(&taken); err != nil {
		return false, translate(err, nil)
	}
	return taken, nil
}

// escapeLike makes s match literally inside a LIKE pattern (default escape is backslash).
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// userFilterPredicate AND-composes the optional directory filters.
// Search matches name OR email, case-insensitively, as a substring.
func userFilterPredicate(f entity.UserFilter) sq.And {
	pred := sq.And{}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		pred = append(pred, sq.Or{
			sq.ILike{"u.name": pattern},
			sq.ILike{"u.email": pattern},
		})
	}
	if f.RoleID > 0 {
		pred = append(pred, sq.Eq{"u.role_id": f.RoleID})
	}
	return pred
}

// List returns one page of users, newest first, plus the size of the whole filtered set.
func (r *UserRepository) List(ctx context.Context, filter entity.UserFilter, page, pageSize int) ([]entity.UserDetail, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	pred := userFilterPredicate(filter)

	countQ := psql.Select("COUNT(*)").From("users u")
	if len(pred) > 0 {
		countQ = countQ.Where(pred)
	}
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, translate(err, nil)
	}

	listQ := psql.
		Select(
			"u.id", "u.email", "u.name", "u.role_id", "u.organization_id", "u.created_at",
			"r.name", "o.name",
		).
		From("users u").
		LeftJoin("roles r ON r.id = u.role_id").
		LeftJoin("organizations o ON o.id = u.organization_id").
		OrderBy("u.created_at DESC", "u.id DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))
	if len(pred) > 0 {
		listQ = listQ.Where(pred)
	}
	listSQL, listArgs, err := listQ.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, translate(err, nil)
	}
	defer rows.Close()

	users := make([]entity.UserDetail, 0, pageSize)
	for rows.Next() {
		var d entity.UserDetail
		if err := rows.Scan(
			&d.ID, &d.Email, &d.Name, &d.RoleID, &d.OrganizationID, &d.CreatedAt,
			&d.RoleName, &d.OrganizationName,
		); err != nil {
			return nil, 0, translate(err, nil)
		}
		users = append(users, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translate(err, nil)
	}
	return users, total, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRow(ctx, insertUserSQL, u.Email, u.Password, u.Name, u.RoleID, u.OrganizationID)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return 0, translate(err, apperr.ErrInvalidReference)
	}
	return u.ID, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User, passwordHash *string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var (
		sql  = updateUserSQL
		args = []any{u.Email, u.Name, u.RoleID, u.OrganizationID, u.ID}
	)
	if passwordHash != nil {
		sql = updateUserWithPasswordSQL
		args = []any{u.Email, u.Name, u.RoleID, u.OrganizationID, *passwordHash, u.ID}
	}

	res, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translate(err, apperr.ErrInvalidReference)
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.Exec(ctx, deleteUserSQL, id)
	if err != nil {
		return translate(err, apperr.ErrReferenced)
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
