package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hris/internal/domain/apperr"
	"github.com/oksasatya/go-hris/pkg/helpers"
)

func newUserFixture(t *testing.T) (*UserService, *memUsers, *memIndex, *recordingNotifier) {
	t.Helper()
	users := newMemUsers()
	index := newMemIndex()
	notifier := &recordingNotifier{}
	return NewUserService(users, index, notifier, nil), users, index, notifier
}

func validCreate(email string) CreateUserInput {
	return CreateUserInput{Email: email, Password: "secret1", Name: "A", RoleID: 1, OrganizationID: 1}
}

func TestCreateUser_ThenGetJoinsNames(t *testing.T) {
	svc, users, index, notifier := newUserFixture(t)
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, validCreate("a@x.com"))
	require.NoError(t, err)
	require.Positive(t, id)

	d, err := svc.GetUser(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, d.RoleName)
	require.NotNil(t, d.OrganizationName)
	assert.Equal(t, "User", *d.RoleName)
	assert.Equal(t, "Default Organization", *d.OrganizationName)

	assert.True(t, helpers.CompareHashAndPassword(users.rows[id].Password, "secret1"))
	assert.Contains(t, index.docs, id)
	assert.Len(t, notifier.sent, 1)
}

func TestCreateUser_RequiresAllFields(t *testing.T) {
	svc, users, _, _ := newUserFixture(t)

	for _, in := range []CreateUserInput{
		{Password: "p", Name: "A", RoleID: 1, OrganizationID: 1},
		{Email: "a@x.com", Name: "A", RoleID: 1, OrganizationID: 1},
		{Email: "a@x.com", Password: "p", RoleID: 1, OrganizationID: 1},
		{Email: "a@x.com", Password: "p", Name: "A", OrganizationID: 1},
		{Email: "a@x.com", Password: "p", Name: "A", RoleID: 1},
	} {
		_, err := svc.CreateUser(context.Background(), in)
		var ve *apperr.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "All fields are required", ve.Message)
	}
	assert.Empty(t, users.rows)
}

func TestDirectory_RejectsMalformedEmail(t *testing.T) {
	svc, users, _, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Email: "not-an-email", Password: "p", Name: "A", RoleID: 1, OrganizationID: 1})
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Invalid email address", ve.Message)
	assert.Empty(t, users.rows)

	id, err := svc.CreateUser(ctx, validCreate("ok@x.com"))
	require.NoError(t, err)

	err = svc.UpdateUser(ctx, id, UpdateUserInput{Email: "not-an-email", Name: "A", RoleID: 1, OrganizationID: 1})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Invalid email address", ve.Message)
	assert.Equal(t, "ok@x.com", users.rows[id].Email)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, users, _, _ := newUserFixture(t)
	_, err := svc.CreateUser(context.Background(), validCreate("a@x.com"))
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), validCreate("a@x.com"))
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Len(t, users.rows, 1)
}

func TestCreateUser_UnknownRole(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)
	in := validCreate("a@x.com")
	in.RoleID = 99

	_, err := svc.CreateUser(context.Background(), in)
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)
}

func TestUpdateUser_PasswordOptional(t *testing.T) {
	svc, users, index, _ := newUserFixture(t)
	ctx := context.Background()
	id, err := svc.CreateUser(ctx, validCreate("a@x.com"))
	require.NoError(t, err)
	before := users.rows[id].Password

	err = svc.UpdateUser(ctx, id, UpdateUserInput{Email: "b@x.com", Name: "B", RoleID: 2, OrganizationID: 1})
	require.NoError(t, err)
	assert.Equal(t, before, users.rows[id].Password)
	assert.Equal(t, "b@x.com", users.rows[id].Email)
	assert.Equal(t, "b@x.com", index.docs[id].Email)

	err = svc.UpdateUser(ctx, id, UpdateUserInput{Email: "b@x.com", Name: "B", RoleID: 2, OrganizationID: 1, Password: "newpass"})
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(users.rows[id].Password, "newpass"))
}

func TestUpdateUser_OwnEmailIsNotConflict(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)
	ctx := context.Background()
	a, _ := svc.CreateUser(ctx, validCreate("a@x.com"))
	_, _ = svc.CreateUser(ctx, validCreate("b@x.com"))

	assert.NoError(t, svc.UpdateUser(ctx, a, UpdateUserInput{Email: "a@x.com", Name: "A2", RoleID: 1, OrganizationID: 1}))
	err := svc.UpdateUser(ctx, a, UpdateUserInput{Email: "b@x.com", Name: "A2", RoleID: 1, OrganizationID: 1})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestUpdateUser_Errors(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)
	ctx := context.Background()

	err := svc.UpdateUser(ctx, 42, UpdateUserInput{Email: "a@x.com", Name: "A", RoleID: 1, OrganizationID: 1})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.UpdateUser(ctx, 1, UpdateUserInput{Email: "a@x.com", RoleID: 1, OrganizationID: 1})
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Email, name, role, and organization are required", ve.Message)

	err = svc.UpdateUser(ctx, 0, UpdateUserInput{})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDeleteUser(t *testing.T) {
	svc, users, index, _ := newUserFixture(t)
	ctx := context.Background()
	id, _ := svc.CreateUser(ctx, validCreate("a@x.com"))
	other, _ := svc.CreateUser(ctx, validCreate("b@x.com"))
	users.referenced[other] = true

	require.NoError(t, svc.DeleteUser(ctx, id))
	assert.NotContains(t, index.docs, id)

	_, err := svc.GetUser(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteUser(ctx, id), apperr.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteUser(ctx, other), apperr.ErrReferenced)
	assert.Contains(t, users.rows, other)
}

func TestListUsers_Pagination(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)
	ctx := context.Background()
	for i := 0; i < 23; i++ {
		_, err := svc.CreateUser(ctx, validCreate(fmt.Sprintf("u%02d@x.com", i)))
		require.NoError(t, err)
	}

	page, err := svc.ListUsers(ctx, ListQuery{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 23, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 3)

	first, err := svc.ListUsers(ctx, ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, "u22@x.com", first.Items[0].Email, "newest first")
}

func TestListUsers_NormalizesPaging(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	page, err := svc.ListUsers(context.Background(), ListQuery{Page: -4, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Items)

	page, err = svc.ListUsers(context.Background(), ListQuery{Page: 1, PageSize: 5000})
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, page.PageSize)
}

func TestListUsers_Filters(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)
	ctx := context.Background()
	mk := func(email, name string, role int64) {
		_, err := svc.CreateUser(ctx, CreateUserInput{Email: email, Password: "secret1", Name: name, RoleID: role, OrganizationID: 1})
		require.NoError(t, err)
	}
	mk("alice@x.com", "Alice", 1)
	mk("bob@x.com", "Bob", 2)
	mk("m@x.com", "Mali", 2)
	mk("carol@x.com", "Carol", 1)

	page, err := svc.ListUsers(ctx, ListQuery{Search: "ALI"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	for _, u := range page.Items {
		assert.Contains(t, []string{"Alice", "Mali"}, u.Name)
	}

	page, err = svc.ListUsers(ctx, ListQuery{Search: "ali", RoleID: 2})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Mali", page.Items[0].Name)
}

func TestSearchUsers(t *testing.T) {
	svc, _, index, _ := newUserFixture(t)
	ctx := context.Background()
	_, err := svc.CreateUser(ctx, validCreate("findme@x.com"))
	require.NoError(t, err)

	got, err := svc.SearchUsers(ctx, "findme", 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	index.searchErr = errors.New("es down")
	_, err = svc.SearchUsers(ctx, "findme", 5)
	assert.ErrorIs(t, err, apperr.ErrSearchUnavailable)
	assert.NotErrorIs(t, err, apperr.ErrStoreUnavailable)
}

func TestSearchUsers_NoIndex(t *testing.T) {
	svc := NewUserService(newMemUsers(), nil, nil, nil)
	got, err := svc.SearchUsers(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
