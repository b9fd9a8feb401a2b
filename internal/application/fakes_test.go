package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-hris/internal/domain/apperr"
	"github.com/oksasatya/go-hris/internal/domain/entity"
)

// --- in-memory collaborators ---

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]entity.User
	roles  map[int64]string
	orgs   map[int64]string

	// referenced ids are rejected by Delete as if employee rows pointed at them
	referenced map[int64]bool
	// raceEmail makes Create report a unique violation even though EmailTaken said no
	raceEmail bool
	err       error
}

func newMemUsers() *memUsers {
	return &memUsers{
		rows:       map[int64]entity.User{},
		roles:      map[int64]string{1: "User", 2: "Admin"},
		orgs:       map[int64]string{1: "Default Organization"},
		referenced: map[int64]bool{},
	}
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.rows {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memUsers) detail(u entity.User) entity.UserDetail {
	d := entity.UserDetail{
		ID: u.ID, Email: u.Email, Name: u.Name,
		RoleID: u.RoleID, OrganizationID: u.OrganizationID, CreatedAt: u.CreatedAt,
	}
	if n, ok := m.roles[u.RoleID]; ok {
		d.RoleName = &n
	}
	if n, ok := m.orgs[u.OrganizationID]; ok {
		d.OrganizationName = &n
	}
	return d
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*entity.UserDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	d := m.detail(u)
	return &d, nil
}

func (m *memUsers) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, u := range m.rows {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) List(_ context.Context, f entity.UserFilter, page, size int) ([]entity.UserDetail, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, 0, m.err
	}
	needle := strings.ToLower(f.Search)
	var all []entity.UserDetail
	for _, u := range m.rows {
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		if f.RoleID > 0 && u.RoleID != f.RoleID {
			continue
		}
		all = append(all, m.detail(u))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	start := (page - 1) * size
	if start >= len(all) {
		return []entity.UserDetail{}, len(all), nil
	}
	end := min(start+size, len(all))
	return all[start:end], len(all), nil
}

func (m *memUsers) Create(_ context.Context, u *entity.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raceEmail {
		return 0, apperr.ErrConflict
	}
	if _, ok := m.roles[u.RoleID]; !ok {
		return 0, apperr.ErrInvalidReference
	}
	if _, ok := m.orgs[u.OrganizationID]; !ok {
		return 0, apperr.ErrInvalidReference
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(u.ID) * time.Minute)
	m.rows[u.ID] = *u
	return u.ID, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User, hash *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[u.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	cur.Email, cur.Name, cur.RoleID, cur.OrganizationID = u.Email, u.Name, u.RoleID, u.OrganizationID
	if hash != nil {
		cur.Password = *hash
	}
	m.rows[u.ID] = cur
	return nil
}

func (m *memUsers) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperr.ErrNotFound
	}
	if m.referenced[id] {
		return apperr.ErrReferenced
	}
	delete(m.rows, id)
	return nil
}

type memRefs struct {
	roles   []entity.Role
	orgs    []entity.Organization
	calls   int
	listErr error
}

func newMemRefs() *memRefs {
	return &memRefs{
		roles: []entity.Role{
			{ID: 1, Name: "User", Description: "Default user role", OrganizationID: 1},
			{ID: 2, Name: "Admin", Description: "Administrator role", OrganizationID: 1},
		},
		orgs: []entity.Organization{{ID: 1, Name: "Default Organization", Slug: "default"}},
	}
}

func (r *memRefs) ListRoles(context.Context) ([]entity.Role, error) {
	r.calls++
	return r.roles, r.listErr
}

func (r *memRefs) ListOrganizations(context.Context) ([]entity.Organization, error) {
	r.calls++
	return r.orgs, r.listErr
}

func (r *memRefs) RoleExists(_ context.Context, id int64) (bool, error) {
	for _, x := range r.roles {
		if x.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRefs) OrganizationExists(_ context.Context, id int64) (bool, error) {
	for _, x := range r.orgs {
		if x.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type memSessions struct {
	mu   sync.Mutex
	rows map[string]entity.Session
}

func newMemSessions() *memSessions { return &memSessions{rows: map[string]entity.Session{}} }

func (s *memSessions) Save(_ context.Context, sess *entity.Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[sess.ID] = *sess
	return nil
}

func (s *memSessions) Get(_ context.Context, sid string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.rows[sid]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &sess, nil
}

func (s *memSessions) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, sid)
	return nil
}

type recordingNotifier struct {
	sent []entity.PublicUser
	err  error
}

func (n *recordingNotifier) Welcome(_ context.Context, u *entity.PublicUser) error {
	n.sent = append(n.sent, *u)
	return n.err
}

type memIndex struct {
	docs      map[int64]entity.UserDetail
	searchErr error
}

func newMemIndex() *memIndex { return &memIndex{docs: map[int64]entity.UserDetail{}} }

func (x *memIndex) Index(_ context.Context, u *entity.UserDetail) error {
	x.docs[u.ID] = *u
	return nil
}

func (x *memIndex) Remove(_ context.Context, id int64) error {
	delete(x.docs, id)
	return nil
}

func (x *memIndex) Search(_ context.Context, q string, size int) ([]entity.UserDetail, error) {
	if x.searchErr != nil {
		return nil, x.searchErr
	}
	var out []entity.UserDetail
	for _, d := range x.docs {
		if strings.Contains(d.Email, q) || strings.Contains(d.Name, q) {
			out = append(out, d)
		}
		if len(out) == size {
			break
		}
	}
	return out, nil
}

type memCache struct {
	roles    []entity.Role
	orgs     []entity.Organization
	readErr  error
	setCalls int
}

func (c *memCache) Roles(context.Context) ([]entity.Role, bool, error) {
	if c.readErr != nil {
		return nil, false, c.readErr
	}
	return c.roles, c.roles != nil, nil
}

func (c *memCache) SetRoles(_ context.Context, roles []entity.Role) error {
	c.setCalls++
	c.roles = roles
	return nil
}

func (c *memCache) Organizations(context.Context) ([]entity.Organization, bool, error) {
	if c.readErr != nil {
		return nil, false, c.readErr
	}
	return c.orgs, c.orgs != nil, nil
}

func (c *memCache) SetOrganizations(_ context.Context, orgs []entity.Organization) error {
	c.setCalls++
	c.orgs = orgs
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.roles, c.orgs = nil, nil
	return nil
}
