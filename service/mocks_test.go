package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/muslewski/eventizer-sub001/config"
	"github.com/muslewski/eventizer-sub001/core"
	"github.com/muslewski/eventizer-sub001/models"
	"gorm.io/gorm"
)

// MockUserRepository lưu user trong map, áp decision giống repository thật
type MockUserRepository struct {
	users map[string]*models.User
	err   error // nếu khác nil, mọi method trả về lỗi này
}

func NewMockUserRepository(users ...*models.User) *MockUserRepository {
	m := &MockUserRepository{users: make(map[string]*models.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *MockUserRepository) Create(user *models.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("new%09d", len(m.users))
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) Update(user *models.User) error {
	if m.err != nil {
		return m.err
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) UpdateRole(id string, role core.Role) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (m *MockUserRepository) Delete(id string) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *MockUserRepository) List(access core.Decision, offset, limit int) ([]models.User, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []models.User
	for _, id := range ids {
		u := m.users[id]
		if visible(access, u.Record()) {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

// MockOfferRepository lưu offer trong map
type MockOfferRepository struct {
	offers map[string]*models.Offer
	// lastFilter ghi lại filter của lần gọi List gần nhất
	lastFilter models.OfferFilter
}

func NewMockOfferRepository(offers ...*models.Offer) *MockOfferRepository {
	m := &MockOfferRepository{offers: make(map[string]*models.Offer)}
	for _, o := range offers {
		m.offers[o.ID.String()] = o
	}
	return m
}

func (m *MockOfferRepository) Create(offer *models.Offer) error {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	m.offers[offer.ID.String()] = offer
	return nil
}

func (m *MockOfferRepository) GetByID(id string) (*models.Offer, error) {
	o, ok := m.offers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *MockOfferRepository) Update(offer *models.Offer) error {
	cp := *offer
	m.offers[offer.ID.String()] = &cp
	return nil
}

func (m *MockOfferRepository) Delete(id string) error {
	if _, ok := m.offers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.offers, id)
	return nil
}

func (m *MockOfferRepository) List(access core.Decision, filter models.OfferFilter, offset, limit int) ([]models.Offer, int64, error) {
	m.lastFilter = filter
	var out []models.Offer
	for _, o := range m.offers {
		if !visible(access, o.Record()) {
			continue
		}
		if filter.VisibleOnly && !o.IsPubliclyVisible() {
			continue
		}
		if !filter.VisibleOnly && filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func visible(access core.Decision, record core.Record) bool {
	switch access.Effect {
	case core.EffectAllow:
		return true
	case core.EffectAllowIf:
		return access.Filter.Matches(record)
	default:
		return false
	}
}

// MockSubscriptionChecker trả về trạng thái theo customer ID
type MockSubscriptionChecker struct {
	active map[string]bool
	err    error
	calls  int
}

func (m *MockSubscriptionChecker) HasActiveSubscription(ctx context.Context, customerID string) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	return m.active[customerID], nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			Expiration: time.Hour,
		},
		Password: config.PasswordConfig{
			MinLength:    8,
			RequireDigit: true,
		},
	}
}

func principal(id string, role core.Role) core.Principal {
	return core.NewPrincipal(id, role)
}
