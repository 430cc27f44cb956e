// Package fakes provides in-memory implementations of the service ports for tests.
package fakes

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"appointment-booking-api/internal/model"
)

type Users struct {
	mu    sync.Mutex
	users map[string]model.User
}

func NewUsers() *Users { return &Users{users: make(map[string]model.User)} }

func (r *Users) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *Users) FindAllProviders(_ context.Context, except string) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for id, u := range r.users {
		if id != except {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Users) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = *u
	return nil
}

func (r *Users) Save(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.UpdatedAt = time.Now()
	r.users[u.ID] = *u
	return nil
}

type Appointments struct {
	mu   sync.Mutex
	apts []model.Appointment
}

func NewAppointments() *Appointments { return &Appointments{} }

func (r *Appointments) FindByDate(_ context.Context, date time.Time, providerID string) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apts {
		if a.ProviderID == providerID && a.Date.Equal(date) {
			return &a, nil
		}
	}
	return nil, nil
}

// Create enforces slot uniqueness like the Postgres unique index.
func (r *Appointments) Create(_ context.Context, a *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.apts {
		if x.ProviderID == a.ProviderID && x.Date.Equal(a.Date) {
			return model.ErrSlotTaken
		}
	}
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.apts = append(r.apts, *a)
	return nil
}

func (r *Appointments) FindAllInMonthFromProvider(_ context.Context, providerID string, month time.Month, year int) ([]model.Appointment, error) {
	return r.filter(func(a model.Appointment) bool {
		return a.ProviderID == providerID && a.Date.Month() == month && a.Date.Year() == year
	}), nil
}

func (r *Appointments) FindAllInDayFromProvider(_ context.Context, providerID string, day int, month time.Month, year int) ([]model.Appointment, error) {
	return r.filter(func(a model.Appointment) bool {
		return a.ProviderID == providerID && a.Date.Day() == day && a.Date.Month() == month && a.Date.Year() == year
	}), nil
}

func (r *Appointments) All() []model.Appointment {
	return r.filter(func(model.Appointment) bool { return true })
}

func (r *Appointments) filter(keep func(model.Appointment) bool) []model.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Appointment
	for _, a := range r.apts {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

type Notifications struct {
	mu    sync.Mutex
	items []model.Notification
}

func NewNotifications() *Notifications { return &Notifications{} }

func (r *Notifications) Create(_ context.Context, recipientID, content string) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := model.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	r.items = append(r.items, n)
	return &n, nil
}

func (r *Notifications) FindByRecipient(_ context.Context, recipientID string) ([]model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].RecipientID == recipientID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *Notifications) All() []model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Notification(nil), r.items...)
}

type RefreshTokens struct {
	mu     sync.Mutex
	tokens map[string]model.RefreshToken
}

func NewRefreshTokens() *RefreshTokens {
	return &RefreshTokens{tokens: make(map[string]model.RefreshToken)}
}

func (r *RefreshTokens) Create(_ context.Context, userID, tokenHash string, expiresAt time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.New().String()
	r.tokens[id] = model.RefreshToken{ID: id, UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	return id, nil
}

func (r *RefreshTokens) FindByHash(_ context.Context, tokenHash string) (*model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *RefreshTokens) Rotate(_ context.Context, oldID, userID, newHash string, newExpiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	newID := uuid.New().String()
	old := r.tokens[oldID]
	old.Revoked = true
	old.ReplacedBy = &newID
	r.tokens[oldID] = old
	r.tokens[newID] = model.RefreshToken{ID: newID, UserID: userID, TokenHash: newHash, ExpiresAt: newExpiry, CreatedAt: time.Now()}
	return nil
}

func (r *RefreshTokens) RevokeAll(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
			r.tokens[id] = t
		}
	}
	return nil
}

// Cache records every invalidation it receives.
type Cache struct {
	mu          sync.Mutex
	data        map[string][]byte
	Invalidated []string
}

func NewCache() *Cache { return &Cache{data: make(map[string][]byte)} }

func (c *Cache) Save(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *Cache) Recover(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	b, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.Invalidated = append(c.Invalidated, key)
	return nil
}

func (c *Cache) InvalidatePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix+":") {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// Storage keeps saved file names in a set.
type Storage struct {
	mu        sync.Mutex
	files     map[string]bool
	saveErr   error
	deleteErr map[string]error
	Deleted   []string
}

func NewStorage() *Storage {
	return &Storage{files: make(map[string]bool), deleteErr: make(map[string]error)}
}

// FailSave makes every SaveFile call return err.
func (s *Storage) FailSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// FailDelete makes DeleteFile of file return err.
func (s *Storage) FailDelete(file string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteErr[file] = err
}

func (s *Storage) SaveFile(_ context.Context, file string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.files[file] = true
	return file, nil
}

func (s *Storage) DeleteFile(_ context.Context, file string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.deleteErr[file]; err != nil {
		return err
	}
	delete(s.files, file)
	s.Deleted = append(s.Deleted, file)
	return nil
}

func (s *Storage) Has(file string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[file]
}
