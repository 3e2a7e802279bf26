package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/dmitrijs2005/licensekeeper/internal/dbx"
	"github.com/dmitrijs2005/licensekeeper/internal/server/models"
	"github.com/dmitrijs2005/licensekeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/licensekeeper/internal/server/repositories/licenses"
)

// memStore mimics the two tables and their unique/foreign key constraints.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	licenses map[int64]*models.License
	nextID   int64

	getErr    error
	updateErr error
	updates   int
	// beforeUpdate runs at the start of UpdateLastChecked, unlocked.
	beforeUpdate func()
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]*models.Account{},
		licenses: map[int64]*models.License{},
	}
}

type fakeManager struct{ s *memStore }

func (m fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m fakeManager) Accounts(dbx.DBTX) accounts.Repository      { return fakeAccounts{m.s} }
func (m fakeManager) Licenses(dbx.DBTX) licenses.Repository      { return fakeLicenses{m.s} }

type fakeAccounts struct{ s *memStore }

func (f fakeAccounts) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.accounts[a.UserName]; ok {
		return nil, common.ErrDuplicateUsername
	}
	f.s.nextID++
	cp := *a
	cp.ID = f.s.nextID
	f.s.accounts[a.UserName] = &cp
	return &cp, nil
}

func (f fakeAccounts) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.accounts[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

type fakeLicenses struct{ s *memStore }

func (f fakeLicenses) Create(_ context.Context, l *models.License) (*models.License, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	found := false
	for _, a := range f.s.accounts {
		if a.ID == l.AccountID {
			found = true
		}
	}
	if !found {
		return nil, common.ErrAccountNotFound
	}
	if _, ok := f.s.licenses[l.AccountID]; ok {
		return nil, common.ErrDuplicateLicense
	}
	f.s.nextID++
	cp := *l
	cp.ID = f.s.nextID
	f.s.licenses[l.AccountID] = &cp
	return &cp, nil
}

func (f fakeLicenses) GetByAccount(_ context.Context, accountID int64) (*models.License, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.getErr != nil {
		return nil, f.s.getErr
	}
	l, ok := f.s.licenses[accountID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *l
	if l.LastChecked != nil {
		lc := *l.LastChecked
		cp.LastChecked = &lc
	}
	return &cp, nil
}

func (f fakeLicenses) UpdateLastChecked(_ context.Context, licenseID int64, at time.Time) (bool, error) {
	if f.s.beforeUpdate != nil {
		f.s.beforeUpdate()
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.updateErr != nil {
		return false, f.s.updateErr
	}
	for _, l := range f.s.licenses {
		if l.ID != licenseID {
			continue
		}
		if l.LastChecked != nil && !l.LastChecked.Before(at) {
			return false, nil
		}
		t := at
		l.LastChecked = &t
		f.s.updates++
		return true, nil
	}
	return false, nil
}

func (s *memStore) license(accountID int64) *models.License {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.licenses[accountID]
}

// setLastChecked rewinds bookkeeping to simulate an older check.
func (s *memStore) setLastChecked(accountID int64, at *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.licenses[accountID].LastChecked = at
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type countingRecorder struct {
	mu     sync.Mutex
	events map[string]int
}

func (r *countingRecorder) LicenseEvent(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = map[string]int{}
	}
	r.events[e]++
}

func (r *countingRecorder) count(e string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[e]
}

// plainHasher keeps tests fast; bcrypt is covered in cryptox.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }
func (plainHasher) Check(p, h string) bool      { return h == "h:"+p }
