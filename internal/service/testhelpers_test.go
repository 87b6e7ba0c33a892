package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"accountd/internal/model"
	appErr "accountd/internal/pkg/errors"
	"accountd/internal/pkg/password"
	"accountd/internal/pkg/timeutil"
	"accountd/internal/service"
)

func seedVerifiedAccount(t *testing.T, accounts *memAccounts, accountID, email, passwordHash string) {
	t.Helper()
	now := timeutil.NowUnix()
	require.NoError(t, accounts.Create(context.Background(), &model.Account{
		ID:           accountID,
		Name:         "Ann Lee",
		Email:        email,
		PasswordHash: passwordHash,
		DateOfBirth:  "1990-01-01",
		Verified:     true,
		Ctime:        now,
		Mtime:        now,
	}))
}

// memAccounts is an in-memory AccountStore used by the workflow tests.
type memAccounts struct {
	mu        sync.Mutex
	byID      map[string]*model.Account
	createErr error
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: map[string]*model.Account{}}
}

func (m *memAccounts) Create(ctx context.Context, account *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.byID {
		if existing.Email == account.Email {
			return appErr.ErrConflict
		}
	}
	clone := *account
	m.byID[account.ID] = &clone
	return nil
}

func (m *memAccounts) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.byID {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (m *memAccounts) GetByID(ctx context.Context, accountID string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.byID[accountID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *account
	return &clone, nil
}

func (m *memAccounts) MarkVerified(ctx context.Context, accountID string, mtime int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.byID[accountID]
	if !ok {
		return appErr.ErrNotFound
	}
	account.Verified = true
	account.Mtime = mtime
	return nil
}

func (m *memAccounts) Delete(ctx context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, accountID)
	return nil
}

func (m *memAccounts) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// memPendings is an in-memory VerificationStore.
type memPendings struct {
	mu        sync.Mutex
	items     []*model.PendingVerification
	createErr error
}

func newMemPendings() *memPendings {
	return &memPendings{}
}

func (m *memPendings) Create(ctx context.Context, pending *model.PendingVerification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	clone := *pending
	m.items = append(m.items, &clone)
	return nil
}

func (m *memPendings) LatestByAccountID(ctx context.Context, accountID string) (*model.PendingVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *model.PendingVerification
	for _, item := range m.items {
		if item.AccountID != accountID {
			continue
		}
		if latest == nil || item.Ctime >= latest.Ctime {
			latest = item
		}
	}
	if latest == nil {
		return nil, appErr.ErrNotFound
	}
	clone := *latest
	return &clone, nil
}

func (m *memPendings) DeleteByAccountID(ctx context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	for _, item := range m.items {
		if item.AccountID != accountID {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

func (m *memPendings) ListExpired(ctx context.Context, cutoff int64) ([]*model.PendingVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.PendingVerification
	for _, item := range m.items {
		if item.ExpiresAt <= cutoff {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *memPendings) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// captureSender records the last verification mail instead of sending it.
type captureSender struct {
	to    string
	link  string
	calls int
	err   error
}

func (s *captureSender) Send(to, link string) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.to = to
	s.link = link
	return nil
}

// countingHasher wraps the real bcrypt hasher so tests can assert that
// hashing is not attempted before validation and duplicate checks pass.
type countingHasher struct {
	inner     *password.Hasher
	hashCalls int
}

func newCountingHasher() *countingHasher {
	return &countingHasher{inner: password.NewHasher(bcrypt.MinCost)}
}

func (h *countingHasher) Hash(secret string) (string, error) {
	h.hashCalls++
	return h.inner.Hash(secret)
}

func (h *countingHasher) Compare(hash, secret string) (bool, error) {
	return h.inner.Compare(hash, secret)
}

var _ service.AccountStore = (*memAccounts)(nil)
var _ service.VerificationStore = (*memPendings)(nil)
var _ service.EmailSender = (*captureSender)(nil)
var _ service.CredentialHasher = (*countingHasher)(nil)
