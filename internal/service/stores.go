package service

import (
	"context"

	"accountd/internal/model"
)

// AccountStore is the persistence capability the workflows need for
// account records. *repo.AccountRepo satisfies it.
type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, accountID string) (*model.Account, error)
	MarkVerified(ctx context.Context, accountID string, mtime int64) error
	Delete(ctx context.Context, accountID string) error
}

// VerificationStore persists pending-verification records.
// *repo.VerificationRepo satisfies it.
type VerificationStore interface {
	Create(ctx context.Context, pending *model.PendingVerification) error
	LatestByAccountID(ctx context.Context, accountID string) (*model.PendingVerification, error)
	DeleteByAccountID(ctx context.Context, accountID string) error
	ListExpired(ctx context.Context, cutoff int64) ([]*model.PendingVerification, error)
}

// CredentialHasher hashes and checks opaque secrets (passwords and
// verification tokens alike). *password.Hasher satisfies it.
type CredentialHasher interface {
	Hash(secret string) (string, error)
	Compare(hash, secret string) (bool, error)
}

// EmailSender dispatches a verification link to an address.
type EmailSender interface {
	Send(to, link string) error
}
