package service

import (
	"context"

	appErr "accountd/internal/pkg/errors"
	"accountd/internal/pkg/timeutil"
)

type VerificationService struct {
	accounts AccountStore
	pendings VerificationStore
	hasher   CredentialHasher
}

func NewVerificationService(accounts AccountStore, pendings VerificationStore, hasher CredentialHasher) *VerificationService {
	return &VerificationService{accounts: accounts, pendings: pendings, hasher: hasher}
}

// Verify resolves an (accountID, rawToken) pair against the stored pending
// record. nil means the account is now verified. A missing record covers
// both unknown ids and already-verified accounts; the two are deliberately
// indistinguishable. An expired record triggers the compensating delete of
// the record and its account. A token mismatch leaves the record intact so
// the correct link still works.
func (s *VerificationService) Verify(ctx context.Context, accountID, rawToken string) error {
	if accountID == "" || rawToken == "" {
		return appErr.WithMessage(appErr.ErrInvalid, "missing verification details")
	}

	pending, err := s.pendings.LatestByAccountID(ctx, accountID)
	if err != nil {
		if appErr.IsNotFound(err) {
			return appErr.WithMessage(appErr.ErrNotFound, "account record doesn't exist or has been verified already; please sign up or sign in")
		}
		return err
	}

	now := timeutil.NowUnix()
	if now >= pending.ExpiresAt {
		if err := s.pendings.DeleteByAccountID(ctx, accountID); err != nil {
			return err
		}
		if err := s.accounts.Delete(ctx, accountID); err != nil {
			return err
		}
		return appErr.WithMessage(appErr.ErrExpired, "verification link has expired; please sign up again")
	}

	ok, err := s.hasher.Compare(pending.TokenHash, rawToken)
	if err != nil {
		return err
	}
	if !ok {
		return appErr.WithMessage(appErr.ErrInvalid, "invalid verification details passed; check your inbox")
	}

	if err := s.accounts.MarkVerified(ctx, accountID, now); err != nil {
		return err
	}
	// If this delete fails the account is already verified and the stale
	// record falls to the cleanup job; no security consequence.
	return s.pendings.DeleteByAccountID(ctx, accountID)
}

// PurgeExpired applies the expiry compensating action to links that were
// never clicked: every expired pending record is removed together with its
// still-unverified account. Verified accounts are left alone.
func (s *VerificationService) PurgeExpired(ctx context.Context) (int, error) {
	expired, err := s.pendings.ListExpired(ctx, timeutil.NowUnix())
	if err != nil {
		return 0, err
	}
	purged := 0
	for _, pending := range expired {
		if err := s.pendings.DeleteByAccountID(ctx, pending.AccountID); err != nil {
			return purged, err
		}
		account, err := s.accounts.GetByID(ctx, pending.AccountID)
		if err != nil {
			if appErr.IsNotFound(err) {
				continue
			}
			return purged, err
		}
		if account.Verified {
			continue
		}
		if err := s.accounts.Delete(ctx, pending.AccountID); err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}
