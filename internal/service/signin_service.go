package service

import (
	"context"
	"strings"

	"accountd/internal/model"
	appErr "accountd/internal/pkg/errors"
)

type SignInService struct {
	accounts AccountStore
	hasher   CredentialHasher
}

func NewSignInService(accounts AccountStore, hasher CredentialHasher) *SignInService {
	return &SignInService{accounts: accounts, hasher: hasher}
}

// SignIn checks the supplied credentials against a stored, verified account
// and returns its sanitized profile. An unknown email yields the same
// generic answer as a wrong password would for it; an unverified account
// gets a distinct answer regardless of password correctness.
func (s *SignInService) SignIn(ctx context.Context, email, plainPassword string) (*model.Profile, error) {
	email = strings.TrimSpace(email)
	plainPassword = strings.TrimSpace(plainPassword)
	if email == "" || plainPassword == "" {
		return nil, appErr.WithMessage(appErr.ErrInvalid, "empty credentials supplied")
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.WithMessage(appErr.ErrUnauthorized, "invalid credentials entered")
		}
		return nil, err
	}

	if !account.Verified {
		return nil, appErr.WithMessage(appErr.ErrNotVerified, "email has not been verified yet; check your inbox")
	}

	ok, err := s.hasher.Compare(account.PasswordHash, plainPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErr.WithMessage(appErr.ErrUnauthorized, "invalid password entered")
	}
	return account.Profile(), nil
}
