package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"accountd/internal/model"
	appErr "accountd/internal/pkg/errors"
	"accountd/internal/pkg/timeutil"
)

var (
	nameRegex  = regexp.MustCompile(`^[A-Za-z ]*$`)
	emailRegex = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)
)

const dateOfBirthLayout = "2006-01-02"

type RegistrationService struct {
	accounts AccountStore
	pendings VerificationStore
	hasher   CredentialHasher
	sender   EmailSender
	baseURL  string
	tokenTTL time.Duration
}

func NewRegistrationService(accounts AccountStore, pendings VerificationStore, hasher CredentialHasher, sender EmailSender, baseURL string, tokenTTL time.Duration) *RegistrationService {
	return &RegistrationService{
		accounts: accounts,
		pendings: pendings,
		hasher:   hasher,
		sender:   sender,
		baseURL:  strings.TrimRight(baseURL, "/"),
		tokenTTL: tokenTTL,
	}
}

// Register runs the signup workflow: validate, reject duplicates, create the
// unverified account, issue a pending verification and mail the link. The
// terminal success state is "pending verification", not a usable account.
func (s *RegistrationService) Register(ctx context.Context, name, email, password, dateOfBirth string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	dateOfBirth = strings.TrimSpace(dateOfBirth)

	if name == "" || email == "" || password == "" || dateOfBirth == "" {
		return "", appErr.WithMessage(appErr.ErrInvalid, "empty input fields")
	}
	if !nameRegex.MatchString(name) {
		return "", appErr.WithMessage(appErr.ErrInvalid, "invalid name entered")
	}
	if !emailRegex.MatchString(email) {
		return "", appErr.WithMessage(appErr.ErrInvalid, "invalid email entered")
	}
	if _, err := time.Parse(dateOfBirthLayout, dateOfBirth); err != nil {
		return "", appErr.WithMessage(appErr.ErrInvalid, "invalid date of birth entered")
	}
	if len(password) < 8 {
		return "", appErr.WithMessage(appErr.ErrInvalid, "password is too short")
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return "", appErr.WithMessage(appErr.ErrConflict, "an account with the provided email already exists")
	} else if !appErr.IsNotFound(err) {
		return "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	now := timeutil.NowUnix()
	account := &model.Account{
		ID:           newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		DateOfBirth:  dateOfBirth,
		Verified:     false,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		// The unique index on email catches the read-then-create race.
		if errors.Is(err, appErr.ErrConflict) {
			return "", appErr.WithMessage(appErr.ErrConflict, "an account with the provided email already exists")
		}
		return "", err
	}

	if err := s.issueVerification(ctx, account); err != nil {
		return "", err
	}
	return account.ID, nil
}

// issueVerification mints the raw token (random nonce plus account id),
// persists only its hash and mails the link. The raw token lives nowhere
// but the link.
func (s *RegistrationService) issueVerification(ctx context.Context, account *model.Account) error {
	rawToken := uuid.NewString() + account.ID
	tokenHash, err := s.hasher.Hash(rawToken)
	if err != nil {
		return err
	}
	now := timeutil.NowUnix()
	pending := &model.PendingVerification{
		AccountID: account.ID,
		TokenHash: tokenHash,
		Ctime:     now,
		ExpiresAt: now + int64(s.tokenTTL/time.Second),
	}
	if err := s.pendings.Create(ctx, pending); err != nil {
		return err
	}
	link := fmt.Sprintf("%s/api/v1/auth/verify/%s/%s", s.baseURL, account.ID, rawToken)
	return s.sender.Send(account.Email, link)
}
