package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"accountd/internal/model"
	"accountd/internal/pkg/dbutil"
	appErr "accountd/internal/pkg/errors"
)

var verificationFields = []string{"account_id", "token_hash", "ctime", "expires_at"}

type VerificationRepo struct {
	db *sql.DB
}

func NewVerificationRepo(db *sql.DB) *VerificationRepo {
	return &VerificationRepo{db: db}
}

func (r *VerificationRepo) Create(ctx context.Context, pending *model.PendingVerification) error {
	data := map[string]interface{}{
		"account_id": pending.AccountID,
		"token_hash": pending.TokenHash,
		"ctime":      pending.Ctime,
		"expires_at": pending.ExpiresAt,
	}
	sqlStr, args, err := builder.BuildInsert("pending_verifications", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// LatestByAccountID returns the most recent pending record for the account;
// that record is the canonical one when several exist.
func (r *VerificationRepo) LatestByAccountID(ctx context.Context, accountID string) (*model.PendingVerification, error) {
	where := map[string]interface{}{
		"account_id": accountID,
		"_orderby":   "ctime desc",
		"_limit":     []uint{0, 1},
	}
	sqlStr, args, err := builder.BuildSelect("pending_verifications", where, verificationFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var pending model.PendingVerification
	if err := rows.Scan(&pending.AccountID, &pending.TokenHash, &pending.Ctime, &pending.ExpiresAt); err != nil {
		return nil, err
	}
	return &pending, nil
}

func (r *VerificationRepo) DeleteByAccountID(ctx context.Context, accountID string) error {
	sqlStr, args, err := builder.BuildDelete("pending_verifications", map[string]interface{}{"account_id": accountID})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *VerificationRepo) ListExpired(ctx context.Context, cutoff int64) ([]*model.PendingVerification, error) {
	where := map[string]interface{}{
		"expires_at <=": cutoff,
		"_orderby":      "expires_at asc",
	}
	sqlStr, args, err := builder.BuildSelect("pending_verifications", where, verificationFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.PendingVerification
	for rows.Next() {
		var pending model.PendingVerification
		if err := rows.Scan(&pending.AccountID, &pending.TokenHash, &pending.Ctime, &pending.ExpiresAt); err != nil {
			return nil, err
		}
		out = append(out, &pending)
	}
	return out, rows.Err()
}
