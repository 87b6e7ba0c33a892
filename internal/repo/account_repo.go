package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"accountd/internal/model"
	"accountd/internal/pkg/dbutil"
	appErr "accountd/internal/pkg/errors"
)

var accountFields = []string{"id", "name", "email", "password_hash", "date_of_birth", "verified", "ctime", "mtime"}

type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) Create(ctx context.Context, account *model.Account) error {
	data := map[string]interface{}{
		"id":            account.ID,
		"name":          account.Name,
		"email":         account.Email,
		"password_hash": account.PasswordHash,
		"date_of_birth": account.DateOfBirth,
		"verified":      account.Verified,
		"ctime":         account.Ctime,
		"mtime":         account.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("accounts", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *AccountRepo) GetByID(ctx context.Context, accountID string) (*model.Account, error) {
	return r.getOne(ctx, map[string]interface{}{"id": accountID})
}

func (r *AccountRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Account, error) {
	sqlStr, args, err := builder.BuildSelect("accounts", where, accountFields)
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
	var account model.Account
	if err := rows.Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash,
		&account.DateOfBirth, &account.Verified, &account.Ctime, &account.Mtime); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) MarkVerified(ctx context.Context, accountID string, mtime int64) error {
	where := map[string]interface{}{"id": accountID}
	update := map[string]interface{}{
		"verified": true,
		"mtime":    mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("accounts", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) Delete(ctx context.Context, accountID string) error {
	sqlStr, args, err := builder.BuildDelete("accounts", map[string]interface{}{"id": accountID})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
