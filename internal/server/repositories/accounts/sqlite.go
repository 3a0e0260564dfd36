package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fishfarmer/internal/common"
	"github.com/dmitrijs2005/fishfarmer/internal/dbx"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) All(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT username, email, password_hash FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	list := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.Username, &a.Email, &a.PasswordHash); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}

	return list, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, account *models.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (username, email, password_hash) VALUES (?, ?, ?)`,
		account.Username, account.Email, account.PasswordHash)
	if err != nil {
		var se *sqlite.Error
		if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			switch {
			case strings.Contains(se.Error(), "accounts.username"):
				return common.ErrDuplicateUsername
			case strings.Contains(se.Error(), "accounts.email"):
				return common.ErrDuplicateEmail
			}
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}
