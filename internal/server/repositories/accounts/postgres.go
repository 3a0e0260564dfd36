package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fishfarmer/internal/common"
	"github.com/dmitrijs2005/fishfarmer/internal/dbx"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation          = "23505"
	usernameUniqueConstraint = "accounts_username_key"
	emailUniqueConstraint    = "accounts_email_key"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) All(ctx context.Context) ([]models.Account, error) {
	query :=
		`SELECT username, email, password_hash FROM accounts
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.Username, &a.Email, &a.PasswordHash); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

// Create inserts account. The table's unique constraints back up the
// service-level checks; a violation maps to the matching duplicate error.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) error {
	query :=
		`INSERT INTO accounts (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, account.Username, account.Email, account.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case usernameUniqueConstraint:
				return common.ErrDuplicateUsername
			case emailUniqueConstraint:
				return common.ErrDuplicateEmail
			}
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
