package metadata

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophcontacts/internal/dbx"
)

// TokenStore persists the session token together with the email of the
// last account that signed in, so the login prompt can offer it again.
type TokenStore struct {
	db   *sql.DB
	repo *SQLiteRepository
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db, repo: NewSQLiteRepository(db)}
}

// Load returns the stored token, or "" when there is none.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Save writes the token and the email in one transaction. An empty email
// leaves the previous one in place.
func (s *TokenStore) Save(ctx context.Context, token, email string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Set(ctx, KeyToken, []byte(token)); err != nil {
			return err
		}
		if email == "" {
			return nil
		}
		return repo.Set(ctx, KeyLastEmail, []byte(email))
	})
}

// Clear forgets the token. The last email survives a logout.
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyToken)
}

func (s *TokenStore) LastEmail(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeyLastEmail)
	if err != nil {
		return "", err
	}
	return string(v), nil
}
