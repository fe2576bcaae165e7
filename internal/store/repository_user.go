package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/photark/albumsync/internal/logger"
)

// userRepository is the PostgreSQL-backed implementation of
// [UserRepository]. It resolves the configured owner filter (a raw user ID
// or an e-mail address) to the store's user identifier.
type userRepository struct {
	db         *DB
	usersTable string
	logger     *logger.Logger
}

// NewUserRepository constructs a [UserRepository] over the users relation
// detected during schema probing. An empty usersTable produces a
// pass-through repository that returns filters unchanged, so deployments
// without a readable users relation still work with raw IDs.
func NewUserRepository(db *DB, usersTable string, logger *logger.Logger) UserRepository {
	logger.Debug().Str("users_table", usersTable).Msg("creating user repository")
	return &userRepository{
		db:         db,
		usersTable: usersTable,
		logger:     logger,
	}
}

// FindUserID maps filter to a user ID by matching either the ID itself or
// the e-mail column. Returns [ErrNoUserWasFound] when nothing matches.
func (r *userRepository) FindUserID(ctx context.Context, filter string) (string, error) {
	log := logger.FromContext(ctx)

	if r.usersTable == "" {
		return filter, nil
	}

	query, args, err := buildFindUserQuery(r.usersTable, filter)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserID").Msg("failed to build user lookup query")
		return "", err
	}

	var userID string
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserID").Msg("failed to execute user lookup query")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return userID, nil
}
