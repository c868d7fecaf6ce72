package postgres

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	faster "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/central-university-dev/go-hackathon-tracker/internal/database"
	"github.com/central-university-dev/go-hackathon-tracker/pkg/txs"
)

const collectionsTable = "collections"

type Store struct {
	db        *database.PostgresDB
	txManager *txs.TxManager
	builder   sq.StatementBuilderType
	logger    *slog.Logger
}

func NewStore(db *database.PostgresDB, txManager *txs.TxManager, logger *slog.Logger) *Store {
	return &Store{
		db:        db,
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:    logger,
	}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.selectValue(ctx, key, false)
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	querier := txs.GetQuerier(ctx, s.db.Pool)

	query, args, err := s.builder.
		Insert(collectionsTable).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return faster.Wrap(err, "ошибка при построении запроса")
	}

	if _, err := querier.Exec(ctx, query, args...); err != nil {
		return faster.Wrapf(err, "ошибка при сохранении коллекции %s", key)
	}

	return nil
}

// Update сериализует изменения ключа advisory-блокировкой транзакции:
// FOR UPDATE не защищает ещё не созданную строку.
func (s *Store) Update(ctx context.Context, key string, fn func(current []byte, found bool) ([]byte, error)) error {
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		querier := txs.GetQuerier(txCtx, s.db.Pool)

		if _, err := querier.Exec(txCtx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
			return faster.Wrapf(err, "ошибка при блокировке коллекции %s", key)
		}

		current, found, err := s.selectValue(txCtx, key, true)
		if err != nil {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		return s.Set(txCtx, key, next)
	})
}

func (s *Store) selectValue(ctx context.Context, key string, forUpdate bool) ([]byte, bool, error) {
	querier := txs.GetQuerier(ctx, s.db.Pool)

	builder := s.builder.
		Select("value").
		From(collectionsTable).
		Where(sq.Eq{"key": key})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, false, faster.Wrap(err, "ошибка при построении запроса")
	}

	var value []byte

	if err := querier.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}

		return nil, false, faster.Wrapf(err, "ошибка при чтении коллекции %s", key)
	}

	return value, true, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.db.Close()
	return nil
}
