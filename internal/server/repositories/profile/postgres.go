package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bibe1s/JRSolisPortfolio/internal/common"
	"github.com/bibe1s/JRSolisPortfolio/internal/dbx"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Current(ctx context.Context) (*models.StoredProfile, error) {
	return r.current(ctx, r.db)
}

func (r *PostgresRepository) Insert(ctx context.Context, doc *models.Profile) (int64, error) {
	return r.insert(ctx, r.db, doc)
}

// Save reads the current row and replaces its document inside one
// transaction, so the row id cannot change between the read and the write.
// On an empty store it inserts instead.
func (r *PostgresRepository) Save(ctx context.Context, doc *models.Profile) (int64, error) {
	var id int64

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		row, err := r.current(ctx, tx)
		if errors.Is(err, common.ErrorNotFound) {
			id, err = r.insert(ctx, tx, doc)
			return err
		}
		if err != nil {
			return err
		}

		id = row.ID
		return r.update(ctx, tx, row.ID, doc)
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PostgresRepository) current(ctx context.Context, q dbx.DBTX) (*models.StoredProfile, error) {
	query :=
		`SELECT id, data, updated_at FROM portfolio
		 ORDER BY id DESC
		 LIMIT 1
		 `

	row := &models.StoredProfile{}
	var raw []byte

	err := q.QueryRowContext(ctx, query).Scan(&row.ID, &raw, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	doc := &models.Profile{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode stored document: %w", err)
	}
	row.Document = doc

	return row, nil
}

func (r *PostgresRepository) insert(ctx context.Context, q dbx.DBTX, doc *models.Profile) (int64, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("encode document: %w", err)
	}

	query :=
		`INSERT INTO portfolio (data)
		 VALUES ($1)
		 RETURNING id
		 `

	var id int64
	if err := q.QueryRowContext(ctx, query, raw).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) update(ctx context.Context, q dbx.DBTX, id int64, doc *models.Profile) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	query :=
		`UPDATE portfolio
		 SET data = $1, updated_at = NOW()
		 WHERE id = $2
		 `

	res, err := q.ExecContext(ctx, query, raw, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
