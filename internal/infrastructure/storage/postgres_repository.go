package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"newspulse/internal/domain"
	"newspulse/internal/ports"
)

// PostgresRepository persists finished harvests into Postgres for history
// and audit. The pipeline runs fully without it; it only sees completed
// article collections and never feeds back into harvesting.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.HarvestRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveHarvest stores one harvest row plus a row per article and returns the
// generated harvest ID.
func (r *PostgresRepository) SaveHarvest(ctx context.Context, company string, articles []domain.Article) (string, error) {
	if r.db == nil {
		return "", nil
	}

	harvestID := uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = r.builder.
		Insert("harvests").
		Columns("id", "company", "article_count").
		Values(harvestID, company, len(articles)).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return "", fmt.Errorf("insert harvest: %w", err)
	}

	insert := r.builder.
		Insert("harvest_articles").
		Columns("harvest_id", "url", "title", "summary", "sentiment", "topics", "source", "published_at")
	for _, article := range articles {
		insert = insert.Values(
			harvestID,
			article.URL,
			article.Title,
			article.Summary,
			string(article.Sentiment),
			pq.StringArray(article.Topics),
			article.Source,
			article.PublishedAt,
		)
	}
	if len(articles) > 0 {
		if _, err := insert.RunWith(tx).ExecContext(ctx); err != nil {
			return "", fmt.Errorf("insert harvest articles: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit harvest: %w", err)
	}

	return harvestID, nil
}

// RecentHarvests lists the latest harvest IDs for a company, newest first.
func (r *PostgresRepository) RecentHarvests(ctx context.Context, company string, limit uint64) ([]string, error) {
	if r.db == nil {
		return nil, nil
	}

	rows, err := r.builder.
		Select("id").
		From("harvests").
		Where(sq.Eq{"company": company}).
		OrderBy("created_at DESC").
		Limit(limit).
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query harvests: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan harvest id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return ids, nil
}
