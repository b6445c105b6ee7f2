package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/2003dinijay/ChatStack/internal/chatserver/models"
	"github.com/2003dinijay/ChatStack/internal/common"
	"github.com/2003dinijay/ChatStack/internal/dbx"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {

	query :=
		`INSERT INTO posts (title, content, image_key, author_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.ImageKey, post.AuthorID).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func scanPost(row interface{ Scan(dest ...any) error }) (*models.Post, error) {
	post := &models.Post{}
	var imageKey sql.NullString

	err := row.Scan(&post.ID, &post.Title, &post.Content, &imageKey,
		&post.AuthorID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if imageKey.Valid {
		post.ImageKey = &imageKey.String
	}

	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query :=
		`SELECT id, title, content, image_key, author_id, created_at, updated_at
		 FROM posts WHERE id = $1
		 `

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Post, error) {
	query :=
		`SELECT id, title, content, image_key, author_id, created_at, updated_at
		 FROM posts ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	query :=
		`UPDATE posts SET title = $2, content = $3, image_key = $4, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, post.ID, post.Title, post.Content, post.ImageKey)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// Delete removes a post and its comments in one transaction.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if affected == 0 {
			return common.ErrNotFound
		}

		return nil
	})
}
