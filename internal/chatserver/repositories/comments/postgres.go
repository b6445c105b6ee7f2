package comments

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
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {

	query :=
		`INSERT INTO comments (post_id, content, author_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		comment.PostID, comment.Content, comment.AuthorID).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func scanComment(row interface{ Scan(dest ...any) error }) (*models.Comment, error) {
	comment := &models.Comment{}
	err := row.Scan(&comment.ID, &comment.PostID, &comment.Content,
		&comment.AuthorID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query :=
		`SELECT id, post_id, content, author_id, created_at, updated_at
		 FROM comments WHERE id = $1
		 `

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func (r *PostgresRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	query :=
		`SELECT id, post_id, content, author_id, created_at, updated_at
		 FROM comments WHERE post_id = $1
		 ORDER BY created_at ASC, id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, comment *models.Comment) error {
	query :=
		`UPDATE comments SET content = $2, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, comment.ID, comment.Content)
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

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
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
