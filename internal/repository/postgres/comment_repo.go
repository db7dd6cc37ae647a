package postgres

import (
	"context"

	"bugtrack/internal/models"
	"bugtrack/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepo struct{ db *pgxpool.Pool }

func NewCommentRepo(db *pgxpool.Pool) repository.CommentRepository { return &CommentRepo{db: db} }

const commentCols = `
	c.id, c.content, c.ticket_id::text, c.user_id::text, c.created_at, c.updated_at,
	COALESCE(TRIM(u.first_name || ' ' || u.last_name), '')`

const commentFrom = `
	FROM comments c
	JOIN users u ON u.id = c.user_id`

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.Content, &c.TicketID, &c.UserID, &c.CreatedAt, &c.UpdatedAt, &c.UserName)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) Create(ctx context.Context, c *models.Comment) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO comments (content, ticket_id, user_id)
		VALUES ($1,$2,$3)
		RETURNING id, created_at, updated_at`,
		c.Content, c.TicketID, c.UserID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CommentRepo) Get(ctx context.Context, id string) (*models.Comment, error) {
	c, err := scanComment(r.db.QueryRow(ctx,
		`SELECT`+commentCols+commentFrom+` WHERE c.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepo) ListByTicket(ctx context.Context, ticketID string) ([]models.Comment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT`+commentCols+commentFrom+`
		 WHERE c.ticket_id = $1
		 ORDER BY c.created_at ASC`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Update replaces content only; author and ticket are immutable.
func (r *CommentRepo) Update(ctx context.Context, c *models.Comment) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE comments SET content=$1, updated_at=now()
		WHERE id=$2`,
		c.Content, c.ID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CommentRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CommentRepo) CountByTicket(ctx context.Context, ticketID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE ticket_id=$1`, ticketID).Scan(&n)
	return n, err
}
