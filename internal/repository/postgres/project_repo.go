package postgres

import (
	"context"

	"bugtrack/internal/models"
	"bugtrack/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepo struct{ db *pgxpool.Pool }

func NewProjectRepo(db *pgxpool.Pool) repository.ProjectRepository { return &ProjectRepo{db: db} }

// Every project row is read with its creator name, member id set and a
// live ticket count, so DTO assembly never needs follow-up queries.
const projectCols = `
	p.id, p.name, p.description, COALESCE(p.created_by::text, ''), p.created_at, p.updated_at,
	COALESCE(TRIM(u.first_name || ' ' || u.last_name), ''),
	(SELECT COALESCE(array_agg(pm.user_id::text ORDER BY pm.user_id), '{}')
	   FROM project_members pm WHERE pm.project_id = p.id),
	(SELECT COUNT(*) FROM tickets t WHERE t.project_id = p.id)`

const projectFrom = `
	FROM projects p
	LEFT JOIN users u ON u.id = p.created_by`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		&p.CreatedByName, &p.MemberIDs, &p.TicketCount,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts the project and its creator's membership row in one
// transaction, so a project never exists without its first team member.
func (r *ProjectRepo) Create(ctx context.Context, p *models.Project) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO projects (name, description, created_by)
		VALUES ($1,$2,$3)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Description, nullIfEmpty(p.CreatedBy)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}
	if p.CreatedBy != "" {
		if _, err := tx.Exec(ctx, `
			INSERT INTO project_members (project_id, user_id)
			VALUES ($1,$2) ON CONFLICT DO NOTHING`,
			p.ID, p.CreatedBy); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ProjectRepo) Get(ctx context.Context, id string) (*models.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx,
		`SELECT`+projectCols+projectFrom+` WHERE p.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT`+projectCols+projectFrom+` ORDER BY p.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

// ListByMember answers "projects where the user is a team member" straight
// from the join table.
func (r *ProjectRepo) ListByMember(ctx context.Context, userID string) ([]models.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT`+projectCols+projectFrom+`
		 JOIN project_members m ON m.project_id = p.id
		 WHERE m.user_id = $1
		 ORDER BY p.created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

func collectProjects(rows pgx.Rows) ([]models.Project, error) {
	var out []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields only; relations are untouched.
func (r *ProjectRepo) Update(ctx context.Context, p *models.Project) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE projects SET name=$1, description=$2, updated_at=now()
		WHERE id=$3`,
		p.Name, p.Description, p.ID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete discharges the cascade explicitly: comments of the project's
// tickets, then assignment rows, tickets, membership rows, and finally the
// project itself, all in one transaction.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	steps := []string{
		`DELETE FROM comments WHERE ticket_id IN (SELECT id FROM tickets WHERE project_id=$1)`,
		`DELETE FROM ticket_assignees WHERE ticket_id IN (SELECT id FROM tickets WHERE project_id=$1)`,
		`DELETE FROM tickets WHERE project_id=$1`,
		`DELETE FROM project_members WHERE project_id=$1`,
	}
	for _, q := range steps {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return err
		}
	}
	ct, err := tx.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

// AddMember is an idempotent insert into the membership join table, the
// single source of truth for the relation.
func (r *ProjectRepo) AddMember(ctx context.Context, projectID, userID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id)
		VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		projectID, userID)
	return err
}

func (r *ProjectRepo) RemoveMember(ctx context.Context, projectID, userID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM project_members WHERE project_id=$1 AND user_id=$2`,
		projectID, userID)
	return err
}
