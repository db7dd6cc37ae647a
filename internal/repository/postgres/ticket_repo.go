package postgres

import (
	"context"
	"fmt"
	"strings"

	"bugtrack/internal/models"
	"bugtrack/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepo struct{ db *pgxpool.Pool }

func NewTicketRepo(db *pgxpool.Pool) repository.TicketRepository { return &TicketRepo{db: db} }

// Ticket rows are read with project name, creator name, assignee id set
// and a live comment count in a single statement.
const ticketCols = `
	t.id, t.title, t.description, t.project_id::text, COALESCE(t.created_by::text, ''),
	t.priority, t.status, t.type, t.time_estimate, t.created_at, t.updated_at,
	p.name,
	COALESCE(TRIM(u.first_name || ' ' || u.last_name), ''),
	(SELECT COALESCE(array_agg(ta.user_id::text ORDER BY ta.user_id), '{}')
	   FROM ticket_assignees ta WHERE ta.ticket_id = t.id),
	(SELECT COUNT(*) FROM comments c WHERE c.ticket_id = t.id)`

const ticketFrom = `
	FROM tickets t
	JOIN projects p ON p.id = t.project_id
	LEFT JOIN users u ON u.id = t.created_by`

func scanTicket(row pgx.Row) (*models.Ticket, error) {
	var t models.Ticket
	var prio, status, typ string
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.ProjectID, &t.CreatedBy,
		&prio, &status, &typ, &t.TimeEstimate, &t.CreatedAt, &t.UpdatedAt,
		&t.ProjectName, &t.CreatedByName, &t.AssigneeIDs, &t.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	t.Priority = models.Priority(prio)
	t.Status = models.Status(status)
	t.Type = models.TicketType(typ)
	return &t, nil
}

func (r *TicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO tickets (title, description, project_id, created_by, priority, status, type, time_estimate)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at`,
		t.Title, t.Description, t.ProjectID, nullIfEmpty(t.CreatedBy),
		string(t.Priority), string(t.Status), string(t.Type), t.TimeEstimate).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TicketRepo) Get(ctx context.Context, id string) (*models.Ticket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx,
		`SELECT`+ticketCols+ticketFrom+` WHERE t.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *TicketRepo) List(ctx context.Context, f repository.TicketFilter) ([]models.Ticket, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	whereSQL, args := buildTicketWhere(f)
	sortCol := sanitizeSort(f.Sort, "created_at")
	sortOrd := sanitizeOrder(f.Order, "asc")

	sql := fmt.Sprintf(`SELECT%s%s
		%s
		ORDER BY t.%s %s
		LIMIT $%d OFFSET $%d`,
		ticketCols, ticketFrom, whereSQL, sortCol, sortOrd, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Count returns the total for the same filter set, for pagination headers.
func (r *TicketRepo) Count(ctx context.Context, f repository.TicketFilter) (int, error) {
	whereSQL, args := buildTicketWhere(f)
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets t `+whereSQL, args...).Scan(&n)
	return n, err
}

// Update replaces the mutable fields. project_id is immutable after
// creation and is deliberately absent from the statement.
func (r *TicketRepo) Update(ctx context.Context, t *models.Ticket) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE tickets SET
			title=$1, description=$2, priority=$3, status=$4, type=$5, time_estimate=$6, updated_at=now()
		WHERE id=$7`,
		t.Title, t.Description, string(t.Priority), string(t.Status), string(t.Type), t.TimeEstimate, t.ID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the ticket's comments and assignment rows before the
// ticket, in one transaction.
func (r *TicketRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE ticket_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM ticket_assignees WHERE ticket_id=$1`, id); err != nil {
		return err
	}
	ct, err := tx.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

// Assign is an idempotent insert into the assignment join table.
func (r *TicketRepo) Assign(ctx context.Context, ticketID, userID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO ticket_assignees (ticket_id, user_id)
		VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		ticketID, userID)
	return err
}

func (r *TicketRepo) Unassign(ctx context.Context, ticketID, userID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM ticket_assignees WHERE ticket_id=$1 AND user_id=$2`,
		ticketID, userID)
	return err
}

func (r *TicketRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets WHERE project_id=$1`, projectID).Scan(&n)
	return n, err
}

// CountBy groups ticket counts by a whitelisted column.
func (r *TicketRepo) CountBy(ctx context.Context, field string) (map[string]int, error) {
	switch field {
	case "status", "priority", "type":
	default:
		return nil, fmt.Errorf("unsupported group-by field %q", field)
	}
	rows, err := r.db.Query(ctx, `SELECT `+field+`, COUNT(*) FROM tickets GROUP BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			return nil, err
		}
		out[k] = n
	}
	return out, rows.Err()
}

func buildTicketWhere(f repository.TicketFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Q); s != "" {
		p := "%" + s + "%"
		args = append(args, p, p)
		clauses = append(clauses, "(t.title ILIKE $"+itoa(len(args)-1)+" OR t.description ILIKE $"+itoa(len(args))+")")
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		args = append(args, s)
		clauses = append(clauses, "t.status = $"+itoa(len(args)))
	}
	if s := strings.TrimSpace(f.Priority); s != "" {
		args = append(args, s)
		clauses = append(clauses, "t.priority = $"+itoa(len(args)))
	}
	if s := strings.TrimSpace(f.Type); s != "" {
		args = append(args, s)
		clauses = append(clauses, "t.type = $"+itoa(len(args)))
	}
	if s := strings.TrimSpace(f.ProjectID); s != "" {
		args = append(args, s)
		clauses = append(clauses, "t.project_id = $"+itoa(len(args)))
	}
	if s := strings.TrimSpace(f.CreatedBy); s != "" {
		args = append(args, s)
		clauses = append(clauses, "t.created_by = $"+itoa(len(args)))
	}
	if s := strings.TrimSpace(f.AssigneeID); s != "" {
		args = append(args, s)
		clauses = append(clauses, "EXISTS (SELECT 1 FROM ticket_assignees ta WHERE ta.ticket_id = t.id AND ta.user_id = $"+itoa(len(args))+")")
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func sanitizeSort(s, def string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "created_at", "updated_at", "priority":
		return strings.ToLower(strings.TrimSpace(s))
	default:
		return def
	}
}

func sanitizeOrder(o, def string) string {
	switch strings.ToLower(strings.TrimSpace(o)) {
	case "asc", "desc":
		return strings.ToLower(strings.TrimSpace(o))
	default:
		return def
	}
}
