package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/classtrack-dev/classtrack/backend/internal/domain"
)

func (r *Repository) CreateAssignment(assignment *domain.Assignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO assignments (title, subject, total_score, due_date, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_submitted, created_at
	`

	args := []any{assignment.Title, assignment.Subject, assignment.TotalScore, assignment.DueDate, assignment.UserID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&assignment.ID, &assignment.IsSubmitted, &assignment.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	query := `
		SELECT title, subject, total_score, due_date, user_id, is_submitted, marks_obtained, created_at
		FROM assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	assignment := &domain.Assignment{
		ID: id,
	}

	dst := []any{&assignment.Title, &assignment.Subject, &assignment.TotalScore, &assignment.DueDate, &assignment.UserID, &assignment.IsSubmitted, &assignment.MarksObtained, &assignment.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return assignment, nil
}

// GetAllAssignments returns every assignment, optionally ordered by one of
// the whitelisted columns. orderColumn is trusted: callers must only pass
// values produced by utils.ValidateSortParams.
func (r *Repository) GetAllAssignments(orderColumn string, desc bool) ([]*domain.Assignment, error) {
	query := `
		SELECT id, title, subject, total_score, due_date, user_id, is_submitted, marks_obtained, created_at
		FROM assignments
	`
	if orderColumn != "" {
		query += " ORDER BY " + orderColumn
		if desc {
			query += " DESC"
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

func (r *Repository) GetAssignmentsByUserID(userID int64) ([]*domain.Assignment, error) {
	query := `
		SELECT id, title, subject, total_score, due_date, user_id, is_submitted, marks_obtained, created_at
		FROM assignments WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

func (r *Repository) UpdateAssignment(assignment *domain.Assignment) error {
	// last-write-wins, no optimistic locking
	query := `
		UPDATE assignments
		SET
			title = $1,
			subject = $2,
			total_score = $3,
			due_date = $4,
			is_submitted = $5,
			marks_obtained = $6
		WHERE id = $7
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{assignment.Title, assignment.Subject, assignment.TotalScore, assignment.DueDate, assignment.IsSubmitted, assignment.MarksObtained, assignment.ID}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAssignment(id int64) error {
	query := `
		DELETE FROM assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func scanAssignments(rows *sql.Rows) ([]*domain.Assignment, error) {
	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment := &domain.Assignment{}
		dst := []any{&assignment.ID, &assignment.Title, &assignment.Subject, &assignment.TotalScore, &assignment.DueDate, &assignment.UserID, &assignment.IsSubmitted, &assignment.MarksObtained, &assignment.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
