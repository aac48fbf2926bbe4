package store

import (
	"context"
	"database/sql"
	"fmt"

	"custodia/internal/task/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
	"custodia/pkg/platform/tx"
)

// PostgresStore persists tasks in PostgreSQL. All queries resolve their
// executor through pkg/platform/tx so they join an enclosing unit of work.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, customer_identifier, kind, comment, open, created_by, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx, query,
		task.ID, task.CustomerID.String(), task.Kind, task.Comment, task.Open, task.CreatedBy, task.CreatedOn)
	if err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountOpen(ctx context.Context, customerID domain.CustomerID, kind string) (int, error) {
	var count int
	err := tx.Resolve(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE customer_identifier = $1 AND kind = $2 AND open`,
		customerID.String(), kind).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count open tasks: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) FindOpen(ctx context.Context, customerID domain.CustomerID, kind string) (*models.Task, error) {
	query := `
		SELECT id, customer_identifier, kind, comment, open, created_by, created_on, closed_by, closed_on
		FROM tasks
		WHERE customer_identifier = $1 AND kind = $2 AND open
		ORDER BY created_on
		LIMIT 1
	`
	var (
		task     models.Task
		customer string
		closedBy sql.NullString
		closedOn sql.NullTime
	)
	err := tx.Resolve(ctx, s.db).QueryRowContext(ctx, query, customerID.String(), kind).Scan(
		&task.ID, &customer, &task.Kind, &task.Comment, &task.Open,
		&task.CreatedBy, &task.CreatedOn, &closedBy, &closedOn)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find open task: %w", err)
	}
	task.CustomerID = domain.CustomerID(customer)
	task.ClosedBy = closedBy.String
	if closedOn.Valid {
		t := closedOn.Time
		task.ClosedOn = &t
	}
	return &task, nil
}

func (s *PostgresStore) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET open = $2, closed_by = $3, closed_on = $4
		WHERE id = $1
	`
	res, err := tx.Resolve(ctx, s.db).ExecContext(ctx, query, task.ID, task.Open, task.ClosedBy, task.ClosedOn)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
