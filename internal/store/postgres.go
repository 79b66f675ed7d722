package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const taskColumns = `id, title, description, status, priority,
	due_date, progress, estimated_hours, assigned_to,
	depends_on, tags, goal_id,
	created_at, updated_at, completed_at`

func scanTask(row pgx.Row) (*Task, error) {
	t := &Task{}
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.DueDate, &t.Progress, &t.EstimatedHours, &t.AssignedTo,
		&t.DependsOn, &t.Tags, &t.GoalID,
		&t.CreatedAt, &t.UpdatedAt, &t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *PostgresStore) CreateTask(ctx context.Context, task *Task) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO plan_tasks (title, description, status, priority,
			due_date, progress, estimated_hours, assigned_to, depends_on, tags, goal_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.Progress, task.EstimatedHours, task.AssignedTo,
		task.DependsOn, task.Tags, task.GoalID,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (s *PostgresStore) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	t, err := scanTask(s.pool.QueryRow(ctx, `
		SELECT `+taskColumns+` FROM plan_tasks WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *PostgresStore) ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM plan_tasks WHERE 1=1`
	args := []interface{}{}
	argN := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, *filter.Status)
		argN++
	}
	if filter.AssignedTo != nil {
		query += fmt.Sprintf(" AND assigned_to = $%d", argN)
		args = append(args, *filter.AssignedTo)
		argN++
	}
	if filter.GoalID != nil {
		query += fmt.Sprintf(" AND goal_id = $%d", argN)
		args = append(args, *filter.GoalID)
		argN++
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argN)
		args = append(args, filter.Limit)
		argN++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argN)
		args = append(args, filter.Offset)
	}

	return s.queryTasks(ctx, query, args...)
}

func (s *PostgresStore) queryTasks(ctx context.Context, query string, args ...interface{}) ([]*Task, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *PostgresStore) UpdateTask(ctx context.Context, task *Task) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE plan_tasks SET
			title = $2, description = $3, status = $4, priority = $5,
			due_date = $6, progress = $7, estimated_hours = $8, assigned_to = $9,
			depends_on = $10, tags = $11, goal_id = $12,
			completed_at = $13, updated_at = NOW()
		WHERE id = $1`,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.Progress, task.EstimatedHours, task.AssignedTo,
		task.DependsOn, task.Tags, task.GoalID, task.CompletedAt,
	)
	return err
}

func (s *PostgresStore) DeleteTask(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM plan_tasks WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) GetActiveTasks(ctx context.Context) ([]*Task, error) {
	return s.queryTasks(ctx, `
		SELECT `+taskColumns+` FROM plan_tasks
		WHERE status IN ('pending', 'in_progress')
		ORDER BY created_at ASC`)
}

func (s *PostgresStore) GetActiveTasksForMember(ctx context.Context, memberID uuid.UUID) ([]*Task, error) {
	return s.queryTasks(ctx, `
		SELECT `+taskColumns+` FROM plan_tasks
		WHERE assigned_to = $1 AND status IN ('pending', 'in_progress')
		ORDER BY created_at ASC`, memberID)
}

func (s *PostgresStore) GetOverdueTasks(ctx context.Context, now time.Time) ([]*Task, error) {
	return s.queryTasks(ctx, `
		SELECT `+taskColumns+` FROM plan_tasks
		WHERE status IN ('pending', 'in_progress') AND due_date < $1
		ORDER BY due_date ASC`, now)
}

func (s *PostgresStore) GetTasksDueBetween(ctx context.Context, from, until time.Time) ([]*Task, error) {
	return s.queryTasks(ctx, `
		SELECT `+taskColumns+` FROM plan_tasks
		WHERE status IN ('pending', 'in_progress') AND due_date >= $1 AND due_date <= $2
		ORDER BY due_date ASC`, from, until)
}

// --- Goals ---

const goalColumns = `id, title, description, progress, due_date, created_at, updated_at`

func (s *PostgresStore) CreateGoal(ctx context.Context, goal *Goal) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO plan_goals (title, description, progress, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		goal.Title, goal.Description, goal.Progress, goal.DueDate,
	).Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
}

func (s *PostgresStore) GetGoal(ctx context.Context, id uuid.UUID) (*Goal, error) {
	g := &Goal{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+goalColumns+` FROM plan_goals WHERE id = $1`, id,
	).Scan(&g.ID, &g.Title, &g.Description, &g.Progress, &g.DueDate, &g.CreatedAt, &g.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s *PostgresStore) ListGoals(ctx context.Context) ([]*Goal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+goalColumns+` FROM plan_goals ORDER BY due_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*Goal
	for rows.Next() {
		g := &Goal{}
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.Progress, &g.DueDate, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *PostgresStore) UpdateGoal(ctx context.Context, goal *Goal) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE plan_goals SET title = $2, description = $3, progress = $4,
			due_date = $5, updated_at = NOW()
		WHERE id = $1`,
		goal.ID, goal.Title, goal.Description, goal.Progress, goal.DueDate,
	)
	return err
}

// --- Members ---

func (s *PostgresStore) CreateMember(ctx context.Context, member *Member) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO team_members (name, email, skills)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		member.Name, member.Email, member.Skills,
	).Scan(&member.ID, &member.CreatedAt)
}

func (s *PostgresStore) GetMember(ctx context.Context, id uuid.UUID) (*Member, error) {
	m := &Member{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email, skills, created_at FROM team_members WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Skills, &m.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *PostgresStore) ListMembers(ctx context.Context) ([]*Member, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, skills, created_at FROM team_members ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Skills, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// --- Notifications ---

func (s *PostgresStore) CreateNotification(ctx context.Context, n *Notification) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO notifications (member_id, task_id, kind, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		n.MemberID, n.TaskID, n.Kind, n.Message,
	).Scan(&n.ID, &n.CreatedAt)
}

func (s *PostgresStore) ListNotifications(ctx context.Context, memberID uuid.UUID, unreadOnly bool) ([]*Notification, error) {
	query := `SELECT id, member_id, task_id, kind, message, read_at, created_at
		FROM notifications WHERE member_id = $1`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Notification
	for rows.Next() {
		n := &Notification{}
		if err := rows.Scan(&n.ID, &n.MemberID, &n.TaskID, &n.Kind, &n.Message, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *PostgresStore) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications SET read_at = NOW() WHERE id = $1 AND read_at IS NULL`, id)
	return err
}

func (s *PostgresStore) HasRecentNotification(ctx context.Context, taskID uuid.UUID, kind NotificationKind, since time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE task_id = $1 AND kind = $2 AND created_at >= $3
		)`, taskID, kind, since,
	).Scan(&exists)
	return exists, err
}
