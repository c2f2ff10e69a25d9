package devserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type userRow struct {
	ID           string
	DisplayID    string
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	Status       string
	Plan         string
	PlanExpiry   string
	Registered   string
	LastLogin    string
}

const userColumns = `id,user_id_display,email,full_name,password_hash,role,status,plan,plan_expiry,registered,last_login`

func scanUser(scan func(dest ...any) error) (userRow, error) {
	var u userRow
	err := scan(&u.ID, &u.DisplayID, &u.Email, &u.FullName, &u.PasswordHash, &u.Role,
		&u.Status, &u.Plan, &u.PlanExpiry, &u.Registered, &u.LastLogin)
	return u, err
}

func (s *Server) listUsers(ctx context.Context) ([]userRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY registered DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []userRow
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Server) getUserByEmail(ctx context.Context, email string) (*userRow, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=?`, email)
	u, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *Server) getUser(ctx context.Context, id string) (*userRow, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=?`, id)
	u, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *Server) insertUser(ctx context.Context, u userRow) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO users (`+userColumns+`)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
`, u.ID, u.DisplayID, u.Email, u.FullName, u.PasswordHash, u.Role, u.Status, u.Plan, u.PlanExpiry, u.Registered, u.LastLogin)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Server) updateUser(ctx context.Context, id string, fullName, role, status, plan, planExpiry string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
UPDATE users SET full_name=?, role=?, status=?, plan=?, plan_expiry=? WHERE id=?
`, fullName, role, status, plan, planExpiry, id)
	if err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *Server) deleteUser(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *Server) touchLastLogin(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET last_login=? WHERE id=?`,
		time.Now().UTC().Format(time.RFC3339), id)
	return err
}
