package devserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type botRow struct {
	ID         string
	Name       string
	Type       string
	Status     string
	RunStatus  string
	Parameters string // JSON string, as the dashboard submits it
	Profit     string
	Icon       string
	OwnerEmail string
	CreatedAt  string
	UpdatedAt  string
}

const botColumns = `id,name,type,status,run_status,parameters,profit,icon,owner_email,created_at,updated_at`

func scanBot(scan func(dest ...any) error) (botRow, error) {
	var b botRow
	err := scan(&b.ID, &b.Name, &b.Type, &b.Status, &b.RunStatus, &b.Parameters,
		&b.Profit, &b.Icon, &b.OwnerEmail, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (s *Server) listBots(ctx context.Context) ([]botRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+botColumns+` FROM bots ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []botRow
	for rows.Next() {
		b, err := scanBot(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Server) getBot(ctx context.Context, id string) (*botRow, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+botColumns+` FROM bots WHERE id=?`, id)
	b, err := scanBot(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (s *Server) insertBot(ctx context.Context, b botRow) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO bots (`+botColumns+`)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
`, b.ID, b.Name, b.Type, b.Status, b.RunStatus, b.Parameters, b.Profit, b.Icon, b.OwnerEmail, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert bot: %w", err)
	}
	return nil
}

func (s *Server) updateBot(ctx context.Context, b botRow) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
UPDATE bots SET name=?, type=?, status=?, run_status=?, parameters=?, icon=?, updated_at=?
WHERE id=?
`, b.Name, b.Type, b.Status, b.RunStatus, b.Parameters, b.Icon, b.UpdatedAt, b.ID)
	if err != nil {
		return false, fmt.Errorf("update bot: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *Server) deleteBot(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bots WHERE id=?`, id)
	if err != nil {
		return false, fmt.Errorf("delete bot: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
