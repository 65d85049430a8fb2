package members

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ogtechminds/orgchart/internal/db"
)

// Store provides CRUD operations for club members.
type Store struct {
	db *db.DB
}

// NewStore creates a new member store.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

const memberColumns = `id, name, role, linkedin_url, team, parent_id, position, created_at, updated_at`

// Create inserts a new member at the end of the insertion order.
func (s *Store) Create(ctx context.Context, m *Member) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("creating member: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) + 1 FROM members`).Scan(&m.Position); err != nil {
		return fmt.Errorf("creating member: next position: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO members (`+memberColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Role, nullString(m.LinkedInURL), m.Team, nullString(m.ParentID), m.Position, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating member: %w", err)
	}
	return tx.Commit()
}

// Get retrieves a member by ID.
func (s *Store) Get(ctx context.Context, id string) (*Member, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err != nil {
		return nil, fmt.Errorf("getting member: %w", err)
	}
	return m, nil
}

// List returns members in insertion order, optionally limited to one team.
func (s *Store) List(ctx context.Context, f ListFilter) ([]Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members`
	var args []interface{}
	if f.Team != "" {
		query += ` WHERE team = ?`
		args = append(args, f.Team)
	}
	query += ` ORDER BY position, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// Update replaces a member's editable fields. Position is kept.
func (s *Store) Update(ctx context.Context, m *Member) error {
	m.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE members SET name=?, role=?, linkedin_url=?, team=?, parent_id=?, updated_at=?
		 WHERE id=?`,
		m.Name, m.Role, nullString(m.LinkedInURL), m.Team, nullString(m.ParentID), m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating member: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a member. Its direct reports keep their parent_id and
// are drawn under the chart root until they are reassigned.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM members WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Upsert writes a batch of members in one transaction. New members are
// appended to the insertion order in batch order; existing ones keep
// their position and have their fields replaced.
func (s *Store) Upsert(ctx context.Context, ms []Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upserting members: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) + 1 FROM members`).Scan(&next); err != nil {
		return fmt.Errorf("upserting members: next position: %w", err)
	}

	now := time.Now().UTC()
	for i := range ms {
		m := &ms[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE members SET name=?, role=?, linkedin_url=?, team=?, parent_id=?, updated_at=? WHERE id=?`,
			m.Name, m.Role, nullString(m.LinkedInURL), m.Team, nullString(m.ParentID), now, m.ID,
		)
		if err != nil {
			return fmt.Errorf("upserting member %s: %w", m.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			continue
		}
		m.Position = next
		next++
		_, err = tx.ExecContext(ctx,
			`INSERT INTO members (`+memberColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.Role, nullString(m.LinkedInURL), m.Team, nullString(m.ParentID), m.Position, now, now,
		)
		if err != nil {
			return fmt.Errorf("upserting member %s: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

// Teams returns the distinct team tags that currently have members.
func (s *Store) Teams(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT team FROM members ORDER BY team`)
	if err != nil {
		return nil, fmt.Errorf("listing member teams: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMember(row scanner) (*Member, error) {
	m := &Member{}
	var linkedin, parent sql.NullString
	if err := row.Scan(&m.ID, &m.Name, &m.Role, &linkedin, &m.Team, &parent, &m.Position, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.LinkedInURL = linkedin.String
	m.ParentID = parent.String
	return m, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
