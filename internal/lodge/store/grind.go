package store

import (
	"context"
	"time"

	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/model"
)

func (s *Store) AddGrind(ctx context.Context, g *model.Grind) error {
	if g.Name == "" {
		return errors.InvalidArg("name")
	}
	if g.Species == model.SpeciesUnknown {
		return errors.InvalidArg("species")
	}
	if g.Reserve == model.ReserveUnknown {
		return errors.InvalidArg("reserve")
	}
	if g.Start.IsZero() {
		g.Start = time.Now().UTC()
	}
	g.Active = true
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO grinds (name, species, reserve, kills, active, start) VALUES (?, ?, ?, ?, 1, ?)`,
		g.Name, g.Species.String(), g.Reserve.String(), g.Kills, g.Start.UTC().Format(dateLayout))
	if err != nil {
		return errors.DBOperationFailed(err)
	}
	return nil
}

func (s *Store) ListGrinds(ctx context.Context) ([]model.Grind, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, species, reserve, kills, active, start FROM grinds ORDER BY start`)
	if err != nil {
		return nil, errors.DBOperationFailed(err)
	}
	defer rows.Close()

	var out []model.Grind
	for rows.Next() {
		var (
			g                      model.Grind
			species, reserve, date string
		)
		if err := rows.Scan(&g.Name, &species, &reserve, &g.Kills, &g.Active, &date); err != nil {
			return nil, errors.DBOperationFailed(err)
		}
		g.Species = model.ParseSpeciesName(species)
		g.Reserve = model.ParseReserveName(reserve)
		if ts, err := time.Parse(time.RFC3339Nano, date); err == nil {
			g.Start = ts
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DBOperationFailed(err)
	}
	return out, nil
}

// ActiveGrinds names the active grinds for one species on one reserve.
func (s *Store) ActiveGrinds(ctx context.Context, species model.Species, reserve model.Reserve) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM grinds WHERE active = 1 AND species = ? AND reserve = ? ORDER BY start, name`,
		species.String(), reserve.String())
	if err != nil {
		return nil, errors.DBOperationFailed(err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.DBOperationFailed(err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DBOperationFailed(err)
	}
	return names, nil
}

func (s *Store) IncrementGrindKill(ctx context.Context, name string) error {
	return s.updateGrind(ctx, `UPDATE grinds SET kills = kills + 1 WHERE name = ?`, name)
}

// StopGrind marks a grind inactive; its kill count is kept.
func (s *Store) StopGrind(ctx context.Context, name string) error {
	return s.updateGrind(ctx, `UPDATE grinds SET active = 0 WHERE name = ?`, name)
}

// StartGrind resumes a stopped grind.
func (s *Store) StartGrind(ctx context.Context, name string) error {
	return s.updateGrind(ctx, `UPDATE grinds SET active = 1 WHERE name = ?`, name)
}

// RemoveGrind deletes a grind. Trophies already tagged with it keep the tag.
func (s *Store) RemoveGrind(ctx context.Context, name string) error {
	return s.updateGrind(ctx, `DELETE FROM grinds WHERE name = ?`, name)
}

func (s *Store) updateGrind(ctx context.Context, q, name string) error {
	res, err := s.db.ExecContext(ctx, q, name)
	if err != nil {
		return errors.DBOperationFailed(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.DBOperationFailed(err)
	}
	if n == 0 {
		return errors.ErrGrindNotFound
	}
	return nil
}
