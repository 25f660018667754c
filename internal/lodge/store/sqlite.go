// Package store persists trophies and grinds in a local sqlite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/sjzar/trophylodge/internal/errors"
	"github.com/sjzar/trophylodge/internal/game/model"
)

const DBFile = "trophylodge.db"

// dateLayout is fixed width so stored dates sort as text.
const dateLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS trophies (
	uuid          TEXT PRIMARY KEY,
	id            REAL NOT NULL,
	species       TEXT NOT NULL,
	reserve       TEXT NOT NULL,
	rating        TEXT NOT NULL,
	score         REAL NOT NULL,
	weight        REAL NOT NULL,
	fur           TEXT NOT NULL,
	date          TEXT NOT NULL,
	gender        TEXT NOT NULL,
	cash          INTEGER NOT NULL,
	xp            INTEGER NOT NULL,
	session_score INTEGER NOT NULL,
	integrity     INTEGER NOT NULL,
	tracking      REAL NOT NULL,
	weapon_score  REAL NOT NULL,
	shot_distance REAL NOT NULL,
	shot_damage   REAL NOT NULL,
	mods          INTEGER NOT NULL,
	grind         TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_trophies_id ON trophies(id);
CREATE TABLE IF NOT EXISTS grinds (
	name    TEXT PRIMARY KEY,
	species TEXT NOT NULL,
	reserve TEXT NOT NULL,
	kills   INTEGER NOT NULL DEFAULT 0,
	active  INTEGER NOT NULL DEFAULT 1,
	start   TEXT NOT NULL
);
`

type Store struct {
	db *sql.DB
}

// Open creates the database file and schema if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.DBOpenFailed(err)
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, errors.DBOpenFailed(err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.DBOpenFailed(err)
	}
	log.Debug().Str("path", path).Msg("store opened")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) TrophyExists(ctx context.Context, id float32) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM trophies WHERE id = ?`, float64(id)).Scan(&n)
	if err != nil {
		return false, errors.DBOperationFailed(err)
	}
	return n > 0, nil
}

// SaveTrophy inserts t and assigns its UUID when empty.
func (s *Store) SaveTrophy(ctx context.Context, t *model.Trophy) error {
	if t.UUID == "" {
		t.UUID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO trophies (
		uuid, id, species, reserve, rating, score, weight, fur, date, gender,
		cash, xp, session_score, integrity, tracking, weapon_score,
		shot_distance, shot_damage, mods, grind
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UUID, float64(t.ID), t.Species.String(), t.Reserve.String(), t.Rating.String(),
		t.Score, t.Weight, t.Fur, t.Date.UTC().Format(dateLayout), t.Gender.String(),
		t.Cash, t.XP, t.SessionScore, t.Integrity, t.Tracking, t.WeaponScore,
		t.ShotDistance, t.ShotDamage, t.Mods, t.Grind,
	)
	if err != nil {
		return errors.DBOperationFailed(err)
	}
	return nil
}

// SortBy orders ListTrophies, always best or newest first.
type SortBy string

const (
	SortDate         SortBy = "date"
	SortScore        SortBy = "score"
	SortWeight       SortBy = "weight"
	SortRating       SortBy = "rating"
	SortShotDistance SortBy = "shot_distance"
)

var sortOrder = map[SortBy]string{
	SortDate:         "date DESC",
	SortScore:        "score DESC, date DESC",
	SortWeight:       "weight DESC, date DESC",
	SortRating:       ratingRank() + " DESC, date DESC",
	SortShotDistance: "shot_distance DESC, date DESC",
}

// ratingRank maps the stored rating text back to its rank.
func ratingRank() string {
	var b strings.Builder
	b.WriteString("CASE rating")
	for r := model.RatingNone; r <= model.RatingGreatOne; r++ {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", r, int(r))
	}
	b.WriteString(" ELSE -1 END")
	return b.String()
}

// ParseSortBy accepts "date", "score", "weight", "rating" and
// "shot_distance", in any case and with '-' or ' ' for '_'. Empty is SortDate.
func ParseSortBy(v string) (SortBy, error) {
	v = strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(v)))
	if v == "" {
		return SortDate, nil
	}
	if _, ok := sortOrder[SortBy(v)]; !ok {
		return "", errors.InvalidArg("sort")
	}
	return SortBy(v), nil
}

// Filter narrows ListTrophies. Zero values match everything; a nil Rating
// matches every rating.
type Filter struct {
	Species model.Species
	Reserve model.Reserve
	Rating  *model.Rating
	Sort    SortBy
	Limit   int
}

func (s *Store) ListTrophies(ctx context.Context, f Filter) ([]model.Trophy, error) {
	var (
		where []string
		args  []any
	)
	if f.Species != model.SpeciesUnknown {
		where = append(where, "species = ?")
		args = append(args, f.Species.String())
	}
	if f.Reserve != model.ReserveUnknown {
		where = append(where, "reserve = ?")
		args = append(args, f.Reserve.String())
	}
	if f.Rating != nil {
		where = append(where, "rating = ?")
		args = append(args, f.Rating.String())
	}
	order, ok := sortOrder[f.Sort]
	if !ok {
		order = sortOrder[SortDate]
	}
	q := `SELECT uuid, id, species, reserve, rating, score, weight, fur, date, gender,
		cash, xp, session_score, integrity, tracking, weapon_score,
		shot_distance, shot_damage, mods, grind FROM trophies`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY " + order
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.DBOperationFailed(err)
	}
	defer rows.Close()

	var out []model.Trophy
	for rows.Next() {
		var (
			t                                      model.Trophy
			id                                     float64
			species, reserve, rating, date, gender string
		)
		if err := rows.Scan(&t.UUID, &id, &species, &reserve, &rating, &t.Score, &t.Weight, &t.Fur,
			&date, &gender, &t.Cash, &t.XP, &t.SessionScore, &t.Integrity, &t.Tracking,
			&t.WeaponScore, &t.ShotDistance, &t.ShotDamage, &t.Mods, &t.Grind); err != nil {
			return nil, errors.DBOperationFailed(err)
		}
		t.ID = float32(id)
		t.Species = model.ParseSpeciesName(species)
		t.Reserve = model.ParseReserveName(reserve)
		if err := t.Rating.UnmarshalText([]byte(rating)); err != nil {
			log.Debug().Err(err).Str("uuid", t.UUID).Msg("bad rating in store")
		}
		_ = t.Gender.UnmarshalText([]byte(gender))
		if ts, err := time.Parse(time.RFC3339Nano, date); err == nil {
			t.Date = ts
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DBOperationFailed(err)
	}
	return out, nil
}
