// Package session persists the single in-progress game so a run can be
// resumed later. Exactly one snapshot exists at a time; saving replaces it.
// Completed games and move history are never stored.
package session

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jask/quadra/internal/game"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNoSession means no snapshot is stored.
var ErrNoSession = errors.New("no saved session")

// Saved is the persisted form of a game: the core snapshot plus the name of
// the turn rule it was played under, so resuming restores the same rule.
type Saved struct {
	Snapshot game.Snapshot
	Rule     string
	SavedAt  time.Time
}

// Store holds the session database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the session database at path and applies
// migrations.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}

// Save stores sv, replacing any previous snapshot. The delete and insert run
// in one transaction so a crash never leaves two rows.
func (s *Store) Save(ctx context.Context, sv Saved) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("save session: clear previous: %w", err)
	}

	awaitingTurn := 0
	if sv.Snapshot.CanTurn {
		awaitingTurn = 1
	}
	savedAt := sv.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC().Truncate(time.Second)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO session (id, board, cursor, active_player, awaiting_turn, rule, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		encodeBoard(sv.Snapshot.Board),
		sv.Snapshot.Cursor,
		int(sv.Snapshot.ActivePlayer),
		awaitingTurn,
		sv.Rule,
		savedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save session: insert: %w", err)
	}
	return tx.Commit()
}

// Load returns the stored snapshot, or ErrNoSession when nothing is saved.
func (s *Store) Load(ctx context.Context) (Saved, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT board, cursor, active_player, awaiting_turn, rule, saved_at
		FROM session LIMIT 1`)

	var (
		board        string
		cursor       int
		active       int
		awaitingTurn int
		rule         string
		savedAt      string
	)
	if err := row.Scan(&board, &cursor, &active, &awaitingTurn, &rule, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Saved{}, ErrNoSession
		}
		return Saved{}, fmt.Errorf("load session: %w", err)
	}

	cells, err := decodeBoard(board)
	if err != nil {
		return Saved{}, fmt.Errorf("load session: %w", err)
	}
	at, err := time.Parse(time.RFC3339, savedAt)
	if err != nil {
		return Saved{}, fmt.Errorf("load session: saved_at: %w", err)
	}

	return Saved{
		Snapshot: game.Snapshot{
			ActivePlayer: game.Player(active),
			Cursor:       cursor,
			CanPlace:     awaitingTurn == 0,
			CanTurn:      awaitingTurn == 1,
			Board:        cells,
		},
		Rule:    rule,
		SavedAt: at,
	}, nil
}

// Clear removes the stored snapshot. Clearing an empty store is not an
// error.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// encodeBoard writes the occupancy as one ASCII digit per cell, row-major:
// '0' free, '1' player one, '2' player two.
func encodeBoard(cells [game.CellCount]game.Player) string {
	buf := make([]byte, game.CellCount)
	for i, p := range cells {
		buf[i] = '0' + byte(p)
	}
	return string(buf)
}

func decodeBoard(s string) ([game.CellCount]game.Player, error) {
	var cells [game.CellCount]game.Player
	if len(s) != game.CellCount {
		return cells, fmt.Errorf("board encoding has %d cells, want %d", len(s), game.CellCount)
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			cells[i] = game.NoPlayer
		case '1':
			cells[i] = game.PlayerOne
		case '2':
			cells[i] = game.PlayerTwo
		default:
			return cells, fmt.Errorf("board encoding has invalid cell %q at %d", s[i], i)
		}
	}
	return cells, nil
}
