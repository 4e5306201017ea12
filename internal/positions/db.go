package positions

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a bet id does not exist
	ErrNotFound = errors.New("bet not found")
	// ErrInvalidBet is wrapped by validation failures in AddBet and UpdateStake
	ErrInvalidBet = errors.New("invalid bet")
)

// Bet is a wager the user has already placed
type Bet struct {
	ID         int64     `json:"id"`
	Matchup    string    `json:"matchup"` // e.g. "Michigan @ Ohio State", the key quotes are looked up by
	Team       string    `json:"team"`
	Sportsbook string    `json:"sportsbook,omitempty"`
	Odds       int       `json:"odds"` // American
	Stake      float64   `json:"stake"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the fields AddBet requires
func (b Bet) Validate() error {
	switch {
	case strings.TrimSpace(b.Matchup) == "":
		return fmt.Errorf("%w: matchup is required", ErrInvalidBet)
	case strings.TrimSpace(b.Team) == "":
		return fmt.Errorf("%w: team is required", ErrInvalidBet)
	case b.Odds == 0:
		return fmt.Errorf("%w: odds cannot be 0", ErrInvalidBet)
	case !(b.Stake > 0):
		return fmt.Errorf("%w: stake must be positive", ErrInvalidBet)
	}
	return nil
}

// DB handles bet storage
type DB struct {
	db *sql.DB
}

// NewDB opens (creating if needed) the bet database at dbPath
func NewDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS bets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		matchup TEXT NOT NULL,
		team TEXT NOT NULL,
		sportsbook TEXT NOT NULL DEFAULT '',
		odds INTEGER NOT NULL,
		stake REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_bets_matchup ON bets(matchup);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// AddBet stores a new bet and returns its id
func (d *DB) AddBet(bet Bet) (int64, error) {
	if err := bet.Validate(); err != nil {
		return 0, err
	}

	result, err := d.db.Exec(`
		INSERT INTO bets (matchup, team, sportsbook, odds, stake)
		VALUES (?, ?, ?, ?, ?)
	`, strings.TrimSpace(bet.Matchup), strings.TrimSpace(bet.Team), bet.Sportsbook, bet.Odds, bet.Stake)
	if err != nil {
		return 0, fmt.Errorf("inserting bet: %w", err)
	}

	return result.LastInsertId()
}

const selectBets = `SELECT id, matchup, team, sportsbook, odds, stake, created_at FROM bets`

func scanBet(s interface{ Scan(...any) error }) (Bet, error) {
	var b Bet
	err := s.Scan(&b.ID, &b.Matchup, &b.Team, &b.Sportsbook, &b.Odds, &b.Stake, &b.CreatedAt)
	return b, err
}

// GetBet retrieves a bet by ID. A missing bet returns nil, nil.
func (d *DB) GetBet(id int64) (*Bet, error) {
	b, err := scanBet(d.db.QueryRow(selectBets+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning bet: %w", err)
	}
	return &b, nil
}

// ListBets returns every bet, newest first
func (d *DB) ListBets() ([]Bet, error) {
	return d.queryBets(selectBets + ` ORDER BY created_at DESC, id DESC`)
}

// ListBetsByMatchup returns the bets on one matchup, newest first
func (d *DB) ListBetsByMatchup(matchup string) ([]Bet, error) {
	return d.queryBets(selectBets+` WHERE matchup = ? ORDER BY created_at DESC, id DESC`, strings.TrimSpace(matchup))
}

func (d *DB) queryBets(query string, args ...any) ([]Bet, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bets: %w", err)
	}
	defer rows.Close()

	bets := []Bet{}
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bet row: %w", err)
		}
		bets = append(bets, b)
	}

	return bets, rows.Err()
}

// DeleteBet removes a bet
func (d *DB) DeleteBet(id int64) error {
	result, err := d.db.Exec("DELETE FROM bets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting bet: %w", err)
	}
	return expectOneRow(result)
}

// UpdateStake changes the stake on an existing bet
func (d *DB) UpdateStake(id int64, stake float64) error {
	if !(stake > 0) {
		return fmt.Errorf("%w: stake must be positive", ErrInvalidBet)
	}
	result, err := d.db.Exec("UPDATE bets SET stake = ? WHERE id = ?", stake, id)
	if err != nil {
		return fmt.Errorf("updating stake: %w", err)
	}
	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
