package ttyframe

import (
	"bytes"
	"context"
	"crypto/sha1"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bodgit/ttyframe/frame"
	_ "github.com/mattn/go-sqlite3"
)

// FrameExt is the file extension of an encoded observation
const FrameExt = ".ttyf"

// FrameDB stores recorded sessions. Each session (game) is an ordered list
// of steps, identical observations are stored once.
type FrameDB struct {
	db *sql.DB
}

// Game summarises a stored session
type Game struct {
	Name  string
	Steps int
}

type queryExecer interface {
	Exec(string, ...interface{}) (sql.Result, error)
	QueryRow(string, ...interface{}) *sql.Row
}

// NewFrameDB opens, creating if necessary, the database in file
func NewFrameDB(file string) (*FrameDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS frame (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS game (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS step (game_id INTEGER NOT NULL, step INTEGER NOT NULL, frame_id INTEGER NOT NULL, PRIMARY KEY(game_id, step), FOREIGN KEY(game_id) REFERENCES game(id), FOREIGN KEY(frame_id) REFERENCES frame(id))"); err != nil {
		return nil, err
	}

	return &FrameDB{
		db: db,
	}, nil
}

// Close closes the database
func (db *FrameDB) Close() error {
	return db.db.Close()
}

func frameFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*"+FrameExt))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(files, func(i, j int) bool { return naturalLess(files[i], files[j]) })
	return files, nil
}

func leadingDigits(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// naturalLess compares runs of digits by value, so "2.ttyf" sorts before
// "10.ttyf"
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ia, ib := leadingDigits(a), leadingDigits(b)
		if ia > 0 && ib > 0 {
			na, nb := strings.TrimLeft(a[:ia], "0"), strings.TrimLeft(b[:ib], "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			a, b = a[ia:], b[ib:]
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

// Import replaces the session name with the encoded observations found in
// dir. Files are ordered by name, with numbers compared by value, and
// numbered from zero. It returns the
// number of steps imported.
func (db *FrameDB) Import(name, dir string) (int, error) {
	files, err := frameFiles(dir)
	if err != nil {
		return 0, err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	game, err := addGame(tx, name)
	if err != nil {
		return 0, err
	}

	if _, err = tx.Exec("DELETE FROM step WHERE game_id = ?", game); err != nil {
		return 0, err
	}

	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			return 0, err
		}

		// Make sure it's valid before storing it
		if _, err := frame.Decode(bytes.NewReader(b)); err != nil {
			return 0, fmt.Errorf("%s: %w", file, err)
		}

		id, err := addFrame(tx, b)
		if err != nil {
			return 0, err
		}

		if _, err = tx.Exec("INSERT INTO step (game_id, step, frame_id) VALUES (?, ?, ?)", game, i, id); err != nil {
			return 0, err
		}
	}

	return len(files), tx.Commit()
}

func addGame(db queryExecer, name string) (int64, error) {
	var id int64
	switch err := db.QueryRow("SELECT id FROM game WHERE name = ?", name).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.Exec("INSERT INTO game (name) VALUES (?)", name)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

func addFrame(db queryExecer, b []byte) (int64, error) {
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	var id int64
	switch err := db.QueryRow("SELECT id FROM frame WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.Exec("INSERT INTO frame (sha1, data) VALUES (?, ?)", sha, b)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// AddFrame stores o, returning its id. Storing an identical observation
// again returns the same id.
func (db *FrameDB) AddFrame(o *frame.Observation) (int64, error) {
	b, err := o.MarshalBinary()
	if err != nil {
		return 0, err
	}
	return addFrame(db.db, b)
}

// Games lists the stored sessions
func (db *FrameDB) Games() ([]Game, error) {
	rows, err := db.db.Query("SELECT g.name, COUNT(s.step) FROM game AS g LEFT JOIN step AS s ON s.game_id = g.id GROUP BY g.id ORDER BY g.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.Name, &g.Steps); err != nil {
			return nil, err
		}
		games = append(games, g)
	}

	return games, rows.Err()
}

// Steps returns the number of steps in the session name
func (db *FrameDB) Steps(name string) (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(s.step) FROM step AS s JOIN game AS g ON s.game_id = g.id WHERE g.name = ?", name).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// FindFrame returns the observation at step of session name, or nil if
// there is no such step
func (db *FrameDB) FindFrame(name string, step int) (*frame.Observation, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT f.data FROM step AS s JOIN game AS g ON s.game_id = g.id JOIN frame AS f ON s.frame_id = f.id WHERE g.name = ? AND s.step = ?", name, step).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return frame.Decode(bytes.NewReader(b))
	default:
		return nil, err
	}
}

// eachFrame calls fn with every step of session name in order
func (db *FrameDB) eachFrame(ctx context.Context, name string, fn func(int, *frame.Observation) error) error {
	rows, err := db.db.QueryContext(ctx, "SELECT s.step, f.data FROM step AS s JOIN game AS g ON s.game_id = g.id JOIN frame AS f ON s.frame_id = f.id WHERE g.name = ? ORDER BY s.step", name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			step int
			b    []byte
		)
		if err := rows.Scan(&step, &b); err != nil {
			return err
		}
		o, err := frame.Decode(bytes.NewReader(b))
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		if err := fn(step, o); err != nil {
			return err
		}
	}

	return rows.Err()
}
