package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// lockKey is the pg_advisory_lock key shared by every jobboard migrator.
const lockKey int64 = 771204519

const historyTable = "schema_migrations"

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

// State pairs a migration file with its recorded application, if any.
type State struct {
	Migration
	AppliedAt *time.Time
}

// Runner applies V<version>__<name>.sql files in version order. FS wins over
// Dir when both are set.
type Runner struct {
	Dir    string
	FS     fs.FS
	Logger *log.Logger
}

func (r Runner) Run(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	migs, err := r.load()
	if err != nil {
		return err
	}
	if len(migs) == 0 {
		r.logf("[Migration] nothing to apply")
		return nil
	}

	if err := ensureHistory(ctx, db); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	applied, err := readHistory(ctx, db)
	if err != nil {
		return err
	}

	pending, err := pendingOf(migs, applied)
	if err != nil {
		return err
	}
	for _, m := range pending {
		start := time.Now()
		if err := apply(ctx, db, m); err != nil {
			return err
		}
		r.logf("[Migration] applied V%d %s in %s", m.Version, m.Name, time.Since(start).Round(time.Millisecond))
	}
	if len(pending) == 0 {
		r.logf("[Migration] schema up to date at V%d", migs[len(migs)-1].Version)
	}
	return nil
}

// Status lists every known migration with its applied time. It does not take
// the advisory lock.
func (r Runner) Status(ctx context.Context, db *sql.DB) ([]State, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}

	migs, err := r.load()
	if err != nil {
		return nil, err
	}
	if err := ensureHistory(ctx, db); err != nil {
		return nil, err
	}
	applied, err := readHistory(ctx, db)
	if err != nil {
		return nil, err
	}
	if _, err := pendingOf(migs, applied); err != nil {
		return nil, err
	}

	out := make([]State, 0, len(migs))
	for _, m := range migs {
		st := State{Migration: m}
		if rec, ok := applied[m.Version]; ok {
			at := rec.appliedAt
			st.AppliedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

func (r Runner) load() ([]Migration, error) {
	if r.FS != nil {
		return loadFS(r.FS)
	}
	dir := strings.TrimSpace(r.Dir)
	if dir == "" {
		dir = "migrations"
	}
	return loadMigrations(dir)
}

func (r Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

func loadMigrations(dir string) ([]Migration, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return loadFS(os.DirFS(dir))
}

func loadFS(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "V*.sql")
	if err != nil {
		return nil, err
	}

	migs := make([]Migration, 0, len(names))
	for _, name := range names {
		m, ok, err := parseFile(fsys, name)
		if err != nil {
			return nil, err
		}
		if ok {
			migs = append(migs, m)
		}
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", migs[i].Version, migs[i-1].Filename, migs[i].Filename)
		}
	}
	return migs, nil
}

func parseFile(fsys fs.FS, name string) (Migration, bool, error) {
	match := fileRe.FindStringSubmatch(path.Base(name))
	if match == nil {
		return Migration{}, false, nil
	}
	version, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return Migration{}, false, fmt.Errorf("invalid migration version: %s", name)
	}

	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Migration{}, false, err
	}
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return Migration{}, false, fmt.Errorf("empty migration file: %s", name)
	}

	sum := sha256.Sum256([]byte(body))
	return Migration{
		Version:  version,
		Name:     match[2],
		Filename: name,
		SQL:      body,
		Checksum: hex.EncodeToString(sum[:]),
	}, true, nil
}

type record struct {
	checksum  string
	appliedAt time.Time
}

// pendingOf returns migrations missing from history and fails when an applied
// file was edited afterwards.
func pendingOf(migs []Migration, applied map[int64]record) ([]Migration, error) {
	var pending []Migration
	for _, m := range migs {
		rec, ok := applied[m.Version]
		if !ok {
			pending = append(pending, m)
			continue
		}
		if rec.checksum != m.Checksum {
			return nil, fmt.Errorf("migration V%d (%s) changed after it was applied", m.Version, m.Filename)
		}
	}
	return pending, nil
}

func ensureHistory(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+historyTable+` (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func readHistory(ctx context.Context, db *sql.DB) (map[int64]record, error) {
	rows, err := db.QueryContext(ctx, `SELECT version, checksum, applied_at FROM `+historyTable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]record)
	for rows.Next() {
		var (
			version int64
			rec     record
		)
		if err := rows.Scan(&version, &rec.checksum, &rec.appliedAt); err != nil {
			return nil, err
		}
		out[version] = rec
	}
	return out, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply %s: %w", m.Filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO `+historyTable+` (version, name, checksum) VALUES ($1, $2, $3)`,
		m.Version, m.Name, m.Checksum,
	); err != nil {
		return fmt.Errorf("record %s: %w", m.Filename, err)
	}
	return tx.Commit()
}
