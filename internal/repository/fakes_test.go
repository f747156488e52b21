package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"

	"jobboard/internal/database"

	"github.com/jackc/pgx/v5"
)

// valuesRow scans a fixed column list. A nil value leaves a NULL in the
// destination; a value of T fills a *T destination.
type valuesRow struct {
	values []any
	err    error
}

func (r valuesRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(r.values))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if r.values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(r.values[i])
		switch {
		case v.Type().AssignableTo(target.Type()):
			target.Set(v)
		case target.Kind() == reflect.Pointer && v.Type().AssignableTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(v)
			target.Set(p)
		default:
			return fmt.Errorf("scan column %d: cannot assign %s to %s", i, v.Type(), target.Type())
		}
	}
	return nil
}

type valuesRows struct {
	rows []valuesRow
	i    int
}

func (r *valuesRows) Close()     {}
func (r *valuesRows) Err() error { return nil }

func (r *valuesRows) Next() bool {
	if r.i >= len(r.rows) {
		return false
	}
	r.i++
	return true
}

func (r *valuesRows) Scan(dest ...any) error {
	return r.rows[r.i-1].Scan(dest...)
}

type execCall struct {
	query string
	args  []any
}

// fakeTx answers each Exec from results in order.
type fakeTx struct {
	results    []execResult
	execs      []execCall
	committed  bool
	rolledBack bool
}

type execResult struct {
	n   int64
	err error
}

func (t *fakeTx) Exec(_ context.Context, query string, args ...any) (int64, error) {
	t.execs = append(t.execs, execCall{query: query, args: args})
	if len(t.execs) > len(t.results) {
		return 0, errors.New("unexpected exec")
	}
	res := t.results[len(t.execs)-1]
	return res.n, res.err
}

func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not supported")
}

func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row {
	return valuesRow{err: pgx.ErrNoRows}
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	row  valuesRow
	rows []valuesRow
	tx   *fakeTx

	lastQuery string
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) SQLDB() *sql.DB             { return nil }

func (f *fakeDB) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("not supported")
}

func (f *fakeDB) Query(_ context.Context, query string, _ ...any) (database.Rows, error) {
	f.lastQuery = query
	return &valuesRows{rows: f.rows}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, query string, _ ...any) database.Row {
	f.lastQuery = query
	return f.row
}

func (f *fakeDB) Begin(context.Context) (database.Tx, error) {
	if f.tx == nil {
		return nil, errors.New("no tx")
	}
	return f.tx, nil
}
