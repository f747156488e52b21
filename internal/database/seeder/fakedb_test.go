package seeder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/database"
)

type execCall struct {
	query string
	args  []any
}

// fakeDB answers the information_schema lookup from columns and records
// every Exec.
type fakeDB struct {
	columns map[string][]string
	execs   []execCall
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) SQLDB() *sql.DB             { return nil }

func (f *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	f.execs = append(f.execs, execCall{query: query, args: args})
	return 1, nil
}

func (f *fakeDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	if !strings.Contains(query, "information_schema.columns") || len(args) != 1 {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	return &stringRows{values: f.columns[args[0].(string)]}, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row {
	return errRow{}
}

func (f *fakeDB) Begin(context.Context) (database.Tx, error) {
	return nil, errors.New("transactions not supported")
}

type stringRows struct {
	values []string
	i      int
}

func (r *stringRows) Close()     {}
func (r *stringRows) Err() error { return nil }

func (r *stringRows) Next() bool {
	if r.i >= len(r.values) {
		return false
	}
	r.i++
	return true
}

func (r *stringRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.values[r.i-1]
	return nil
}

type errRow struct{}

func (errRow) Scan(...any) error { return errors.New("no rows") }
