//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FakeRow scans Values into the destinations one by one. Value types must match the
// destination element types exactly.
type FakeRow struct {
	Values []any
	Err    error
}

func (r FakeRow) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	if len(dest) != len(r.Values) {
		return fmt.Errorf("fake row: %d destinations for %d values", len(dest), len(r.Values))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("fake row: destination %d is not a pointer", i)
		}
		v := reflect.ValueOf(r.Values[i])
		if !v.Type().AssignableTo(target.Elem().Type()) {
			return fmt.Errorf("fake row: cannot assign %s to %s at %d", v.Type(), target.Elem().Type(), i)
		}
		target.Elem().Set(v)
	}
	return nil
}

type FakeQueryResult struct {
	Rows []FakeRow
	Err  error
}

type FakeCall struct {
	SQL  string
	Args []any
}

// FakeDB satisfies db.DBTX with scripted results consumed in call order.
type FakeDB struct {
	mu sync.Mutex

	QueryRowResults []FakeRow
	QueryResults    []FakeQueryResult
	ExecErr         error

	Calls []FakeCall
}

func (f *FakeDB) record(sql string, args []any) {
	f.Calls = append(f.Calls, FakeCall{SQL: sql, Args: args})
}

func (f *FakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(sql, args)
	if f.ExecErr != nil {
		return pgconn.CommandTag{}, f.ExecErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *FakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(sql, args)
	if len(f.QueryResults) == 0 {
		return nil, fmt.Errorf("fake db: unexpected query %q", sql)
	}
	res := f.QueryResults[0]
	f.QueryResults = f.QueryResults[1:]
	if res.Err != nil {
		return nil, res.Err
	}
	return &FakeRows{rows: res.Rows, idx: -1}, nil
}

func (f *FakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(sql, args)
	if len(f.QueryRowResults) == 0 {
		return FakeRow{Err: fmt.Errorf("fake db: unexpected query row %q", sql)}
	}
	row := f.QueryRowResults[0]
	f.QueryRowResults = f.QueryRowResults[1:]
	return row
}

// LastCall returns the most recent statement sent to the fake.
func (f *FakeDB) LastCall() FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return FakeCall{}
	}
	return f.Calls[len(f.Calls)-1]
}

type FakeRows struct {
	rows   []FakeRow
	idx    int
	closed bool
}

func (r *FakeRows) Close()                                       { r.closed = true }
func (r *FakeRows) Err() error                                   { return nil }
func (r *FakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *FakeRows) Conn() *pgx.Conn                              { return nil }

func (r *FakeRows) Next() bool {
	if r.closed {
		return false
	}
	r.idx++
	if r.idx >= len(r.rows) {
		r.closed = true
		return false
	}
	return true
}

func (r *FakeRows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.rows) {
		return fmt.Errorf("fake rows: scan outside of result set")
	}
	return r.rows[r.idx].Scan(dest...)
}

func (r *FakeRows) Values() ([]any, error) {
	if r.idx < 0 || r.idx >= len(r.rows) {
		return nil, fmt.Errorf("fake rows: values outside of result set")
	}
	return r.rows[r.idx].Values, nil
}

func (r *FakeRows) RawValues() [][]byte { return nil }
