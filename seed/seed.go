package seed

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/danthegoodman1/dynamicblog/db"
	"github.com/danthegoodman1/dynamicblog/gologger"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

var logger = gologger.NewLogger()

type (
	// DB is what Seed needs from a database handle, *sql.DB satisfies it.
	DB interface {
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
		QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	}

	// Script produces the text of one CREATE TABLE statement.
	Script func() (string, error)

	// Seed turns table descriptors into statements and runs them.
	Seed struct {
		db       DB
		dialect  Dialect
		validate *validator.Validate

		slowQueryThreshold time.Duration
		uploader           Uploader
	}

	Option func(*Seed)
)

// WithSlowQueryThreshold sets the duration above which a statement is logged
// as slow. Zero turns detection off.
func WithSlowQueryThreshold(d time.Duration) Option {
	return func(s *Seed) {
		s.slowQueryThreshold = d
	}
}

// WithUploader sets where s3:// exports go.
func WithUploader(u Uploader) Option {
	return func(s *Seed) {
		s.uploader = u
	}
}

func New(database DB, dialect Dialect, opts ...Option) *Seed {
	s := &Seed{
		db:                 database,
		dialect:            dialect,
		validate:           newValidator(),
		slowQueryThreshold: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Seed) Dialect() Dialect {
	return s.dialect
}

// CreateTable renders the CREATE TABLE statement for name and columns. It does
// not execute anything.
func (s *Seed) CreateTable(name string, columns []Column) (string, error) {
	t := Table{Name: name, Columns: columns}
	if err := s.validate.Struct(t); err != nil {
		return "", fmt.Errorf("%w %s: %s", ErrInvalidTable, name, err.Error())
	}

	pk := t.primaryKey()
	var defs []string
	inlined := false
	for _, col := range columns {
		def, inlinePK, err := s.dialect.ColumnDef(col, len(pk))
		if err != nil {
			return "", fmt.Errorf("error rendering %s.%s: %w", name, col.Name, err)
		}
		inlined = inlined || inlinePK
		defs = append(defs, def)
	}

	if len(pk) > 0 && !inlined {
		defs = append(defs, "PRIMARY KEY ("+strings.Join(s.quoteColumns(pk), ", ")+")")
	}

	for _, col := range columns {
		if col.ForeignKey == "" {
			continue
		}
		fk, err := parseForeignKey(col.ForeignKey)
		if err != nil {
			return "", err
		}
		defs = append(defs, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			s.dialect.Quote(col.Name), s.dialect.Quote(fk.Table), s.dialect.Quote(fk.Column)))
	}

	return "CREATE TABLE " + s.dialect.Quote(name) + " (\n\t" + strings.Join(defs, ",\n\t") + "\n)", nil
}

func (s *Seed) quoteColumns(cols []Column) []string {
	return lo.Map(cols, func(c Column, _ int) string {
		return s.dialect.Quote(c.Name)
	})
}

// ExecuteNonQuery runs a single statement.
func (s *Seed) ExecuteNonQuery(ctx context.Context, statement string) error {
	_, err := s.exec(ctx, statement)
	return err
}

// InsertInto appends row to table.
func (s *Seed) InsertInto(ctx context.Context, table string, row *Row) error {
	if !isIdent(table) {
		return fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}
	if row == nil || row.Len() == 0 {
		return fmt.Errorf("%w: insert into %s", ErrEmptyRow, table)
	}

	cols := row.Columns()
	for _, col := range cols {
		if !isIdent(col) {
			return fmt.Errorf("%w: column %q", ErrInvalidIdentifier, col)
		}
	}

	query, args, err := squirrel.Insert(s.dialect.Quote(table)).
		Columns(lo.Map(cols, func(c string, _ int) string { return s.dialect.Quote(c) })...).
		Values(lo.Map(row.Values(), func(v Value, _ int) any { return v.Any() })...).
		PlaceholderFormat(s.dialect.Placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building insert for %s: %w", table, err)
	}

	_, err = s.exec(ctx, query, args...)
	return err
}

// PurgeDb drops every foreign key and then every table in the current database.
func (s *Seed) PurgeDb(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if q := s.dialect.ListForeignKeys(); q != "" {
		fks, err := s.queryPairs(ctx, q)
		if err != nil {
			return err
		}
		for _, fk := range fks {
			if _, err := s.exec(ctx, s.dialect.DropForeignKey(fk[0], fk[1])); err != nil {
				return err
			}
		}
		logger.Debug().Int("count", len(fks)).Msg("dropped foreign keys")
	}

	tables, err := s.queryStrings(ctx, s.dialect.ListTables())
	if err != nil {
		return err
	}
	if s.dialect.ReverseDrop() {
		tables = lo.Reverse(tables)
	}
	for _, table := range tables {
		if _, err := s.exec(ctx, s.dialect.DropTable(table)); err != nil {
			return err
		}
	}
	logger.Debug().Strs("tables", tables).Msg("purged database")

	return nil
}

// exec and the query helpers return driver errors unwrapped, the message is
// what callers of the seed routes get to see. observe logs the statement.
func (s *Seed) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	st := time.Now()
	res, err := s.db.ExecContext(ctx, query, args...)
	s.observe(ctx, query, time.Since(st), err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Seed) queryStrings(ctx context.Context, query string) ([]string, error) {
	st := time.Now()
	rows, err := s.db.QueryContext(ctx, query)
	s.observe(ctx, query, time.Since(st), err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("error in rows.Scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Seed) queryPairs(ctx context.Context, query string) ([][2]string, error) {
	st := time.Now()
	rows, err := s.db.QueryContext(ctx, query)
	s.observe(ctx, query, time.Since(st), err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][2]string
	for rows.Next() {
		var p [2]string
		if err := rows.Scan(&p[0], &p[1]); err != nil {
			return nil, fmt.Errorf("error in rows.Scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Seed) observe(ctx context.Context, query string, d time.Duration, err error) {
	logger := zerolog.Ctx(ctx)
	if err != nil {
		logger.Debug().Err(err).Str("code", db.ErrorCode(err)).Str("statement", query).Msg("statement failed")
		return
	}
	if s.slowQueryThreshold > 0 && d > s.slowQueryThreshold && !SlowQueryDetectionSkipped(ctx) {
		logger.Warn().Str("statement", query).Int64("durationNS", d.Nanoseconds()).Str("durationHuman", d.String()).Msg("slow statement")
	}
}
