package seed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/danthegoodman1/dynamicblog/db"
	"github.com/lib/pq"
)

type (
	// Dialect holds the engine specific pieces of the statements Seed builds.
	Dialect interface {
		Name() string
		Quote(ident string) string
		Placeholder() squirrel.PlaceholderFormat
		// ColumnDef renders a column for CREATE TABLE. inlinePK reports that the
		// definition already declares the primary key.
		ColumnDef(col Column, pkCols int) (def string, inlinePK bool, err error)

		// ListTables selects the base table names of the current database.
		ListTables() string
		// ListForeignKeys selects (table, constraint) pairs, "" when the engine
		// cannot drop constraints.
		ListForeignKeys() string
		DropForeignKey(table, constraint string) string
		DropTable(table string) string
		// ReverseDrop reports whether tables must be dropped in reverse creation order.
		ReverseDrop() bool
	}

	postgresDialect struct{}
	mysqlDialect    struct{}
	sqliteDialect   struct{}
)

var ErrUnknownDialect = errors.New("unknown dialect")

func DialectFor(name string) (Dialect, error) {
	switch db.NormalizeDriver(name) {
	case "postgres":
		return postgresDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	case "sqlite3":
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, name)
	}
}

func (postgresDialect) Name() string                            { return "postgres" }
func (postgresDialect) Quote(ident string) string               { return pq.QuoteIdentifier(ident) }
func (postgresDialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Dollar }
func (postgresDialect) ReverseDrop() bool                       { return false }

func (d postgresDialect) ColumnDef(col Column, _ int) (string, bool, error) {
	def := d.Quote(col.Name) + " " + col.Type
	if col.Identity {
		def += " GENERATED BY DEFAULT AS IDENTITY"
	}
	return def, false, nil
}

func (postgresDialect) ListTables() string {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'"
}

func (postgresDialect) ListForeignKeys() string {
	return "SELECT table_name, constraint_name FROM information_schema.table_constraints WHERE table_schema = current_schema() AND constraint_type = 'FOREIGN KEY'"
}

func (d postgresDialect) DropForeignKey(table, constraint string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", d.Quote(table), d.Quote(constraint))
}

func (d postgresDialect) DropTable(table string) string {
	return "DROP TABLE IF EXISTS " + d.Quote(table)
}

func (mysqlDialect) Name() string { return "mysql" }

func (mysqlDialect) Quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

func (mysqlDialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Question }
func (mysqlDialect) ReverseDrop() bool                       { return false }

func (d mysqlDialect) ColumnDef(col Column, _ int) (string, bool, error) {
	def := d.Quote(col.Name) + " " + col.Type
	if col.Identity {
		def += " AUTO_INCREMENT"
	}
	return def, false, nil
}

func (mysqlDialect) ListTables() string {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'"
}

func (mysqlDialect) ListForeignKeys() string {
	return "SELECT table_name, constraint_name FROM information_schema.table_constraints WHERE table_schema = DATABASE() AND constraint_type = 'FOREIGN KEY'"
}

func (d mysqlDialect) DropForeignKey(table, constraint string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s", d.Quote(table), d.Quote(constraint))
}

func (d mysqlDialect) DropTable(table string) string {
	return "DROP TABLE IF EXISTS " + d.Quote(table)
}

func (sqliteDialect) Name() string { return "sqlite3" }

func (sqliteDialect) Quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func (sqliteDialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Question }
func (sqliteDialect) ReverseDrop() bool                       { return true }

// ColumnDef for sqlite only allows identity on a lone integer primary key,
// which sqlite spells INTEGER PRIMARY KEY AUTOINCREMENT.
func (d sqliteDialect) ColumnDef(col Column, pkCols int) (string, bool, error) {
	if !col.Identity {
		return d.Quote(col.Name) + " " + col.Type, false, nil
	}
	if !col.PrimaryKey || pkCols != 1 {
		return "", false, fmt.Errorf("%w: sqlite3 identity column %s must be the only primary key", ErrUnsupportedIdentity, col.Name)
	}
	return d.Quote(col.Name) + " INTEGER PRIMARY KEY AUTOINCREMENT", true, nil
}

func (sqliteDialect) ListTables() string {
	return "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY rowid"
}

func (sqliteDialect) ListForeignKeys() string           { return "" }
func (sqliteDialect) DropForeignKey(_, _ string) string { return "" }

func (d sqliteDialect) DropTable(table string) string {
	return "DROP TABLE IF EXISTS " + d.Quote(table)
}
