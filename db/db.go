package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danthegoodman1/dynamicblog/gologger"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/mattn/go-sqlite3"
)

var (
	logger = gologger.NewLogger()

	ErrUnknownDriver = errors.New("unknown database driver")
)

// NormalizeDriver maps the accepted aliases onto registered driver names:
// cockroach speaks the postgres protocol and sqlite is sqlite3.
func NormalizeDriver(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "cockroach", "cockroachdb":
		return "postgres"
	case "mysql":
		return "mysql"
	case "sqlite3", "sqlite":
		return "sqlite3"
	default:
		return name
	}
}

// Connect opens a pool for the given driver and pings it.
func Connect(driver, dsn string) (*sql.DB, error) {
	driver = NormalizeDriver(driver)
	logger.Debug().Str("driver", driver).Msg("connecting to database...")
	var (
		pool *sql.DB
		err  error
	)
	switch driver {
	case "postgres":
		var config *pgx.ConnConfig
		config, err = pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("error in pgx.ParseConfig: %w", err)
		}
		pool = stdlib.OpenDB(*config)
	case "mysql":
		var config *mysql.Config
		config, err = mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("error in mysql.ParseDSN: %w", err)
		}
		pool, err = sql.Open("mysql", config.FormatDSN())
	case "sqlite3":
		pool, err = sql.Open("sqlite3", dsn)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, fmt.Errorf("error in sql.Open: %w", err)
	}

	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(1)
	pool.SetConnMaxLifetime(time.Minute * 30)
	pool.SetConnMaxIdleTime(time.Minute * 30)
	if driver == "sqlite3" {
		// a single connection keeps ":memory:" databases alive across statements
		pool.SetMaxOpenConns(1)
	}

	if err = pool.Ping(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	logger.Debug().Str("driver", driver).Msg("connected to database")
	return pool, nil
}

// ErrorCode extracts the engine error code from a driver error, or "" when
// err did not come from one of the supported drivers.
func ErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return strconv.Itoa(int(myErr.Number))
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return strconv.Itoa(int(liteErr.ExtendedCode))
	}
	return ""
}
