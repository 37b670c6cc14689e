package migrations

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	migrate "github.com/rubenv/sql-migrate"
)

var ErrNoStatements = errors.New("script has no up statements")

// ParseScript parses one exported script in the sql-migrate file format.
func ParseScript(name string, body []byte) (*migrate.Migration, error) {
	m, err := migrate.ParseMigration(name, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error in migrate.ParseMigration: %w", err)
	}
	if len(m.Up) == 0 {
		return nil, ErrNoStatements
	}
	return m, nil
}

// LoadScripts reads the named scripts back from dir, in the given order.
// Other files in dir are left alone.
func LoadScripts(dir string, names []string) ([]*migrate.Migration, error) {
	ms := make([]*migrate.Migration, 0, len(names))
	for _, name := range names {
		body, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("error in os.ReadFile: %w", err)
		}
		m, err := ParseScript(name, body)
		if err != nil {
			return nil, fmt.Errorf("error reading back %s: %w", name, err)
		}
		ms = append(ms, m)
	}
	return ms, nil
}
