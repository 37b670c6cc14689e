package seed

import (
	"fmt"

	"github.com/danthegoodman1/dynamicblog/utils"
)

var (
	ErrDuplicateTable   = utils.PermError("duplicate table")
	ErrForwardReference = utils.PermError("foreign key references a table that is not declared before it")
)

// CheckDependencyOrder verifies that tables can be created in the given order:
// names are unique and every foreign key points at a table declared earlier
// (or at the table itself).
func CheckDependencyOrder(tables []Table) error {
	declared := make(map[string]bool, len(tables))
	for _, t := range tables {
		if declared[t.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateTable, t.Name)
		}
		for _, col := range t.Columns {
			if col.ForeignKey == "" {
				continue
			}
			fk, err := parseForeignKey(col.ForeignKey)
			if err != nil {
				return fmt.Errorf("table %s column %s: %w", t.Name, col.Name, err)
			}
			if fk.Table != t.Name && !declared[fk.Table] {
				return fmt.Errorf("%w: %s.%s -> %s", ErrForwardReference, t.Name, col.Name, fk.Table)
			}
		}
		declared[t.Name] = true
	}
	return nil
}
