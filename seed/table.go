package seed

import (
	"fmt"
	"regexp"

	"github.com/danthegoodman1/dynamicblog/utils"
	"github.com/go-playground/validator/v10"
)

type (
	Table struct {
		Name    string   `validate:"required,sqlident"`
		Columns []Column `validate:"required,min=1,dive"`
	}

	Column struct {
		Name string `validate:"required,sqlident"`
		// Type is engine specific and rendered as is, e.g. "nvarchar(255)"
		Type       string `validate:"required"`
		PrimaryKey bool
		Identity   bool
		// ForeignKey references another table's column as "Table(Column)"
		ForeignKey string `validate:"omitempty,fkref"`
	}

	foreignKey struct {
		Table  string
		Column string
	}
)

var (
	identRE      = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	foreignKeyRE = regexp.MustCompile(`^\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\(\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\)\s*$`)

	ErrInvalidTable        = utils.PermError("invalid table definition")
	ErrInvalidIdentifier   = utils.PermError("invalid identifier")
	ErrBadForeignKey       = utils.PermError("foreign key must look like Table(Column)")
	ErrUnsupportedIdentity = utils.PermError("identity column not supported by dialect")
	ErrEmptyRow            = utils.PermError("row has no columns")
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Both registrations only fail on an empty tag name.
	_ = v.RegisterValidation("sqlident", func(fl validator.FieldLevel) bool {
		return isIdent(fl.Field().String())
	})
	_ = v.RegisterValidation("fkref", func(fl validator.FieldLevel) bool {
		_, err := parseForeignKey(fl.Field().String())
		return err == nil
	})
	return v
}

func isIdent(s string) bool {
	return identRE.MatchString(s)
}

func parseForeignKey(ref string) (foreignKey, error) {
	m := foreignKeyRE.FindStringSubmatch(ref)
	if m == nil {
		return foreignKey{}, fmt.Errorf("%w: %q", ErrBadForeignKey, ref)
	}
	return foreignKey{Table: m[1], Column: m[2]}, nil
}

// References lists the tables this table points at through foreign keys, in
// column order.
func (t Table) References() []string {
	var refs []string
	for _, col := range t.Columns {
		if col.ForeignKey == "" {
			continue
		}
		fk, err := parseForeignKey(col.ForeignKey)
		if err != nil {
			continue
		}
		refs = append(refs, fk.Table)
	}
	return refs
}

func (t Table) primaryKey() []Column {
	var pk []Column
	for _, col := range t.Columns {
		if col.PrimaryKey {
			pk = append(pk, col)
		}
	}
	return pk
}
