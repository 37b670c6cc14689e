package seed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckDependencyOrder(t *testing.T) {
	blogs := Table{Name: "Blogs", Columns: blogColumns}
	comments := Table{Name: "Comments", Columns: commentColumns}

	require.NoError(t, CheckDependencyOrder([]Table{blogs, comments}))
	require.ErrorIs(t, CheckDependencyOrder([]Table{comments, blogs}), ErrForwardReference)
	require.ErrorIs(t, CheckDependencyOrder([]Table{blogs, blogs}), ErrDuplicateTable)

	tree := Table{Name: "Categories", Columns: []Column{
		{Name: "Id", Type: "int", PrimaryKey: true},
		{Name: "ParentId", Type: "int", ForeignKey: "Categories(Id)"},
	}}
	require.NoError(t, CheckDependencyOrder([]Table{tree}))

	broken := Table{Name: "Tags", Columns: []Column{{Name: "BlogId", Type: "int", ForeignKey: "Blogs"}}}
	require.ErrorIs(t, CheckDependencyOrder([]Table{blogs, broken}), ErrBadForeignKey)
}

func TestTableReferences(t *testing.T) {
	comments := Table{Name: "Comments", Columns: commentColumns}
	require.Equal(t, []string{"Blogs"}, comments.References())
	require.Empty(t, Table{Name: "Blogs", Columns: blogColumns}.References())
}

func TestRowSetKeepsPosition(t *testing.T) {
	row := NewRow().Set("Title", String("a")).Set("Body", String("b")).Set("Title", String("c"))
	require.Equal(t, []string{"Title", "Body"}, row.Columns())
	require.Equal(t, 2, row.Len())
	v, ok := row.Get("Title")
	require.True(t, ok)
	require.Equal(t, KindString, v.Kind())
	require.Equal(t, "c", v.Any())

	_, ok = row.Get("Missing")
	require.False(t, ok)
	require.True(t, Null().IsNull())
	require.Nil(t, Null().Any())
	require.Equal(t, int64(7), Int(7).Any())
}
