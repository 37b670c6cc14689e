package schema

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/danthegoodman1/dynamicblog/seed"
	"github.com/stretchr/testify/require"
)

type (
	insert struct {
		table string
		row   *seed.Row
	}

	recordingSeeder struct {
		created   []string
		inserts   []insert
		insertErr error
		failAfter int
	}
)

func (r *recordingSeeder) CreateTable(name string, _ []seed.Column) (string, error) {
	r.created = append(r.created, name)
	return "CREATE TABLE " + name, nil
}

func (r *recordingSeeder) InsertInto(_ context.Context, table string, row *seed.Row) error {
	if r.insertErr != nil && len(r.inserts) == r.failAfter {
		return r.insertErr
	}
	r.inserts = append(r.inserts, insert{table: table, row: row})
	return nil
}

func TestTablesAreInDependencyOrder(t *testing.T) {
	s := New(&recordingSeeder{})
	require.NoError(t, seed.CheckDependencyOrder(s.Tables()))

	position := map[string]int{}
	for i, table := range s.Tables() {
		position[table.Name] = i
	}
	for i, table := range s.Tables() {
		for _, ref := range table.References() {
			require.Less(t, position[ref], i, "%s references %s", table.Name, ref)
		}
	}
}

func TestScriptsAreLazyAndOrdered(t *testing.T) {
	rec := &recordingSeeder{}
	s := New(rec)

	scripts := s.Scripts()
	require.Len(t, scripts, len(s.Tables()))
	require.Empty(t, rec.created)

	for i, script := range scripts {
		stmt, err := script()
		require.NoError(t, err)
		require.Equal(t, "CREATE TABLE "+s.Tables()[i].Name, stmt)
	}
	require.Equal(t, []string{"Blogs", "Comments"}, rec.created)

	// a second enumeration starts over
	for _, script := range s.Scripts() {
		_, err := script()
		require.NoError(t, err)
	}
	require.Equal(t, []string{"Blogs", "Comments", "Blogs", "Comments"}, rec.created)
}

func TestScriptsRenderWithRealSeed(t *testing.T) {
	d, err := seed.DialectFor("postgres")
	require.NoError(t, err)
	s := New(seed.New(nil, d))

	var stmts []string
	for _, script := range s.Scripts() {
		stmt, err := script()
		require.NoError(t, err)
		stmts = append(stmts, stmt)
	}
	require.Len(t, stmts, 2)
	require.Contains(t, stmts[1], `FOREIGN KEY ("BlogId") REFERENCES "Blogs" ("Id")`)
}

func TestSampleEntriesTwiceDuplicates(t *testing.T) {
	rec := &recordingSeeder{}
	s := New(rec)

	require.NoError(t, s.SampleEntries(context.Background()))
	require.Len(t, rec.inserts, len(samplePosts))
	require.NoError(t, s.SampleEntries(context.Background()))
	require.Len(t, rec.inserts, 2*len(samplePosts))

	first := rec.inserts[0]
	require.Equal(t, "Blogs", first.table)
	require.Equal(t, []string{"Title", "Body"}, first.row.Columns())
	title, ok := first.row.Get("Title")
	require.True(t, ok)
	require.Equal(t, "My First Blog Post", title.Any())
	require.Equal(t, first.row.Columns(), rec.inserts[len(samplePosts)].row.Columns())
}

func TestSampleEntriesStopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	rec := &recordingSeeder{insertErr: boom, failAfter: 2}
	s := New(rec)

	err := s.SampleEntries(context.Background())
	require.True(t, errors.Is(err, boom))
	require.Equal(t, "boom", err.Error(), fmt.Sprintf("error should not be wrapped, got %q", err))
	require.Len(t, rec.inserts, 2)
}
