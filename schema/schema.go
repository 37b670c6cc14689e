// Package schema is where the DynamicBlog database is defined. Tables are
// created in the order Tables returns them, so a table must come after every
// table it references.
package schema

import (
	"context"

	"github.com/danthegoodman1/dynamicblog/seed"
)

type (
	// Seeder is the part of the seed façade the schema needs.
	Seeder interface {
		CreateTable(name string, columns []seed.Column) (string, error)
		InsertInto(ctx context.Context, table string, row *seed.Row) error
	}

	Schema struct {
		Seed Seeder
	}

	samplePost struct {
		Title string
		Body  string
	}
)

var samplePosts = []samplePost{
	{Title: "My First Blog Post", Body: "First Body"},
	{Title: "Another Blog Post", Body: "Another Body"},
	{Title: "Sample", Body: "Sample Body"},
	{Title: "Yet Another One", Body: "Yet Another Body"},
}

func New(s Seeder) *Schema {
	return &Schema{Seed: s}
}

func (s *Schema) Tables() []seed.Table {
	return []seed.Table{
		{
			Name: "Blogs",
			Columns: []seed.Column{
				{Name: "Id", Type: "int", PrimaryKey: true, Identity: true},
				{Name: "Title", Type: "varchar(255)"},
				{Name: "Body", Type: "text"},
			},
		},
		{
			Name: "Comments",
			Columns: []seed.Column{
				{Name: "Id", Type: "int", PrimaryKey: true, Identity: true},
				{Name: "BlogId", Type: "int", ForeignKey: "Blogs(Id)"},
				{Name: "Text", Type: "text"},
			},
		},
	}
}

// Scripts returns one CREATE TABLE producer per table, in creation order.
// Nothing is rendered until a producer is called.
func (s *Schema) Scripts() []seed.Script {
	tables := s.Tables()
	scripts := make([]seed.Script, 0, len(tables))
	for _, t := range tables {
		t := t
		scripts = append(scripts, func() (string, error) {
			return s.Seed.CreateTable(t.Name, t.Columns)
		})
	}
	return scripts
}

// SampleEntries inserts the sample blog posts. Running it twice inserts them twice.
func (s *Schema) SampleEntries(ctx context.Context) error {
	for _, post := range samplePosts {
		row := seed.NewRow().
			Set("Title", seed.String(post.Title)).
			Set("Body", seed.String(post.Body))
		if err := s.Seed.InsertInto(ctx, "Blogs", row); err != nil {
			return err
		}
	}
	return nil
}
