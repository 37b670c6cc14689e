package seed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/danthegoodman1/dynamicblog/migrations"
	"github.com/danthegoodman1/dynamicblog/utils"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

type (
	Uploader interface {
		Upload(ctx context.Context, bucket, key string, body io.Reader, contentType *string) error
	}

	exportFile struct {
		Name string
		Body []byte
	}
)

var (
	createTableRE = regexp.MustCompile("(?i)^\\s*CREATE\\s+TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?[\"`\\[]?([a-zA-Z_][a-zA-Z0-9_]*)")

	ErrNoUploader = utils.PermError("no uploader configured for s3 export")
)

// Export runs every script and writes one sql-migrate file per statement to
// destination, a local directory or an s3://bucket/prefix uri. Files are named
// after their position and table, e.g. 0001_Blogs.sql.
func (s *Seed) Export(ctx context.Context, destination string, scripts []Script) error {
	logger := zerolog.Ctx(ctx)

	files := make([]exportFile, 0, len(scripts))
	for i, script := range scripts {
		statement, err := script()
		if err != nil {
			return err
		}
		f, err := s.exportFile(i+1, statement)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	if bucket, prefix, ok := utils.SplitS3URI(destination); ok {
		if s.uploader == nil {
			return ErrNoUploader
		}
		for _, f := range files {
			key := path.Join(prefix, f.Name)
			err := s.uploader.Upload(ctx, bucket, key, bytes.NewReader(f.Body), utils.Ptr("application/sql"))
			if err != nil {
				return fmt.Errorf("error uploading %s: %w", key, err)
			}
		}
	} else {
		if err := os.MkdirAll(destination, 0755); err != nil {
			return fmt.Errorf("error in os.MkdirAll: %w", err)
		}
		for _, f := range files {
			if err := os.WriteFile(filepath.Join(destination, f.Name), f.Body, 0644); err != nil {
				return fmt.Errorf("error in os.WriteFile: %w", err)
			}
		}
		names := lo.Map(files, func(f exportFile, _ int) string { return f.Name })
		if _, err := migrations.LoadScripts(destination, names); err != nil {
			return err
		}
	}

	logger.Info().Str("destination", destination).Int("files", len(files)).Msg("exported scripts")
	return nil
}

func (s *Seed) exportFile(n int, statement string) (exportFile, error) {
	statement = strings.TrimRight(strings.TrimSpace(statement), ";")
	name := fmt.Sprintf("%04d.sql", n)
	down := ""
	if m := createTableRE.FindStringSubmatch(statement); m != nil {
		name = fmt.Sprintf("%04d_%s.sql", n, m[1])
		down = s.dialect.DropTable(m[1]) + ";\n"
	}

	var b bytes.Buffer
	b.WriteString("-- +migrate Up\n")
	b.WriteString(statement)
	b.WriteString(";\n\n-- +migrate Down\n")
	b.WriteString(down)

	if _, err := migrations.ParseScript(name, b.Bytes()); err != nil {
		return exportFile{}, fmt.Errorf("error validating %s: %w", name, err)
	}
	return exportFile{Name: name, Body: b.Bytes()}, nil
}
