package http_server

import (
	"net/http"

	"github.com/danthegoodman1/dynamicblog/seed"
	"github.com/rs/zerolog"
)

// PurgeDb drops every table in the database.
func (s *HTTPServer) PurgeDb(c *CustomContext) error {
	if err := s.Seed.PurgeDb(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// All creates every table, in schema order. A failure leaves the tables
// created so far in place.
func (s *HTTPServer) All(c *CustomContext) error {
	ctx := c.Request().Context()
	logger := zerolog.Ctx(ctx)
	for i, script := range s.Schema.Scripts() {
		statement, err := script()
		if err != nil {
			return err
		}
		if err := s.Seed.ExecuteNonQuery(ctx, statement); err != nil {
			return err
		}
		logger.Debug().Int("script", i).Msg("executed script")
	}
	return c.NoContent(http.StatusOK)
}

// Export writes the creation scripts to the export path.
func (s *HTTPServer) Export(c *CustomContext) error {
	if err := s.Seed.Export(c.Request().Context(), s.ExportPath, s.Schema.Scripts()); err != nil {
		return err
	}
	return c.String(http.StatusOK, "Scripts exported to: "+s.ExportPath)
}

// SampleEntries inserts the sample rows. Slow statement warnings are off for
// the request since bulk inserts trip them.
func (s *HTTPServer) SampleEntries(c *CustomContext) error {
	ctx := seed.WithoutSlowQueryDetection(c.Request().Context())
	if err := s.Schema.SampleEntries(ctx); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
