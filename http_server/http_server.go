package http_server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/danthegoodman1/dynamicblog/gologger"
	"github.com/danthegoodman1/dynamicblog/schema"
	"github.com/danthegoodman1/dynamicblog/seed"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

var logger = gologger.NewLogger()

type (
	// SeedFacade is the part of the seed façade the actions call directly.
	SeedFacade interface {
		ExecuteNonQuery(ctx context.Context, statement string) error
		PurgeDb(ctx context.Context) error
		Export(ctx context.Context, destination string, scripts []seed.Script) error
	}

	HTTPServer struct {
		Echo   *echo.Echo
		Seed   SeedFacade
		Schema *schema.Schema
		// ExportPath is where /seed/export writes, a directory or s3:// uri.
		ExportPath string
	}
)

// NewHTTPServer builds the server and its routes without listening.
func NewHTTPServer(facade SeedFacade, sch *schema.Schema, exportPath string) *HTTPServer {
	s := &HTTPServer{
		Echo:       echo.New(),
		Seed:       facade,
		Schema:     sch,
		ExportPath: exportPath,
	}
	s.Echo.HideBanner = true
	s.Echo.HidePort = true

	s.Echo.Use(CreateReqContext)
	s.Echo.Use(LoggerMiddleware)

	// technical - no auth
	s.Echo.GET("/hc", s.HealthCheck)

	seedGroup := s.Echo.Group("/seed", LocalOnly)
	seedGroup.POST("/purgedb", s.seedAction(s.PurgeDb))
	seedGroup.POST("/all", s.seedAction(s.All))
	seedGroup.POST("/export", s.seedAction(s.Export))
	seedGroup.POST("/sampleentries", s.seedAction(s.SampleEntries))

	return s
}

// StartHTTPServer listens on port and serves h2c in the background.
func StartHTTPServer(port string, facade SeedFacade, sch *schema.Schema, exportPath string) (*HTTPServer, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		return nil, fmt.Errorf("error creating tcp listener: %w", err)
	}
	s := NewHTTPServer(facade, sch, exportPath)

	s.Echo.Listener = listener
	go func() {
		logger.Info().Msg("starting h2c server on " + listener.Addr().String())
		err := s.Echo.StartH2CServer("", &http2.Server{})
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start h2c server, exiting")
		}
	}()

	return s, nil
}

func (*HTTPServer) HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	err := s.Echo.Shutdown(ctx)
	return err
}

func LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			// default handler
			c.Error(err)
		}
		stop := time.Since(start)
		// Log otherwise
		logger := zerolog.Ctx(c.Request().Context())
		req := c.Request()
		res := c.Response()

		p := req.URL.Path
		if p == "" {
			p = "/"
		}

		cl := req.Header.Get(echo.HeaderContentLength)
		if cl == "" {
			cl = "0"
		}
		logger.Debug().Str("method", req.Method).Str("remote_addr", req.RemoteAddr).Str("req_uri", req.RequestURI).Str("handler_path", c.Path()).Str("path", p).Int("status", res.Status).Int64("latency_ns", int64(stop)).Str("protocol", req.Proto).Str("bytes_in", cl).Int64("bytes_out", res.Size).Msg("req received")
		return nil
	}
}
