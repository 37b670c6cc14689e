package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/danthegoodman1/dynamicblog/db"
	"github.com/danthegoodman1/dynamicblog/gologger"
	"github.com/danthegoodman1/dynamicblog/http_server"
	"github.com/danthegoodman1/dynamicblog/s3_helper"
	"github.com/danthegoodman1/dynamicblog/schema"
	"github.com/danthegoodman1/dynamicblog/seed"
	"github.com/danthegoodman1/dynamicblog/utils"
)

var logger = gologger.NewLogger()

func main() {
	logger.Debug().Msg("starting DynamicBlog seed api")

	if err := run(); err != nil {
		logger.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func run() error {
	driver := db.NormalizeDriver(utils.DB_DRIVER)
	database, err := db.Connect(driver, utils.DB_DSN)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer database.Close()

	dialect, err := seed.DialectFor(driver)
	if err != nil {
		return err
	}

	uploader, err := s3_helper.NewUploader()
	if err != nil {
		return fmt.Errorf("error creating s3 uploader: %w", err)
	}

	facade := seed.New(database, dialect,
		seed.WithSlowQueryThreshold(time.Millisecond*time.Duration(utils.GetEnvOrDefaultInt("SLOW_QUERY_MS", 500))),
		seed.WithUploader(uploader),
	)
	sch := schema.New(facade)
	if err := seed.CheckDependencyOrder(sch.Tables()); err != nil {
		return fmt.Errorf("error checking schema: %w", err)
	}

	exportPath, err := resolveExportPath(utils.EXPORT_PATH)
	if err != nil {
		return err
	}

	httpServer, err := http_server.StartHTTPServer(utils.HTTP_PORT, facade, sch, exportPath)
	if err != nil {
		return err
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Warn().Msg("received shutdown signal!")

	// For AWS ALB needing some time to de-register pod
	sleepTime := utils.GetEnvOrDefaultInt("SHUTDOWN_SLEEP_SEC", 0)
	logger.Info().Msg(fmt.Sprintf("sleeping for %ds before exiting", sleepTime))

	time.Sleep(time.Second * time.Duration(sleepTime))
	logger.Info().Msg(fmt.Sprintf("slept for %ds, exiting", sleepTime))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown HTTP server")
	} else {
		logger.Info().Msg("successfully shutdown HTTP server")
	}
	return nil
}

// resolveExportPath defaults to the working directory and makes local paths
// absolute so the confirmation message names the real location.
func resolveExportPath(p string) (string, error) {
	if _, _, ok := utils.SplitS3URI(p); ok {
		return p, nil
	}
	if p == "" {
		p = "."
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("error in filepath.Abs: %w", err)
	}
	return abs, nil
}

