package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/workgram/miniapp-server/internal/config"
	"github.com/workgram/miniapp-server/internal/database"
	"github.com/workgram/miniapp-server/registrations"
	"github.com/workgram/miniapp-server/server"
	"github.com/workgram/miniapp-server/storage"
	"github.com/workgram/miniapp-server/users"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c.GetEnv())

	if err := config.Validate(c); err != nil {
		return err
	}

	displayAppname(c.GetAppName())

	db, err := database.Connect(c.GetDatabasePath())
	if err != nil {
		return fmt.Errorf("database.Connect: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.CreateTables(ctx, db); err != nil {
		return fmt.Errorf("database.CreateTables: %w", err)
	}

	store, err := storage.NewDiskStore(filepath.Join(c.GetDataFolder(), "uploads"), c.GetBaseURL())
	if err != nil {
		return fmt.Errorf("storage.NewDiskStore: %w", err)
	}

	srv, err := server.New(c, server.Deps{
		DB:            db,
		Users:         users.NewBunDirectory(db),
		Registrations: registrations.NewBunRepo(db),
		Store:         store,
	})
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func setupLogging(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
