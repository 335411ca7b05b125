package main

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/config"
	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func TestRunShutsDownOnSignal(t *testing.T) {
	signals := make(chan os.Signal, 1)
	listening := make(chan struct{})

	listen := ListenFunc(func(app *fiber.App, addr string) error {
		close(listening)
		// Block like a real listener until shutdown tears the app down.
		select {}
	})

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), config.Config{ServerPort: ":0", JWTSecret: "s"}, nil, nil, nil, signals, listen)
	}()

	<-listening
	signals <- syscall.SIGTERM

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not shut down after signal")
	}
}

func TestRunReturnsListenError(t *testing.T) {
	errListen := errors.New("listen failed")
	listen := ListenFunc(func(app *fiber.App, addr string) error {
		return errListen
	})

	err := Run(context.Background(), config.Config{ServerPort: ":0", JWTSecret: "s"}, nil, nil, nil, make(chan os.Signal), listen)
	if !errors.Is(err, errListen) {
		t.Fatalf("expected listen error, got %v", err)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	listening := make(chan struct{})

	listen := ListenFunc(func(app *fiber.App, addr string) error {
		close(listening)
		select {}
	})

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, config.Config{ServerPort: ":0", JWTSecret: "s"}, nil, nil, nil, make(chan os.Signal), listen)
	}()

	<-listening
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not stop after context cancel")
	}
}

func TestRealMainWiresDependencies(t *testing.T) {
	var gotConfig, gotRun bool
	cfg := config.Config{ServerPort: ":9999", JWTSecret: "s"}

	deps := mainDeps{
		loadConfig: func() config.Config {
			gotConfig = true
			return cfg
		},
		connectPostgres: func(config.Config) (*pgxpool.Pool, error) {
			return nil, errors.New("no database in tests")
		},
		connectRedis: func(config.Config) *redis.Client {
			return nil
		},
		connectMinio: func(context.Context, config.Config) (*storage.MinioStore, error) {
			return nil, nil
		},
		notify: func(chan<- os.Signal, ...os.Signal) {},
		run: func(_ context.Context, c config.Config, _ *pgxpool.Pool, _ *redis.Client, _ storage.ObjectStore, _ <-chan os.Signal, _ ListenFunc) error {
			gotRun = c == cfg
			return nil
		},
	}

	realMain(deps)
	if !gotConfig || !gotRun {
		t.Fatalf("realMain did not thread config through: config=%v run=%v", gotConfig, gotRun)
	}
}

func TestMainUsesInjectedRunner(t *testing.T) {
	origRunner := mainRunner
	origProvider := mainDepsProvider
	defer func() {
		mainRunner = origRunner
		mainDepsProvider = origProvider
	}()

	var called bool
	mainDepsProvider = func() mainDeps { return mainDeps{} }
	mainRunner = func(mainDeps) { called = true }

	main()
	if !called {
		t.Fatalf("main should invoke the configured runner")
	}
}
