package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	directory "github.com/goliatone/go-directory"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("no .env file loaded: %v\n", err)
	}

	cfg := AppConfig{}
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("directory"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	fmt.Println("============")
	fmt.Println(print.MaybeHighlightJSON(cfg.redacted()))
	fmt.Println("============")

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.DSN)
	if err != nil {
		lgr.GetLogger("persistence").Error("database bootstrap failed", "error", err)
		os.Exit(1)
	}

	repos := directory.NewRepositoryManager(db)
	repos.MustValidate()

	auther := directory.NewAuthenticator(repos.Credentials(), cfg.Auth).
		WithLogger(lgr.GetLogger("auth"))

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName:       "directory",
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	srv.Router().WithLogger(lgr.GetLogger("router"))

	srv.Router().Get("/health", func(ctx router.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	}).SetName("health.get")

	directory.RegisterAuthRoutes(srv.Router().Group("/"),
		directory.WithAuthControllerAuther(auther),
		directory.WithAuthControllerLogger(lgr.GetLogger("auth:ctrl")),
	)

	protected := auther.ProtectedRoute(cfg.Auth, auther.MakeAPIAuthErrorHandler())

	directory.RegisterProfileRoutes(srv.Router().Group("/"), protected,
		directory.WithProfileControllerRepo(repos.Profiles()),
		directory.WithProfileControllerLogger(lgr.GetLogger("profiles:ctrl")),
	)

	lgr.GetLogger("app").Info("listening", "address", cfg.Address)

	srv.Serve(cfg.Address)

	WaitExitSignal()
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := createSchema(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

func createSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*directory.Profile)(nil),
		(*directory.Credential)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
