package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/vistoria/go-identity"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("identity"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := LoadConfig()
	if cfg.SigningKey == "" {
		log.Fatal("IDENTITY_SIGNING_KEY is required")
	}

	fmt.Println("============")
	fmt.Println(print.MaybeHighlightJSON(cfg))
	fmt.Println("============")

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	identity.SetHashCost(cfg.GetHashCost())

	repo := identity.NewRepositoryManager(db)
	repo.MustValidate()

	tokens := identity.NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenExpiration(),
		cfg.GetIssuer(),
		cfg.GetAudience(),
		lgr.GetLogger("tokens"),
	)

	accounts := identity.NewAccounts(repo.Clients(), tokens, buildMailer(cfg, lgr)).
		WithLogger(lgr.GetLogger("accounts"))

	app := fiber.New(fiber.Config{
		AppName: "identity-server",
	})

	identity.RegisterClientRoutes(app,
		identity.WithControllerAccounts(accounts),
		identity.WithControllerTokens(tokens),
		identity.WithControllerLogger(lgr.GetLogger("http")),
	)

	go func() {
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatal(err)
		}
	}()

	WaitExitSignal()

	if err := app.Shutdown(); err != nil {
		lgr.GetLogger("http").Error("shutdown error", "error", err)
	}
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewCreateTable().
		Model((*identity.Client)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

func buildMailer(cfg *Config, lgr *glog.BaseLogger) identity.Mailer {
	if cfg.MailerMode == "smtp" {
		return identity.NewSMTPMailer(identity.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}).WithLogger(lgr.GetLogger("mailer"))
	}
	return identity.LogMailer{}
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
