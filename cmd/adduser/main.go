// Command adduser creates a docvault account from the terminal.
//
//	adduser -email a@x.com [-d dsn] [-c config.yaml]
//
// It reads the same configuration as the server, applies pending migrations
// and asks for the password twice.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/huseyinozgul/docvault/internal/adduser"
	"github.com/huseyinozgul/docvault/internal/dbx"
	"github.com/huseyinozgul/docvault/internal/flagx"
	"github.com/huseyinozgul/docvault/internal/server/config"
	"github.com/huseyinozgul/docvault/internal/server/repositories/repomanager"
	"github.com/huseyinozgul/docvault/internal/server/services"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	var email string
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&email, "email", "", "email of the new user")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-email", "--email"})); err != nil {
		return err
	}

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	db, err := dbx.OpenPostgres(ctx, cfg.DatabaseDSN, dbx.PoolOptions{MaxOpenConns: 1})
	if err != nil {
		return err
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return err
	}

	return adduser.Run(ctx, services.NewUserService(db, rm, cfg), email, os.Stdout)
}
