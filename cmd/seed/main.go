// Command seed creates a blog author account. It prompts for the password
// on the terminal (no echo) so credentials never land in shell history.
//
// Usage:
//
//	seed -u testboy -f Test -l Boy [-d <dsn>]
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/akarpov/miniblog/internal/common"
	"github.com/akarpov/miniblog/internal/server/config"
	"github.com/akarpov/miniblog/internal/server/repositories/repomanager"
	"github.com/akarpov/miniblog/internal/server/services"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	username := fs.String("u", "", "username of the account to create")
	firstName := fs.String("f", "", "author first name")
	lastName := fs.String("l", "", "author last name")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*username) == "" {
		return errors.New("username is required (-u)")
	}
	if strings.TrimSpace(*firstName) == "" || strings.TrimSpace(*lastName) == "" {
		return errors.New("first and last name are required (-f, -l)")
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", *username)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("password read error: %w", err)
	}
	if len(strings.TrimSpace(string(pw))) == 0 {
		return errors.New("password must not be empty")
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("db migration error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg)
	user, err := us.Register(ctx, *username, string(pw), *firstName, *lastName)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return fmt.Errorf("username %q already taken", *username)
		}
		return fmt.Errorf("register error: %w", err)
	}

	fmt.Printf("created user %s (%s)\n", user.Username, user.Identity().Name())
	return nil
}
