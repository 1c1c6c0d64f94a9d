package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	domainErrors "github.com/polkiloo/expensetracker/internal/domain/errors"
	pkgAuth "github.com/polkiloo/expensetracker/internal/pkg/auth"
	"github.com/polkiloo/expensetracker/internal/storage"
	"github.com/polkiloo/expensetracker/internal/usecase"
)

const defaultDSN = "sqlite://expenses.db"

func main() {
	_ = godotenv.Load()
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Email of the new account")
	passwordFlag := fs.String("password", "", "Password (prompted for when omitted)")
	dsn := fs.String("db", envOr("DATABASE_URI", defaultDSN), "Database DSN (postgres:// or sqlite://)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -email <email> [-password <password>] [-db <dsn>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	factory, err := storage.Open(ctx, *dsn, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer factory.Close()

	// tokens are never issued here, so no strategy is needed
	users := usecase.NewAuthUseCase(factory.Users(), pkgAuth.NewBcryptHasher(0), nil)
	user, err := users.Register(ctx, *email, password)
	switch {
	case errors.Is(err, domainErrors.ErrDuplicateEmail):
		return fmt.Errorf("user %s already exists", *email)
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return fmt.Errorf("email and password cannot be empty")
	case err != nil:
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", user.Email, user.ID)
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
