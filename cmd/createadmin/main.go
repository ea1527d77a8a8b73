// Command createadmin bootstraps an administrator account. Admins cannot be
// created through the public API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
	"github.com/Shivon404/financy-backend/internal/core/service"
	"github.com/Shivon404/financy-backend/internal/infrastructure/db/sqldb"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	fs.SetOutput(stderr)

	email := fs.String("email", "", "Admin email")
	firstName := fs.String("first-name", "Admin", "First name")
	lastName := fs.String("last-name", "", "Last name")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	driver := fs.String("driver", envOr("DB_DRIVER", sqldb.DriverSQLite), "Database driver (mysql or sqlite)")
	dsn := fs.String("dsn", envOr("DB_DSN", "financy.db"), "Database DSN")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		fmt.Fprintln(stdout, "Usage: createadmin -email <email> [-password <password>] [-driver mysql|sqlite] [-dsn <dsn>]")
		fs.PrintDefaults()
		return errors.New("missing required flags: email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password cannot be empty")
	}

	cfg := sqldb.Config{Driver: *driver, DSN: *dsn}
	if err := sqldb.RunMigrations(cfg); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	gw, err := sqldb.Connect(ctx, cfg, zerolog.Nop())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer gw.Close()

	auth := service.NewAuthService(sqldb.NewUserRepository(gw), nil, "", 0, zerolog.Nop())
	user, err := auth.RegisterAdmin(ctx, ports.RegisterInput{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  password,
	})
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return fmt.Errorf("user %s already exists", *email)
	case err != nil:
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Fprintf(stdout, "Admin %s created successfully with ID %d\n", user.Email, user.ID)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
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
