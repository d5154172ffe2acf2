package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/core/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/SscSPs/expense_tracker_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/expense_tracker_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

const usage = `ledgerctl <command> [flags]

Commands:
  migrate                      apply pending database migrations
  reconcile [--dry-run] [--account ID]
                               recompute account totals from the ledger and print the report as JSON
  create-user --username U --full-name N [--email E] [--role R]
                               create a user; the password is read from LEDGER_USER_PASSWORD
`

var errUsage = errors.New("usage")

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		logger.Error("ledgerctl failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, logger *slog.Logger) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	switch args[0] {
	case "migrate":
		_, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		return err
	case "reconcile":
		return reconcile(ctx, cfg, args[1:], out)
	case "create-user":
		return createUser(ctx, cfg, args[1:], out)
	}
	return errUsage
}

// session is a service container bound to its own connection pool.
type session struct {
	container *portssvc.ServiceContainer
	pool      *pgxpool.Pool
}

func (s *session) Close() {
	database.ClosePgxPool(s.pool)
}

func openSession(ctx context.Context, cfg *config.Config) (*session, error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, err
	}
	return &session{
		container: services.NewServiceContainer(ctx, cfg, pgsql.NewRepositoryProvider(pool)),
		pool:      pool,
	}, nil
}

func reconcile(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("reconcile", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "report drift without writing corrections")
	accountID := fs.String("account", "", "reconcile a single account")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	sess, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	var result any
	if *accountID != "" {
		result, err = sess.container.Reconciliation.ReconcileAccount(ctx, *accountID, *dryRun)
	} else {
		result, err = sess.container.Reconciliation.ReconcileAll(ctx, *dryRun)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func createUser(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	username := fs.String("username", "", "login name")
	fullName := fs.String("full-name", "", "display name")
	email := fs.String("email", "", "email used for Google sign-in")
	role := fs.String("role", string(domain.RoleAdmin), "directeur, directeur_general, pca or admin")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	password := os.Getenv("LEDGER_USER_PASSWORD")
	if *username == "" || *fullName == "" || password == "" {
		return errUsage
	}

	sess, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	user, err := sess.container.User.CreateUser(ctx, dto.CreateUserRequest{
		Username: *username,
		Password: password,
		FullName: *fullName,
		Email:    *email,
		Role:     domain.Role(*role),
	}, "ledgerctl")
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.ToUserResponse(user))
}
