// Package cli implements dashctl, the operator tool for a travelboard
// deployment: schema migrations, sample data, password resets and secrets.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/dbx"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/config"
	"github.com/dmitrijs2005/travelboard/internal/server/repositories/repomanager"
)

var ErrUsage = errors.New("usage error")

const usage = `usage: dashctl <command> [flags]

commands:
  migrate          apply database migrations
  seed             create demo accounts and sample content
  passwd [email]   reset a user's password
  secret           print a random signing secret

flags: -d <dsn> (or DATABASE_URL), -c <config.json>
`

type App struct {
	config *config.Config
	reader *bufio.Reader
	out    io.Writer
	logger logging.Logger
	rm     repomanager.RepositoryManager
	openDB func(dsn string) (*sql.DB, error)
	now    func() time.Time
}

func NewApp(c *config.Config, in io.Reader, out io.Writer, logger logging.Logger) *App {
	return &App{
		config: c,
		reader: bufio.NewReader(in),
		out:    out,
		logger: logger.With("module", "dashctl"),
		rm:     repomanager.NewPostgresRepositoryManager(),
		openDB: repomanager.Open,
		now:    time.Now,
	}
}

// Run dispatches args[0] to a command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrUsage
	}

	switch args[0] {
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	case "secret":
		return a.secret()
	case "migrate":
		return a.withDB(ctx, a.migrate)
	case "seed":
		return a.withDB(ctx, a.seed)
	case "passwd":
		email := ""
		if len(args) > 1 {
			email = args[1]
		}
		return a.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
			return a.passwd(ctx, db, email)
		})
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

func (a *App) withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	if a.config.DatabaseDSN == "" {
		return fmt.Errorf("%w: database DSN is required (-d or DATABASE_URL)", ErrUsage)
	}
	db, err := a.openDB(a.config.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	timeout := a.config.DatabaseTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := dbx.PingWithRetry(pctx, db, 1, 0); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return fn(ctx, db)
}
