package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"gitlab.com/yelinaung/money-manager/internal/account"
	"gitlab.com/yelinaung/money-manager/internal/apperror"
	"gitlab.com/yelinaung/money-manager/internal/auth"
	"gitlab.com/yelinaung/money-manager/internal/config"
	"gitlab.com/yelinaung/money-manager/internal/database"
	"gitlab.com/yelinaung/money-manager/internal/gemini"
	"gitlab.com/yelinaung/money-manager/internal/insight"
	"gitlab.com/yelinaung/money-manager/internal/logger"
	"gitlab.com/yelinaung/money-manager/internal/models"
	"gitlab.com/yelinaung/money-manager/internal/repository"
	"gitlab.com/yelinaung/money-manager/internal/telemetry"
	"gitlab.com/yelinaung/money-manager/internal/web"
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "money-manager",
		Usage:   "personal expense dashboard",
		Version: versionString(),
		Action:  serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the web dashboard (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and exit",
				Action: migrateDB,
			},
			{
				Name:  "adduser",
				Usage: "create a user account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "username", Required: true},
					&cli.StringFlag{Name: "password", Usage: "password (prompted when omitted)"},
				},
				Action: addUser,
			},
			{
				Name:  "version",
				Usage: "print version information",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprintln(c.App.Writer, versionString())
					return err
				},
			},
		},
	}
}

// bootstrap loads configuration, configures logging and opens the pool.
func bootstrap(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger.Setup(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	if err := logger.InitHashSalt(cfg.LogHashSalt); err != nil {
		return nil, nil, fmt.Errorf("init log hashing: %w", err)
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL,
		database.WithDatabaseName(cfg.DatabaseName),
		database.WithTracing(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Log.Info().Msg("Database initialized successfully")
	return cfg, pool, nil
}

func serve(c *cli.Context) error {
	ctx := c.Context

	cfg, pool, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: cfg.ServiceName,
		Version:     version,
		Exporter:    cfg.OTelExporter,
		Protocol:    cfg.OTelProtocol,
	})
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Log.Warn().Err(err).Msg("Telemetry shutdown failed")
		}
	}()

	loc := cfg.Location()
	users := repository.NewUserRepository(pool)
	expenses := repository.NewExpenseRepository(pool, loc)

	deps := web.Deps{
		Accounts:      account.NewService(users),
		Users:         users,
		Expenses:      expenses,
		Health:        pool,
		Sessions:      auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL),
		Location:      loc,
		SecureCookies: cfg.SecureCookies,
	}

	// Leave the generator interface nil rather than holding a nil *Client.
	var gen insight.Generator
	if cfg.AIEnabled() {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, gemini.WithModel(cfg.GeminiModel))
		if err != nil {
			return fmt.Errorf("create gemini client: %w", err)
		}
		gen = client
		deps.Suggester = client
		logger.Log.Info().Str("model", client.Model()).Msg("AI insights enabled")
	} else {
		logger.Log.Warn().Msg("GEMINI_API_KEY not set, AI insights disabled")
	}
	deps.Analyzer = insight.NewAnalyzer(gen)

	srv, err := web.NewServer(deps)
	if err != nil {
		return err
	}

	logger.Log.Info().
		Str("version", version).
		Str("timezone", loc.String()).
		Msg("Starting money-manager")

	return srv.Run(ctx, cfg.HTTPAddr)
}

func migrateDB(c *cli.Context) error {
	_, pool, err := bootstrap(c.Context)
	if err != nil {
		return err
	}
	pool.Close()
	_, err = fmt.Fprintln(c.App.Writer, "Migrations applied")
	return err
}

func addUser(c *cli.Context) error {
	username := c.String("user")
	password := c.String("password")
	if password == "" {
		fmt.Fprint(c.App.Writer, "Password: ")
		var err error
		password, err = readPassword(c.App.Reader)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		fmt.Fprintln(c.App.Writer)
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password cannot be empty")
	}

	_, pool, err := bootstrap(c.Context)
	if err != nil {
		return err
	}
	defer pool.Close()

	return createUser(c.Context, c.App.Writer, account.NewService(repository.NewUserRepository(pool)), username, password)
}

// registrar is the part of account.Service used by adduser.
type registrar interface {
	Register(ctx context.Context, username, password, confirm string) (*models.User, error)
}

func createUser(ctx context.Context, out io.Writer, accounts registrar, username, password string) error {
	user, err := accounts.Register(ctx, username, password, password)
	if err != nil {
		if appErr, ok := apperror.As(err); ok {
			return fmt.Errorf("create user: %s: %w", appErr.Message, err)
		}
		return fmt.Errorf("create user: %w", err)
	}
	_, err = fmt.Fprintf(out, "User %s created successfully with ID %s\n", user.Username, user.ID)
	return err
}

// readPassword reads without echo from a terminal, or one line otherwise.
func readPassword(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
