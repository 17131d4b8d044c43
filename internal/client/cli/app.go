package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/gophcontacts/internal/client/auth"
	"github.com/dmitrijs2005/gophcontacts/internal/client/client"
	"github.com/dmitrijs2005/gophcontacts/internal/client/config"
	"github.com/dmitrijs2005/gophcontacts/internal/client/contacts"
	"github.com/dmitrijs2005/gophcontacts/internal/client/notify"
	"github.com/dmitrijs2005/gophcontacts/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophcontacts/internal/client/services"
	"github.com/dmitrijs2005/gophcontacts/internal/logging"

	_ "modernc.org/sqlite"
)

// lastEmailer remembers who signed in last.
type lastEmailer interface {
	LastEmail(ctx context.Context) (string, error)
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	tokens      lastEmailer
	session     *auth.Session
	contacts    *contacts.Controller
	notifier    *notify.Notifier
	authService services.AuthService
	reader      *bufio.Reader
	in          io.Reader
	out         io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	app, err := newApp(c, logger, db, os.Stdin, os.Stdout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

// newApp wires the components around an open database.
func newApp(c *config.Config, logger logging.Logger, db *sql.DB, in io.Reader, out io.Writer) (*App, error) {
	tokens := metadata.NewTokenStore(db)
	session := auth.NewSession(tokens, logger,
		auth.WithAvatars(c.Avatars),
		auth.WithExpiryBuffer(c.ExpiryBuffer),
	)

	apiClient, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
		client.WithMiddleware(session.Middleware()),
	)
	if err != nil {
		return nil, err
	}

	notifier := notify.New(c.NotificationTTL)
	ctrl := contacts.NewController(apiClient, session, notifier, logger)
	session.Subscribe(ctrl.HandleSessionChange)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		tokens:      tokens,
		session:     session,
		contacts:    ctrl,
		notifier:    notifier,
		authService: services.NewAuthService(apiClient, session),
		reader:      bufio.NewReader(in),
		in:          in,
		out:         out,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

func (a *App) Close(ctx context.Context) error {
	err := a.authService.Close(ctx)
	if a.db != nil {
		if cerr := a.db.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

// StartExpiryWatcher warns once per session when the token is about to
// expire. It blocks until ctx is done.
func (a *App) StartExpiryWatcher(ctx context.Context, interval time.Duration) {
	a.watchExpiry(ctx, interval, func(msg string) { printlnFn(msg) })
}

func (a *App) watchExpiry(ctx context.Context, interval time.Duration, warn func(string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var warnedFor string
	for {
		select {
		case <-ticker.C:
			token := a.session.Token()
			if token == "" || !a.session.IsExpiringSoon() {
				warnedFor = ""
				continue
			}
			if token == warnedFor {
				continue
			}
			warnedFor = token

			msg := "Your session is about to expire, log in again to keep working."
			if exp := a.session.ExpiresAt(); !exp.IsZero() {
				msg = fmt.Sprintf("Your session expires at %s, log in again to keep working.", exp.Local().Format("15:04:05"))
			}
			warn(msg)

		case <-ctx.Done():
			return
		}
	}
}
