package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophcontacts/internal/apitest"
	"github.com/dmitrijs2005/gophcontacts/internal/client/client"
	"github.com/dmitrijs2005/gophcontacts/internal/client/config"
	"github.com/dmitrijs2005/gophcontacts/internal/logging"
	"github.com/stretchr/testify/require"
)

// output collects everything sent through printlnFn.
type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) all() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "\n")
}

func captureOutput(t *testing.T) *output {
	t.Helper()
	out := &output{}
	origLn, origP := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) {
		out.mu.Lock()
		defer out.mu.Unlock()
		out.lines = append(out.lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	printFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn, printFn = origLn, origP })
	return out
}

// stubInputs answers prompts from the given queues.
func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	origST, origTD, origGP := getSimpleText, getTextWithDefault, getPassword

	next := func() string {
		require.NotEmpty(t, texts, "unexpected text prompt")
		s := texts[0]
		texts = texts[1:]
		return s
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return next(), nil
	}
	getTextWithDefault = func(_ *bufio.Reader, _ string, def string, _ io.Writer) (string, error) {
		if s := next(); s != "" {
			return s, nil
		}
		return def, nil
	}
	getPassword = func(string, io.Writer) ([]byte, error) {
		require.NotEmpty(t, passwords, "unexpected password prompt")
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}
	t.Cleanup(func() {
		getSimpleText, getTextWithDefault, getPassword = origST, origTD, origGP
	})
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	return db
}

func newTestApp(t *testing.T, srv *apitest.Server, input string) *App {
	t.Helper()
	return newTestAppWithDB(t, srv, openTestDB(t), input)
}

// newTestAppWithDB builds an app on db; the app owns db from then on.
func newTestAppWithDB(t *testing.T, srv *apitest.Server, db *sql.DB, input string) *App {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL

	app, err := newApp(cfg, logging.Discard(), db, strings.NewReader(input), io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close(context.Background()) })
	return app
}

// loggedInApp returns an app signed in as ann@example.com.
func loggedInApp(t *testing.T, srv *apitest.Server) *App {
	t.Helper()
	id := srv.AddUser("ann@example.com", "pw")
	app := newTestApp(t, srv, "")
	require.NoError(t, app.session.Login(context.Background(), srv.Token(id, "ann@example.com")))
	return app
}
