package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/quickserve-session/api"
	"github.com/jrsteele09/quickserve-session/internal/config"
	"github.com/jrsteele09/quickserve-session/session"
	"github.com/jrsteele09/quickserve-session/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: quickserve <command> [flags]

commands:
  login        -email -password
  signup       -file form.json [-customer]
  logout
  refresh
  whoami
  verify
  profile
  stats
  bookings
  availability -available=true|false
  categories
  providers    [-category] [-city] [-page] [-size]
  devserver    run a local fake API until interrupted
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Err(err).Msg("quickserve failed")
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	if len(args) == 0 {
		displayAppname(out, "QuickServe")
		fmt.Fprint(out, usage)
		return errors.New("no command given")
	}

	c, err := config.New()
	if err != nil {
		return err
	}
	configureLogging(c)

	if args[0] == "devserver" {
		displayAppname(out, c.GetAppName())
		return devServer(out)
	}

	a, err := newApp(c, out)
	if err != nil {
		return err
	}
	defer a.close()

	return a.dispatch(context.Background(), args[0], args[1:])
}

func configureLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Str("env", c.GetEnv()).
		Logger()
}

// newApp wires storage, the API client and the session store. The
// authenticated client is built last because it draws its tokens from the
// store.
func newApp(c config.Config, out io.Writer) (*app, error) {
	kv, err := storage.Open(c)
	if err != nil {
		return nil, err
	}

	client, err := api.New(c.GetAPIBaseURL(),
		api.WithTimeout(c.GetHTTPTimeout()),
		api.WithLogger(log.Logger),
	)
	if err != nil {
		closeStorage(kv)
		return nil, err
	}

	store, err := session.New(client, kv,
		session.WithConfig(c),
		session.WithLogger(log.Logger),
	)
	if err != nil {
		closeStorage(kv)
		return nil, err
	}

	return &app{
		store:  store,
		client: client.Authenticated(store.TokenSource(), store),
		kv:     kv,
		out:    out,
	}, nil
}

func closeStorage(kv storage.KeyValue) {
	if closer, ok := kv.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Err(err).Msg("failed to close storage")
		}
	}
}

func devServer(out io.Writer) error {
	srv := devBackend()
	defer srv.Close()

	fmt.Fprintf(out, "fake QuickServe API listening on %s\n", srv.URL())
	fmt.Fprintf(out, "export QUICKSERVE_API_URL=%s\n", srv.URL())
	waitForStopSignal()
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func displayAppname(out io.Writer, appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(out, myFigure.String())
}
