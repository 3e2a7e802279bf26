package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/licensekeeper/internal/client/client"
	"github.com/dmitrijs2005/licensekeeper/internal/client/config"
	"github.com/dmitrijs2005/licensekeeper/internal/client/services"
)

type App struct {
	config   *config.Config
	licenses services.LicenseService
	current  services.State
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient, err := client.NewLicenseClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return newApp(c, services.NewLicenseService(apiClient, db), os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, ls services.LicenseService, in io.Reader, out io.Writer) *App {
	return &App{
		config:   c,
		licenses: ls,
		current:  services.StateLogin,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

func (a *App) state() services.State {
	return a.current
}

func (a *App) setState(st services.State) {
	if st != "" {
		a.current = st
	}
}

func (a *App) getStatus() string {
	s := string(a.current)
	if a.userName != "" {
		s = a.userName + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// Run performs the startup precheck and then serves the REPL until exit.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.licenses.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	printlnFn("Welcome to LicenseKeeper (type 'help' for commands)")
	a.precheck(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) precheck(ctx context.Context) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	st, err := a.licenses.Precheck(ctx)
	if err != nil {
		printlnFn("License check failed:", err)
	}
	a.setState(st)

	switch a.current {
	case services.StateLogin:
		printlnFn("No account cached. Use signup or login.")
	case services.StateGenerate:
		printlnFn("No license yet. Use generate [days].")
	case services.StateNeedsKey:
		printlnFn("Enter a valid license key with verify <key>.")
	case services.StateLicensed:
		printlnFn("License is valid.")
	}
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
