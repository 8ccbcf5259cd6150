package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"steeldesk/internal/auth"
	"steeldesk/internal/config"
	"steeldesk/internal/customers"
	"steeldesk/internal/gateway"
	"steeldesk/internal/logger"
	"steeldesk/internal/products"
	"steeldesk/internal/reports"
	"steeldesk/internal/sales"
	"steeldesk/internal/suppliers"
	"steeldesk/internal/users"
)

var version = "1.0.0"

// cfg is set by Execute before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "steeldesk",
	Short: "steeldesk - back-office client for the iron & steel shop backend",
	Long: `steeldesk is the command-line back-office client for the shop's REST
backend: inventory, customers, suppliers, sales invoicing, reports and
user administration.

All business data lives on the backend; steeldesk keeps only your login
session (see STEELDESK_SESSION_FILE) and does the invoice and ledger
arithmetic shown before a submit.

Point it at the backend with STEELDESK_API_URL (a .env file is read from
the working directory).`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("steeldesk - iron & steel shop back office")
		fmt.Println("Use --help to see available commands.")
	},
}

// Execute wires the configuration in and runs the CLI. A configuration that
// cannot be loaded is fatal; no command runs without one.
func Execute(c *config.Config) {
	loaded, err := ensureConfig(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", friendlyError(err))
		os.Exit(1)
	}
}

// ensureConfig returns the effective configuration. When main could not load
// one it retries here; the retry sees the same environment, so a second
// failure propagates instead of leaving commands to run without config.
func ensureConfig(c *config.Config) (*config.Config, error) {
	if c != nil {
		return c, nil
	}
	return config.Load()
}

// services bundles every client the feature commands need.
type services struct {
	auth      *auth.Client
	gateway   *gateway.Client
	customers *customers.Service
	products  *products.Service
	suppliers *suppliers.Service
	sales     *sales.Service
	reports   *reports.Service
	users     *users.Service
}

func newServices() *services {
	authClient := auth.NewClient(cfg.APIBaseURL, cfg.SessionFile, cfg.HTTPTimeout)
	gw := gateway.NewClient(cfg.APIBaseURL, authClient, cfg.HTTPTimeout)
	c := customers.NewService(gw)
	p := products.NewService(gw)
	sp := suppliers.NewService(gw)
	return &services{
		auth:      authClient,
		gateway:   gw,
		customers: c,
		products:  p,
		suppliers: sp,
		sales:     sales.NewService(gw),
		reports:   reports.NewService(gw, c, p, sp),
		users:     users.NewService(gw),
	}
}

// requireLogin fails fast when no usable session exists, before any
// feature request is attempted.
func requireLogin(s *services) error {
	if !s.auth.IsAuthenticated() {
		return auth.ErrNotLoggedIn
	}
	return nil
}

// friendlyError maps the error taxonomy onto operator-facing messages.
func friendlyError(err error) string {
	var httpErr *gateway.HTTPError
	var parseErr *gateway.ParseError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrSessionExpired):
		return "your session has expired, run 'steeldesk login' again"
	case errors.Is(err, auth.ErrNotLoggedIn):
		return "not logged in, run 'steeldesk login <username>' first"
	case errors.Is(err, auth.ErrBadCredentials):
		return "invalid username or password"
	case errors.Is(err, users.ErrNotAdmin):
		return "this command needs the ADMIN role"
	case errors.Is(err, customers.ErrOverpayment):
		return "payment exceeds the customer's due; re-run with --confirm to allow overpayment"
	case errors.As(err, &validationErrs):
		return "invalid input: " + validationErrs.Error()
	case errors.As(err, &httpErr):
		if httpErr.Body != "" {
			return fmt.Sprintf("server rejected the request (status %d): %s", httpErr.Status, httpErr.Body)
		}
		return fmt.Sprintf("server rejected the request (status %d)", httpErr.Status)
	case errors.As(err, &parseErr):
		return "unexpected response from server: " + parseErr.Error()
	default:
		return err.Error()
	}
}

// parseID parses a numeric id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
