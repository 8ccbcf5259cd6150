package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"steeldesk/internal/logger"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in to the shop backend and store the session",
	Long: `Authenticate against the backend's /api/auth/login endpoint and store
the bearer token and user identity in the session file.

The password is read from the --password flag or, when omitted, from
standard input.`,
	Example: `  steeldesk login rahim
  steeldesk login rahim --password secret
  echo secret | steeldesk login rahim`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newServices()
		s.auth.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user and session state",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringP("password", "p", "", "Password (read from stdin when omitted)")
	whoamiCmd.Flags().Bool("verify", false, "Also verify the token with the server")
}

func runLogin(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("login")
	username := args[0]

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	s := newServices()
	sess, err := s.auth.Login(context.Background(), username, password)
	if err != nil {
		log.Debug().Err(err).Str("username", username).Msg("Login failed")
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", sess.User.Username, sess.User.PrimaryRole())
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	s := newServices()
	sess := s.auth.CurrentSession()
	if sess == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("User  : %s\n", sess.User.Username)
	fmt.Printf("Email : %s\n", sess.User.Email)
	fmt.Printf("Roles : %s\n", strings.Join(sess.User.Roles, ", "))

	if s.auth.IsAuthenticated() {
		fmt.Println("Token : valid (not yet expired)")
	} else {
		fmt.Println("Token : expired or unreadable")
	}

	if verify, _ := cmd.Flags().GetBool("verify"); verify {
		if s.auth.VerifyToken(context.Background()) {
			fmt.Println("Server: token accepted")
		} else {
			fmt.Println("Server: token rejected")
		}
	}
	return nil
}
