package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"steeldesk/internal/auth"
	"steeldesk/internal/users"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Administer user accounts (ADMIN only)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE:  runUsersList,
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE:  runUsersAdd,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersUpdate,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

var usersResetPasswordCmd = &cobra.Command{
	Use:   "reset-password [id]",
	Short: "Set a new password for an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersResetPassword,
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersResetPasswordCmd)

	usersListCmd.Flags().Int("page", 0, "Page number")
	usersListCmd.Flags().Int("size", 20, "Page size")

	for _, c := range []*cobra.Command{usersAddCmd, usersUpdateCmd} {
		c.Flags().String("username", "", "Username")
		c.Flags().String("email", "", "Email")
		c.Flags().StringSlice("roles", []string{"USER"}, "Roles: ADMIN, USER")
		c.Flags().Bool("enabled", true, "Account enabled")
	}
	usersAddCmd.Flags().String("password", "", "Initial password")

	usersResetPasswordCmd.Flags().String("password", "", "New password")
}

// adminServices builds the services and enforces the ADMIN gate before any
// admin endpoint is called.
func adminServices() (*services, error) {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return nil, err
	}
	sess := s.auth.CurrentSession()
	if sess == nil {
		return nil, auth.ErrNotLoggedIn
	}
	if err := users.RequireAdmin(sess.User); err != nil {
		return nil, err
	}
	return s, nil
}

func userInputFromFlags(cmd *cobra.Command) users.UserInput {
	username, _ := cmd.Flags().GetString("username")
	email, _ := cmd.Flags().GetString("email")
	roles, _ := cmd.Flags().GetStringSlice("roles")
	enabled, _ := cmd.Flags().GetBool("enabled")
	password, _ := cmd.Flags().GetString("password")
	return users.UserInput{
		Username: username,
		Email:    email,
		Password: password,
		Roles:    roles,
		Enabled:  enabled,
	}
}

func runUsersList(cmd *cobra.Command, args []string) error {
	s, err := adminServices()
	if err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")

	result, err := s.users.List(context.Background(), page, size)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLES\tENABLED\tLAST LOGIN")
	for _, u := range result.Content {
		lastLogin := ""
		if !u.LastLogin.IsZero() {
			lastLogin = u.LastLogin.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%s\n",
			u.ID, u.Username, u.Email, strings.Join(u.Roles, ","), u.Enabled, lastLogin)
	}
	w.Flush()
	return nil
}

func runUsersAdd(cmd *cobra.Command, args []string) error {
	s, err := adminServices()
	if err != nil {
		return err
	}
	created, err := s.users.Create(context.Background(), userInputFromFlags(cmd))
	if err != nil {
		return err
	}
	fmt.Printf("User %s created with id %d\n", created.Username, created.ID)
	return nil
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	s, err := adminServices()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	updated, err := s.users.Update(context.Background(), id, userInputFromFlags(cmd))
	if err != nil {
		return err
	}
	fmt.Printf("User %d updated\n", updated.ID)
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	s, err := adminServices()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := s.users.Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("User %d deleted\n", id)
	return nil
}

func runUsersResetPassword(cmd *cobra.Command, args []string) error {
	s, err := adminServices()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	password, _ := cmd.Flags().GetString("password")
	if err := s.users.ResetPassword(context.Background(), id, password); err != nil {
		return err
	}
	fmt.Printf("Password reset for user %d\n", id)
	return nil
}
