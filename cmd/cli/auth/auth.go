package auth

import (
	"fmt"

	"github.com/sbelkacem/gosocial/cmd/cli/client"
	"github.com/sbelkacem/gosocial/cmd/cli/config"
	"github.com/spf13/cobra"
)

// Init registers auth-related CLI commands on the root command.
func Init(rootCmd *cobra.Command) {
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
}

func registerCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Do("POST", "/register", map[string]string{
				"username": username,
				"email":    email,
				"password": password,
			}, nil)
			if err != nil {
				return fmt.Errorf("failed to register: %w", err)
			}

			sess := client.SessionFromResponse(resp)
			if sess == "" {
				return fmt.Errorf("registration succeeded but no session returned")
			}
			if err := config.SaveSession(sess); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Printf("Registered as %s. Session stored locally.\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username for the new account")
	cmd.Flags().StringVar(&email, "email", "", "Email for the new account")
	cmd.Flags().StringVar(&password, "password", "", "Password for the new account")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the gosocial API",
		Long:  "Authenticate with the gosocial API and store the session for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Do("POST", "/login", map[string]string{
				"username": username,
				"password": password,
			}, nil)
			if err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}

			sess := client.SessionFromResponse(resp)
			if sess == "" {
				// The server reuses an existing session when the client
				// already has one bound.
				sess = config.LoadSession()
			}
			if sess == "" {
				return fmt.Errorf("login succeeded but no session returned")
			}
			if err := config.SaveSession(sess); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Println("Login successful. Session stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Best effort on the server side; the local session goes away
			// regardless.
			_, _ = client.Do("GET", "/logout", nil, nil)
			if err := config.ClearSession(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
