package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		email, password := credentialFlags(cmd)
		username, _ := cmd.Flags().GetString("username")

		tok, err := e.client.Register(cmd.Context(), email, password, username)
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}
		if err := e.creds.Save(tok.AccessToken); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		e.printf("Registered and logged in as %s\n", email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		email, password := credentialFlags(cmd)

		tok, err := e.client.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		if err := e.creds.Save(tok.AccessToken); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		e.printf("Logged in as %s\n", email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		if err := e.creds.Clear(); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}
		e.printf("Logged out\n")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		me, err := e.client.Me(cmd.Context())
		if err != nil {
			return err
		}
		e.printf("%s <%s>\n", me.Username, me.Email)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().String("email", "", "Account email (prompted when empty)")
		c.Flags().String("password", "", "Account password (prompted when empty)")
	}
	registerCmd.Flags().String("username", "", "Display name (defaults to the email's local part)")
}

// credentialFlags reads --email and --password, prompting on stdin for
// whichever is missing.
func credentialFlags(cmd *cobra.Command) (string, string) {
	in := bufio.NewReader(cmd.InOrStdin())
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		email = prompt(in, cmd.OutOrStdout(), "Email: ")
	}
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = prompt(in, cmd.OutOrStdout(), "Password: ")
	}
	return email, password
}

func prompt(in *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}
