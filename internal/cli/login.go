package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginPassword    string
	loginGoogleToken string
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and store the session token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeStore, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore()

		if loginGoogleToken != "" {
			if err := client.LoginWithGoogle(cmd.Context(), loginGoogleToken); err != nil {
				return err
			}
			fmt.Println("Signed in with Google.")
			return nil
		}

		email := ""
		if len(args) == 1 {
			email = args[0]
		}
		if email == "" {
			email, err = promptLine("Email: ")
			if err != nil {
				return err
			}
		}
		password := loginPassword
		if password == "" {
			password, err = promptPassword("Password: ")
			if err != nil {
				return err
			}
		}

		if err := client.Login(cmd.Context(), email, password); err != nil {
			return err
		}
		fmt.Printf("Signed in as %s.\n", email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeStore, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore()
		if err := client.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return promptLine("")
	}
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginGoogleToken, "google-token", "", "Sign in with a Google OAuth access token instead")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
