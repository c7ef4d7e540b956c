package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/awncorp/api-basecamp/pkg/basecamp"
	"github.com/awncorp/api-basecamp/pkg/bcclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Basecamp",
		Long:  "Verify credentials against the Basecamp API and save them to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			account := viper.GetString("account")
			username := viper.GetString("username")
			password := viper.GetString("password")

			if account == "" {
				fmt.Print("Account id: ")
				account, _ = reader.ReadString('\n')
				account = strings.TrimSpace(account)
			}

			if username == "" {
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			client, err := bcclient.New(&basecamp.Config{
				Account:  account,
				Username: username,
				Password: password,
				BaseURL:  viper.GetString("base_url"),
				Fatal:    true,
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the credentials with a cheap request.
			_, err = client.Projects().Fetch(context.Background(), nil)
			if err != nil {
				return fmt.Errorf("failed to verify credentials: %w", err)
			}

			err = saveCredentials(account, username, password)
			if err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			fmt.Printf("Logged in to account %s as %s\n", account, username)

			return nil
		},
	}

	return cmd
}
