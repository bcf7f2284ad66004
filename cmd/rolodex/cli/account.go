package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage login accounts",
		Long:  "Create and list the accounts that can log in and modify contacts.",
	}

	cmd.AddCommand(newAccountCreateCmd())
	cmd.AddCommand(newAccountListCmd())

	return cmd
}

// ---------- account create ----------

func newAccountCreateCmd() *cobra.Command {
	var (
		username  string
		password  string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new login account",
		Example: `  rolodex account create --username alice --password secret
  rolodex account create --username alice  # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountCreate(username, password, firstName, lastName)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.MarkFlagRequired("username")

	return cmd
}

func runAccountCreate(username, password, firstName, lastName string) error {
	if password == "" {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		password = string(pwBytes)

		fmt.Print("Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		fmt.Println()

		if password != string(confirmBytes) {
			return fmt.Errorf("passwords do not match")
		}
	}

	if len(password) < 4 {
		return fmt.Errorf("password must be at least 4 characters")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	acct := &model.Account{
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := st.CreateAccount(context.Background(), acct); err != nil {
		return err
	}

	fmt.Printf("Created account %q (id %d)\n", username, acct.ID)
	return nil
}

// ---------- account list ----------

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all login accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountList()
		},
	}
}

func runAccountList() error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	accounts, err := st.ListAccounts(context.Background())
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts yet. Use 'rolodex account create' or start the server to seed one.")
		return nil
	}

	fmt.Printf("%-6s %-20s %-30s\n", "ID", "USERNAME", "NAME")
	fmt.Printf("%-6s %-20s %-30s\n", "--", "--------", "----")
	for i := range accounts {
		a := &accounts[i]
		fmt.Printf("%-6d %-20s %-30s\n", a.ID, a.Username, a.DisplayName())
	}
	return nil
}

// openStore opens the store at the configured database path.
func openStore() (*store.Store, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "contacts.db"
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
