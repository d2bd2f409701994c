package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stephanygrace/customer-portal/internal/auth"
	"github.com/stephanygrace/customer-portal/internal/handlers"
	"github.com/stephanygrace/customer-portal/internal/models"
	"github.com/stephanygrace/customer-portal/internal/store"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Manage portal accounts",
}

var customersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a portal account",
	Long:  `Creates an account identified by email and/or phone, as the signup endpoint would.`,
	Args:  cobra.NoArgs,
	RunE:  runCustomersAdd,
}

var (
	addEmail    string
	addPhone    string
	addName     string
	addPassword string
)

func init() {
	customersAddCmd.Flags().StringVar(&addEmail, "email", "", "Customer email address")
	customersAddCmd.Flags().StringVar(&addPhone, "phone", "", "Customer phone number")
	customersAddCmd.Flags().StringVar(&addName, "name", "", "Display name")
	customersAddCmd.Flags().StringVar(&addPassword, "password", "", "Initial password")
	_ = customersAddCmd.MarkFlagRequired("password")

	customersCmd.AddCommand(customersAddCmd)
	rootCmd.AddCommand(customersCmd)
}

func runCustomersAdd(cmd *cobra.Command, _ []string) error {
	if len(addPassword) < auth.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
	}
	if addEmail == "" && addPhone == "" {
		return errors.New("at least one of --email or --phone is required")
	}

	_, db, err := connect()
	if err != nil {
		return err
	}

	req := models.SignupRequest{Email: addEmail, Phone: addPhone, Name: addName, Password: addPassword}
	customer, err := handlers.NewCustomer(req, time.Now().UnixMilli())
	if err != nil {
		return err
	}
	if err := store.NewUserStore(db).Create(cmd.Context(), customer); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return errors.New("a customer with this email or phone already exists")
		}
		return err
	}
	return printJSON(cmd, customer)
}
