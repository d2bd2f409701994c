package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/stephanygrace/customer-portal/internal/documents"
	"github.com/stephanygrace/customer-portal/internal/models"
	"github.com/stephanygrace/customer-portal/internal/portal"
	"github.com/stephanygrace/customer-portal/internal/store"
	"github.com/stephanygrace/customer-portal/internal/upstream"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Print a customer's bookings",
	Long:  `Resolves the email address to upstream job contacts and prints the matching active jobs as normalized bookings.`,
	Args:  cobra.NoArgs,
	RunE:  runBookings,
}

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Print a quote or invoice for a job",
	Args:  cobra.NoArgs,
	RunE:  runDocument,
}

var (
	bookingsEmail string
	documentID    string
	documentType  string
	documentEmail string
)

func init() {
	bookingsCmd.Flags().StringVar(&bookingsEmail, "email", "", "Customer email address")
	_ = bookingsCmd.MarkFlagRequired("email")

	documentCmd.Flags().StringVar(&documentID, "id", "", "Upstream job uuid")
	documentCmd.Flags().StringVar(&documentType, "type", "invoice", "Document type: quote or invoice")
	documentCmd.Flags().StringVar(&documentEmail, "email", "", "Customer email used for the billing details")
	_ = documentCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(bookingsCmd)
	rootCmd.AddCommand(documentCmd)
}

func runBookings(cmd *cobra.Command, _ []string) error {
	bookings, err := portal.NewBookings(newFetcher(loadConfig())).ForEmail(cmd.Context(), bookingsEmail)
	if err != nil {
		return err
	}
	return printJSON(cmd, bookings)
}

func runDocument(cmd *cobra.Command, _ []string) error {
	kind, ok := models.ParseDocumentKind(documentType)
	if !ok {
		return fmt.Errorf("invalid document type %q: use quote or invoice", documentType)
	}

	cfg, db, err := connect()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	profile := models.CustomerProfile{Email: documentEmail}
	if documentEmail != "" {
		customer, err := store.NewUserStore(db).GetByEmail(ctx, documentEmail)
		switch {
		case err == nil:
			profile = customer.Profile()
		case !errors.Is(err, models.ErrNotFound):
			return err
		}
	}

	raws, err := newFetcher(cfg).FetchAll(ctx, upstream.JobByUUID(documentID), http.MethodGet, nil)
	if err != nil {
		return err
	}
	if len(raws) == 0 {
		return fmt.Errorf("job %s: %w", documentID, models.ErrNotFound)
	}

	doc, err := documents.NewComposer().Compose(kind, raws[0], profile)
	if err != nil {
		return err
	}
	return printJSON(cmd, doc)
}
