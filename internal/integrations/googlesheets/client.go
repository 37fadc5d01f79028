// Package googlesheets mirrors a collection's table into a Google
// spreadsheet so the site teams can keep working from their shared sheets.
package googlesheets

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/sheets/v4"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const credentialsFile = "configs/google-credentials.json"

// NewSheetsService builds a Sheets client from the service-account JSON in
// GOOGLE_SHEETS_CREDENTIALS_JSON, falling back to a local credentials file
// for development.
func NewSheetsService(ctx context.Context) (*sheets.Service, error) {
	raw := []byte(os.Getenv("GOOGLE_SHEETS_CREDENTIALS_JSON"))
	if len(raw) == 0 {
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("google credentials unavailable: %w", err)
		}
		raw = b
	}

	credentials, err := google.CredentialsFromJSON(ctx, raw, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to load google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	sheetsService, err := sheets.New(client)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return sheetsService, nil
}
