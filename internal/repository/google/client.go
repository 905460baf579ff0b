package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested for the service account.
var Scopes = []string{
	drive.DriveScope,
	sheets.SpreadsheetsScope,
}

// Clients bundles the two API services the registry talks to.
type Clients struct {
	Sheets *sheets.Service
	Drive  *drive.Service
}

// NewClients creates Sheets and Drive services authenticated with the
// service-account key at credentialsFile.
func NewClients(ctx context.Context, credentialsFile string) (*Clients, error) {
	ts, err := ServiceAccountTokenSource(ctx, credentialsFile)
	if err != nil {
		return nil, err
	}
	return NewClientsWithOptions(ctx, option.WithTokenSource(ts))
}

// ServiceAccountTokenSource reads a service-account JSON key and returns a
// TokenSource scoped for drive and spreadsheets access.
func ServiceAccountTokenSource(ctx context.Context, credentialsFile string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	jwtCfg, err := googleoauth.JWTConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	return jwtCfg.TokenSource(ctx), nil
}

// NewClientsWithOptions creates both services with explicit client options.
// Tests use it to point the services at a local server.
func NewClientsWithOptions(ctx context.Context, opts ...option.ClientOption) (*Clients, error) {
	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Clients{Sheets: sheetsSvc, Drive: driveSvc}, nil
}
