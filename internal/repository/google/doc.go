// Package google implements the external store adapters on top of the Google
// Sheets and Google Drive APIs.
//
// The spreadsheet holds two positional sheets (categories and document
// metadata) and is used as an append-only table store. The drive holds the
// folder tree the taxonomy is provisioned into and the uploaded PDFs. Every
// drive call sets SupportsAllDrives so the root may live on a shared drive.
//
// # Usage
//
//	clients, err := google.NewClients(ctx, cfg.CredentialsFile)
//	limiter := google.NewRateLimiter(google.RateLimitConfig{RequestsPerSecond: 8, BurstSize: 10})
//	tables := google.NewSheetStore(clients.Sheets, cfg.SpreadsheetID, limiter)
//	folders := google.NewDriveStore(clients.Drive, limiter)
//
// # OAuth2 Scopes
//
// The service account needs:
//   - https://www.googleapis.com/auth/drive
//   - https://www.googleapis.com/auth/spreadsheets
package google
