package sheets

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleStore talks to a single Google spreadsheet.
type GoogleStore struct {
	srv           *gsheets.Service
	spreadsheetID string
}

// GoogleOptions selects credentials. CredentialsJSON wins over CredentialsFile.
type GoogleOptions struct {
	SpreadsheetID   string
	CredentialsFile string
	CredentialsJSON string
}

func NewGoogleStore(ctx context.Context, opts GoogleOptions) (*GoogleStore, error) {
	if opts.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets: GOOGLE_SHEETS_SPREADSHEET_ID is not set")
	}

	clientOpts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	switch {
	case opts.CredentialsJSON != "":
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(opts.CredentialsJSON)))
	case opts.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	default:
		return nil, fmt.Errorf("sheets: GOOGLE_APPLICATION_CREDENTIALS is not set")
	}

	srv, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: new service: %w", err)
	}
	return &GoogleStore{srv: srv, spreadsheetID: opts.SpreadsheetID}, nil
}

func (g *GoogleStore) lastColumn(t Table) string {
	return ColumnLetter(t.Width())
}

func (g *GoogleStore) Rows(ctx context.Context, t Table) ([][]string, error) {
	rng := fmt.Sprintf("%s!A2:%s", t.Name, g.lastColumn(t))
	resp, err := g.srv.Spreadsheets.Values.Get(g.spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: get %s: %w", t.Name, err)
	}

	out := make([][]string, len(resp.Values))
	for i, r := range resp.Values {
		row := make([]string, len(r))
		for j, v := range r {
			row[j] = cellString(v)
		}
		out[i] = row
	}
	return out, nil
}

func (g *GoogleStore) Append(ctx context.Context, t Table, row []string) error {
	rng := fmt.Sprintf("%s!A:%s", t.Name, g.lastColumn(t))
	vr := &gsheets.ValueRange{Values: [][]interface{}{toCells(row)}}
	_, err := g.srv.Spreadsheets.Values.Append(g.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append %s: %w", t.Name, err)
	}
	return nil
}

func (g *GoogleStore) UpdateRow(ctx context.Context, t Table, index int, row []string) error {
	if index < 0 {
		return ErrRowOutOfRange
	}
	n := index + 2
	rng := fmt.Sprintf("%s!A%d:%s%d", t.Name, n, g.lastColumn(t), n)
	vr := &gsheets.ValueRange{Values: [][]interface{}{toCells(padRow(row, t.Width()))}}
	_, err := g.srv.Spreadsheets.Values.Update(g.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: update %s row %d: %w", t.Name, n, err)
	}
	return nil
}

func (g *GoogleStore) EnsureTable(ctx context.Context, t Table) error {
	ss, err := g.srv.Spreadsheets.Get(g.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: get spreadsheet: %w", err)
	}

	exists := false
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == t.Name {
			exists = true
			break
		}
	}

	if !exists {
		req := &gsheets.BatchUpdateSpreadsheetRequest{
			Requests: []*gsheets.Request{{
				AddSheet: &gsheets.AddSheetRequest{Properties: &gsheets.SheetProperties{Title: t.Name}},
			}},
		}
		if _, err := g.srv.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("sheets: add sheet %s: %w", t.Name, err)
		}
	}

	// Older sheets may have fewer columns; rewrite the header when it is short.
	rng := fmt.Sprintf("%s!A1:%s1", t.Name, g.lastColumn(t))
	resp, err := g.srv.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: read header %s: %w", t.Name, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) >= t.Width() {
		return nil
	}

	vr := &gsheets.ValueRange{Values: [][]interface{}{toCells(t.Headers)}}
	if _, err := g.srv.Spreadsheets.Values.Update(g.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets: write header %s: %w", t.Name, err)
	}
	return nil
}

func toCells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, c := range row {
		out[i] = c
	}
	return out
}

// cellString renders an unformatted cell. Numbers are printed without
// exponent so epoch-millis timestamps survive.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}
