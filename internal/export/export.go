// Package export renders alias history as downloadable CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/darkodi/alias-buddy/internal/model"
)

// Supported formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ErrUnsupportedFormat is returned for any format other than csv or json
var ErrUnsupportedFormat = errors.New("unsupported export format")

var csvHeader = []string{"Email", "Feature", "Project", "Environment", "Created At"}

// Write renders aliases to w in the given format
func Write(w io.Writer, format string, aliases []model.GeneratedAlias) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, aliases)
	case FormatJSON:
		return WriteJSON(w, aliases)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteCSV writes one header row and one row per alias
func WriteCSV(w io.Writer, aliases []model.GeneratedAlias) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, a := range aliases {
		row := []string{a.Email, a.Feature, a.Project, a.Environment, a.CreatedAt.UTC().Format(time.RFC3339Nano)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the aliases as an indented JSON array
func WriteJSON(w io.Writer, aliases []model.GeneratedAlias) error {
	if aliases == nil {
		aliases = []model.GeneratedAlias{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(aliases)
}

// ContentType returns the MIME type for a format
func ContentType(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// Filename returns the download name, e.g. email-aliases-2024-03-05.csv
func Filename(format string, now time.Time) string {
	return fmt.Sprintf("email-aliases-%s.%s", now.UTC().Format("2006-01-02"), format)
}
