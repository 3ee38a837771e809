package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// Cursor is the keyset position of the last row of a page: rows are ordered
// newest date first, then by descending ID within a date.
type Cursor struct {
	Date time.Time
	ID   string
}

// EncodeCursor creates an opaque token for the row at (date, id).
func EncodeCursor(date time.Time, id string) string {
	return EncodeMultiFieldToken(date.UTC().Format(dateFormat), id)
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (Cursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return Cursor{}, err
	}
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}
	date, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return Cursor{Date: date, ID: parts[1]}, nil
}

// After reports whether a row at (date, id) sorts after the cursor, i.e. belongs
// on a later page.
func (c Cursor) After(date time.Time, id string) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if d.Equal(c.Date) {
		return id < c.ID
	}
	return d.Before(c.Date)
}

// EncodeMultiFieldToken creates a token with any number of string fields.
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}
