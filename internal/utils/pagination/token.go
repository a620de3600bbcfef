// Package pagination implements the opaque cursor handed to clients when
// listing journals. The cursor encodes the sort key of the last row of the
// page, so the next query can resume strictly after it.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken builds an opaque cursor from the journal date and creation
// time of the last row on a page.
func EncodeToken(journalDate time.Time, createdAt time.Time) string {
	raw := journalDate.Format(timeFormat) + "|" + createdAt.Format(timeFormat)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeToken parses a cursor produced by EncodeToken. Malformed tokens are
// rejected; the caller should treat the error as a client mistake.
func DecodeToken(token string) (time.Time, time.Time, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}

	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (missing separator)")
	}

	journalDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (journal date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (created_at parse): %w", err)
	}

	return journalDate, createdAt, nil
}
