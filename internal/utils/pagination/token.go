package pagination

import (
	"encoding/base64"
	"fmt"

	"github.com/oklog/ulid/v2"
)

// DefaultLimit applies when a listing request carries no limit.
const DefaultLimit = 50

// EncodeIDToken creates an opaque continuation token from the ID of the last row of a page.
func EncodeIDToken(lastID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(lastID))
}

// DecodeIDToken parses a token produced by EncodeIDToken. IDs are ULIDs.
func DecodeIDToken(token string) (string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	id := string(decodedBytes)
	if _, err := ulid.ParseStrict(id); err != nil {
		return "", fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}
	return id, nil
}

// NormalizeLimit clamps a requested page size into [1, max], using DefaultLimit for zero.
func NormalizeLimit(limit, max int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > max {
		return max
	}
	return limit
}
