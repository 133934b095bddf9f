package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// inviteCodeBytes of entropy are hex encoded into an inviteCodeLength character code.
const (
	inviteCodeBytes  = 6
	inviteCodeLength = 8
)

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=32 will result in a 64-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateInviteCode returns an 8 character uppercase hex code drawn from crypto/rand.
func GenerateInviteCode() (string, error) {
	s, err := GenerateSecureRandomString(inviteCodeBytes)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(s[:inviteCodeLength]), nil
}

// idEntropy is shared so that IDs minted in the same millisecond still sort in creation order.
var (
	idEntropyMu sync.Mutex
	idEntropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a time-sortable ULID for now.
func NewID(now time.Time) string {
	idEntropyMu.Lock()
	defer idEntropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), idEntropy).String()
}
