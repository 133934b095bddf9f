package utils_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inviteCodePattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := utils.GenerateInviteCode()
		require.NoError(t, err)
		assert.Regexp(t, inviteCodePattern, code)
		seen[code] = true
	}
	// 32 bits per code; 50 draws colliding would point at a broken entropy source.
	assert.Greater(t, len(seen), 45)
}

func TestNewID_SortsByTime(t *testing.T) {
	earlier := utils.NewID(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	later := utils.NewID(time.Date(2025, time.January, 1, 0, 0, 1, 0, time.UTC))
	assert.Len(t, earlier, 26)
	assert.Less(t, earlier, later)
}

func TestNewID_SameMillisecondKeepsCreationOrder(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)
	prev := utils.NewID(now)
	for i := 0; i < 500; i++ {
		next := utils.NewID(now)
		require.Less(t, prev, next, "id %d", i)
		prev = next
	}
}

func TestFormatPaisa(t *testing.T) {
	assert.Equal(t, "1234.56", utils.FormatPaisa(123456))
	assert.Equal(t, "0.05", utils.FormatPaisa(5))
	assert.Equal(t, "NPR 50.00", utils.FormatWithCurrency(5000))
}
