package pagination

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeIDToken(t *testing.T) {
	id := ulid.Make().String()

	token := EncodeIDToken(id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeIDToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestDecodeIDTokenError(t *testing.T) {
	_, err := DecodeIDToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeIDToken(EncodeIDToken("not-a-ulid"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "id parse")
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0, 500))
	assert.Equal(t, 10, NormalizeLimit(10, 500))
	assert.Equal(t, 500, NormalizeLimit(10000, 500))
}
