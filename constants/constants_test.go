package constants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Setenv("CHORDFLOW_STORE", "")
	t.Setenv("CHORDFLOW_PORT", "")
	t.Setenv("CHORDFLOW_ALLOWED_ORIGINS", "")
	t.Setenv("SUGGEST_TIMEOUT", "")

	assert := assert.New(t)
	assert.Equal("sqlite", GetStoreKind())
	assert.Equal(8080, GetPort())
	assert.Nil(GetAllowedOrigins())
	assert.Equal(10*time.Second, GetSuggestTimeout())
}

func TestOverrides(t *testing.T) {
	t.Setenv("CHORDFLOW_STORE", "dynamodb")
	t.Setenv("CHORDFLOW_PORT", "9000")
	t.Setenv("CHORDFLOW_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("SUGGEST_TIMEOUT", "2s")

	assert := assert.New(t)
	assert.Equal("dynamodb", GetStoreKind())
	assert.Equal(9000, GetPort())
	assert.Equal([]string{"http://a.test", "http://b.test"}, GetAllowedOrigins())
	assert.Equal(2*time.Second, GetSuggestTimeout())
}

func TestWildcardOrigin(t *testing.T) {
	t.Setenv("CHORDFLOW_ALLOWED_ORIGINS", "*")
	assert.Nil(t, GetAllowedOrigins())
}

func TestBadPortFallsBack(t *testing.T) {
	t.Setenv("CHORDFLOW_PORT", "nope")
	assert.Equal(t, 8080, GetPort())
}
