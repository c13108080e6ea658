package hashmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-lang/latch/internal/value"
)

func TestKnownDigests(t *testing.T) {
	cases := []struct {
		fn   string
		want string
	}{
		{"md5", "5d41402abc4b2a76b9719d911017c592"},
		{"sha1", "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{"sha256", "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
		{"crc32", "3610a686"},
	}
	for _, c := range cases {
		v, err := Module()[c.fn].Impl([]value.Value{value.Str("hello")})
		require.Nil(t, err, c.fn)
		assert.Equal(t, c.want, v.AsString(), c.fn)
	}
}

func TestHashRejectsNonString(t *testing.T) {
	_, err := Module()["sha256"].Impl([]value.Value{value.Int(1)})
	require.NotNil(t, err)
	assert.Equal(t, value.TypeError, err.Kind)
}
