package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/keypair"
)

func TestParseAmountFromString(t *testing.T) {
	cases := []struct {
		input    string
		expected string
		fails    bool
	}{
		{"69", "69", false},
		{"6.9", "6.9", false},
		{"1,000,000.5", "1000000.5", false},
		{"1_000", "1000", false},
		{"-1", "", true},
		{"showme", "", true},
	}

	for _, c := range cases {
		amount, err := ParseAmountFromString(c.input)
		if c.fails {
			require.Error(t, err, c.input)
			continue
		}
		require.NoError(t, err, c.input)
		require.Equal(t, common.MustAmountFromDecimalString(c.expected), amount, c.input)
	}
}

func TestParseSecretSeed(t *testing.T) {
	kp := keypair.Random()

	full, err := ParseSecretSeed(kp.Seed())
	require.NoError(t, err)
	require.Equal(t, kp.Address(), full.Address())

	_, err = ParseSecretSeed(kp.Address())
	require.Error(t, err)

	_, err = ParseSecretSeed("showme")
	require.Error(t, err)
}

func TestListFlags(t *testing.T) {
	var l ListFlags
	require.NoError(t, l.Set("a"))
	require.NoError(t, l.Set("b"))
	require.Equal(t, "a b", l.String())
}

func TestDefaultEncodes(t *testing.T) {
	v := map[string]string{"name": "showme"}

	var b bytes.Buffer
	require.NoError(t, DefaultEncodes["json"](v, &b))
	require.Equal(t, "{\"name\":\"showme\"}\n", b.String())

	b.Reset()
	require.NoError(t, DefaultEncodes["yaml"](v, &b))
	require.Equal(t, "name: showme\n", b.String())
}
