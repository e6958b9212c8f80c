package recur

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Netflix.com":             "netflixcom",
		"NETFLIX.COM  ":           "netflixcom",
		"  SPOTIFY   P2345  ":     "spotify p2345",
		"Dan Murphy's/580":        "dan murphys580",
		"CAFÉ*ROUGE":              "cafrouge",
		"":                        "",
		"***":                     "",
		"gym\tmembership\ndirect": "gym membership direct",
	}
	for in, want := range cases {
		require.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestNormalizeSameKeyForNameVariants(t *testing.T) {
	t.Parallel()
	require.Equal(t, Normalize("Netflix.com"), Normalize("NETFLIX.COM  "))
}

func TestMerchantKeyPrefersMerchantName(t *testing.T) {
	t.Parallel()
	merchant := "Netflix"
	require.Equal(t, "netflix", MerchantKey("NETFLIX.COM 44412", &merchant))

	empty := "  *** "
	require.Equal(t, "netflixcom 44412", MerchantKey("NETFLIX.COM 44412", &empty))
	require.Equal(t, "netflixcom 44412", MerchantKey("NETFLIX.COM 44412", nil))
}
