package render

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncateCountsRunes(t *testing.T) {
	t.Parallel()
	require.Equal(t, "CAFÉ ROUGE", truncate("CAFÉ ROUGE", 10))
	require.Equal(t, "CAF…", truncate("CAFÉ ROUGE", 4))
	require.Equal(t, "CAFÉ…", truncate("CAFÉ ROUGE", 5))
	require.Equal(t, "É", truncate("ÉPICERIE DU COIN", 1))

	for n := 1; n <= 10; n++ {
		require.True(t, utf8.ValidString(truncate("CAFÉ ROUGE", n)), "width %d", n)
	}
}
