package idx_test

import (
	"testing"
	"time"

	"github.com/sellapay/gateway/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewProducesValidSortedIDs(t *testing.T) {
	a := idx.New()
	b := idx.New()

	require.False(t, a.IsZero())
	require.False(t, b.IsZero())
	require.NotEqual(t, a, b)
	require.Less(t, a.String(), b.String(), "monotonic source must sort")

	_, err := idx.Parse(a.String())
	require.NoError(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "0000"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", s)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := idx.NewAt(at)
	require.Equal(t, at, id.Time())
}
