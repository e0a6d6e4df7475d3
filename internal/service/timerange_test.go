package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRange(t *testing.T) {
	start, end, err := timeRange("2025-07-01", "10:00", 2)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC), end)

	_, _, err = timeRange("2025-07-01", "27:00", 1)
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2025, 7, 1, h, m, 0, 0, time.UTC)
	}
	cases := []struct {
		name                       string
		s1, e1, s2, e2             time.Time
		want                       bool
	}{
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"containment", at(10, 0), at(13, 0), at(11, 0), at(12, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"touching end to start", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"touching start to end", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"disjoint", at(8, 0), at(9, 0), at(12, 0), at(13, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
		})
	}
}

func TestPaginate(t *testing.T) {
	assert.True(t, paginate(10, 3, 0).HasMore)
	assert.True(t, paginate(10, 3, 6).HasMore)
	assert.False(t, paginate(10, 3, 7).HasMore)
	assert.False(t, paginate(10, 0, 0).HasMore)
	assert.False(t, paginate(0, 5, 0).HasMore)
}
