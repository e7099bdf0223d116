package get_captain_bookings

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	captainID := uuid.New()

	req, err := ToServiceRequest(captainID, url.Values{
		"from":            {"2025-07-01"},
		"to":              {"2025-07-08T00:00:00-04:00"},
		"status":          {"confirmed"},
		"includeInactive": {"true"},
		"limit":           {"1000"},
		"offset":          {"20"},
	})
	require.NoError(t, err)

	assert.Equal(t, captainID, req.CaptainID)
	require.NotNil(t, req.From)
	assert.True(t, req.From.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, req.To)
	assert.True(t, req.To.Equal(time.Date(2025, 7, 8, 4, 0, 0, 0, time.UTC)))
	require.NotNil(t, req.Status)
	assert.Equal(t, "confirmed", *req.Status)
	assert.True(t, req.IncludeInactive)
	assert.Equal(t, uint64(maxLimit), req.Limit)
	assert.Equal(t, uint64(20), req.Offset)
}

func TestToServiceRequest_Defaults(t *testing.T) {
	req, err := ToServiceRequest(uuid.New(), url.Values{})
	require.NoError(t, err)
	assert.Nil(t, req.From)
	assert.Nil(t, req.To)
	assert.Nil(t, req.Status)
	assert.False(t, req.IncludeInactive)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	for _, q := range []url.Values{
		{"from": {"yesterday"}},
		{"includeInactive": {"maybe"}},
		{"limit": {"-1"}},
	} {
		_, err := ToServiceRequest(uuid.New(), q)
		assert.Error(t, err, q.Encode())
	}
}
