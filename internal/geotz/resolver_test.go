package geotz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLookup struct {
	tz    string
	err   error
	calls atomic.Int32
}

func (l *countingLookup) Timezone(_ context.Context, _ string) (string, error) {
	l.calls.Add(1)
	return l.tz, l.err
}

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestResolver_Location(t *testing.T) {
	ctx := context.Background()
	berlin := mustLoad(t, "Europe/Berlin")
	lookup := &countingLookup{tz: "America/New_York"}
	r := NewResolver(lookup, berlin)

	// explicit timezone wins
	assert.Equal(t, "Asia/Tokyo", r.Location(ctx, "Asia/Tokyo", "8.8.8.8").String())
	assert.Equal(t, int32(0), lookup.calls.Load())

	// invalid explicit timezone falls through to the ip
	assert.Equal(t, "America/New_York", r.Location(ctx, "Mars/Base", "8.8.8.8").String())
	assert.Equal(t, int32(1), lookup.calls.Load())

	// cached
	assert.Equal(t, "America/New_York", r.Location(ctx, "", "8.8.8.8").String())
	assert.Equal(t, int32(1), lookup.calls.Load())

	// local addresses never hit the lookup
	assert.Equal(t, berlin, r.Location(ctx, "", "localhost"))
	assert.Equal(t, berlin, r.Location(ctx, "", "127.0.0.1"))
	assert.Equal(t, berlin, r.Location(ctx, "", ""))
	assert.Equal(t, int32(1), lookup.calls.Load())
}

func TestResolver_LookupFailures(t *testing.T) {
	ctx := context.Background()

	failing := NewResolver(&countingLookup{err: errors.New("quota exceeded")}, nil)
	assert.Equal(t, time.UTC, failing.Location(ctx, "", "8.8.4.4"))
	assert.Equal(t, time.UTC, failing.Fallback())

	unknown := NewResolver(&countingLookup{tz: "Nowhere/Special"}, time.UTC)
	assert.Equal(t, time.UTC, unknown.Location(ctx, "", "8.8.4.4"))

	noLookup := NewResolver(nil, time.UTC)
	assert.Equal(t, time.UTC, noLookup.Location(ctx, "", "8.8.4.4"))
}

func TestIPInfoLookup_Timezone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/80.36.233.153" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ip":"80.36.233.153","city":"Palma","country":"ES","timezone":"Europe/Madrid"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ip":"1.1.1.1"}`))
	}))
	defer srv.Close()

	lookup := NewIPInfoLookup(srv.Client(), "test-token")
	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	lookup.client.BaseURL = baseURL

	tz, err := lookup.Timezone(context.Background(), "80.36.233.153")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Madrid", tz)

	_, err = lookup.Timezone(context.Background(), "1.1.1.1")
	assert.ErrorIs(t, err, ErrNoTimezone)

	_, err = lookup.Timezone(context.Background(), "not-an-ip")
	assert.Error(t, err)
}
