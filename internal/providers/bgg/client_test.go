package bgg

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/bglist/internal/metrics"
	"github.com/preston-bernstein/bglist/internal/testutil"
)

type sleepRecorder struct {
	delays []time.Duration
	err    error
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	_ = ctx
	s.delays = append(s.delays, d)
	return s.err
}

func newTestClient(t *testing.T, rt testutil.RoundTripperFunc, rec *metrics.Recorder) (*Client, *sleepRecorder) {
	t.Helper()
	logger, _ := testutil.NewBufferLogger()
	client := NewClient(Config{
		BaseURL:    "http://example.com/xmlapi/",
		HTTPClient: &http.Client{Transport: rt},
		Logger:     logger,
		Metrics:    rec,
	})
	sleeper := &sleepRecorder{}
	client.sleep = sleeper.sleep
	return client, sleeper
}

func TestFetchCollectionHitsCollectionEndpoint(t *testing.T) {
	var captured []*http.Request
	rt := testutil.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		captured = append(captured, req)
		return testutil.XMLResponse(http.StatusOK, testutil.SampleCollection()), nil
	})
	client, sleeper := newTestClient(t, rt, nil)

	body, err := client.FetchCollection(context.Background())
	require.NoError(t, err)
	require.Len(t, captured, 1)
	require.Empty(t, sleeper.delays)

	req := captured[0]
	require.Equal(t, http.MethodGet, req.Method)
	require.Equal(t, "/xmlapi/collection/ffsjake", req.URL.Path)
	require.Equal(t, "1", req.URL.Query().Get("own"))
	require.Contains(t, string(body), "Catan")
}

func TestFetchCollectionWaitsOnceAfterAccepted(t *testing.T) {
	first := testutil.NewTrackingBody(testutil.AcceptedBody)
	calls := 0
	rt := testutil.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return testutil.XMLResponseWithBody(http.StatusAccepted, first), nil
		}
		return testutil.XMLResponse(http.StatusOK, testutil.SampleCollection()), nil
	})
	rec := metrics.NewRecorder()
	client, sleeper := newTestClient(t, rt, rec)

	body, err := client.FetchCollection(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Equal(t, []time.Duration{10 * time.Second}, sleeper.delays)
	require.True(t, first.Closed(), "first 202 body should be closed before retrying")
	require.Contains(t, string(body), "Chess")

	require.Equal(t, 2, rec.ProviderCalls(providerName))
	require.Equal(t, 1, rec.AcceptedHits(providerName))
	require.Equal(t, 10*time.Second, rec.LastAcceptedDelay(providerName))
	require.Equal(t, http.StatusOK, rec.Snapshot(providerName).LastStatus)
}

func TestFetchCollectionUsesSecondBodyEvenWhenStillAccepted(t *testing.T) {
	calls := 0
	rt := testutil.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return testutil.XMLResponse(http.StatusAccepted, "first"), nil
		}
		return testutil.XMLResponse(http.StatusAccepted, "second"), nil
	})
	client, sleeper := newTestClient(t, rt, nil)

	body, err := client.FetchCollection(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, calls, "no more than one re-attempt")
	require.Len(t, sleeper.delays, 1)
	require.Equal(t, "second", string(body))
}

func TestFetchCollectionReturnsNonAcceptedStatusBodyAsIs(t *testing.T) {
	calls := 0
	rt := testutil.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return testutil.XMLResponse(http.StatusServiceUnavailable, "<error/>"), nil
	})
	client, sleeper := newTestClient(t, rt, nil)

	body, err := client.FetchCollection(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Empty(t, sleeper.delays)
	require.Equal(t, "<error/>", string(body))
}

func TestFetchCollectionPropagatesTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	rt := testutil.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, boom
	})
	rec := metrics.NewRecorder()
	client, _ := newTestClient(t, rt, rec)

	_, err := client.FetchCollection(context.Background())
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, rec.ProviderErrors(providerName))
}

func TestFetchCollectionPropagatesRetryTransportError(t *testing.T) {
	boom := errors.New("reset by peer")
	calls := 0
	rt := testutil.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return testutil.XMLResponse(http.StatusAccepted, ""), nil
		}
		return nil, boom
	})
	client, _ := newTestClient(t, rt, nil)

	_, err := client.FetchCollection(context.Background())
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, calls)
}

func TestFetchCollectionStopsWhenWaitCancelled(t *testing.T) {
	calls := 0
	rt := testutil.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return testutil.XMLResponse(http.StatusAccepted, ""), nil
	})
	client, sleeper := newTestClient(t, rt, nil)
	sleeper.err = context.Canceled

	_, err := client.FetchCollection(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestFetchCollectionRecordsLatency(t *testing.T) {
	rt := testutil.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return testutil.XMLResponse(http.StatusOK, "<items/>"), nil
	})
	rec := metrics.NewRecorder()
	client, _ := newTestClient(t, rt, rec)
	client.now = testutil.SteppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 250*time.Millisecond)

	_, err := client.FetchCollection(context.Background())
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, rec.LastCallLatency(providerName))
}

func TestFetchCollectionLogsStatusMessages(t *testing.T) {
	calls := 0
	rt := testutil.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return testutil.XMLResponse(http.StatusAccepted, ""), nil
		}
		return testutil.XMLResponse(http.StatusOK, "<items/>"), nil
	})
	logger, buf := testutil.NewBufferLogger()
	client := NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: rt}, Logger: logger})
	client.sleep = func(context.Context, time.Duration) error { return nil }

	_, err := client.FetchCollection(context.Background())
	require.NoError(t, err)

	out := buf.String()
	for _, msg := range []string{"calling BGG", "awaiting BGG readiness", "response received"} {
		require.True(t, strings.Contains(out, msg), "expected %q in logs:\n%s", msg, out)
	}
	require.Contains(t, out, "provider=bgg")
	require.Equal(t, 2, strings.Count(out, `url="http://example.com/collection/ffsjake?own=1"`), "each request logs its URL:\n%s", out)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{})
	require.Equal(t, defaultBaseURL, c.baseURL)
	require.Equal(t, collectionUsername, c.username)
	require.Equal(t, acceptedRetryDelay, c.retryDelay)

	httpClient, ok := c.httpClient.(*http.Client)
	require.True(t, ok, "expected default http client")
	require.NotZero(t, httpClient.Timeout)
}
