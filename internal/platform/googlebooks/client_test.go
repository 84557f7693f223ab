package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
  "kind": "books#volumes",
  "totalItems": 2,
  "items": [
    {
      "id": "zyTCAlFPjgYC",
      "volumeInfo": {
        "title": "The Google Story",
        "authors": ["David A. Vise", "Mark Malseed"],
        "publishedDate": "2005-11-15",
        "pageCount": 207,
        "categories": ["Browsers (Computer programs)"],
        "imageLinks": {"smallThumbnail": "http://img/s", "thumbnail": "http://img/t"}
      },
      "saleInfo": {"country": "US", "saleability": "FOR_SALE", "isEbook": true,
                   "listPrice": {"amount": 11.99, "currencyCode": "USD"}}
    },
    {"id": "bare"}
  ]
}`

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithBackoff(time.Millisecond)}, opts...)
	return NewClient(srv.URL, 1000, 2, opts...)
}

func TestClient_Search(t *testing.T) {
	var gotQuery, gotMax, gotKey string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/books/v1/volumes", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotMax = r.URL.Query().Get("maxResults")
		gotKey = r.URL.Query().Get("key")
		_, _ = w.Write([]byte(searchBody))
	}, WithAPIKey("k123"))

	res, err := c.Search(context.Background(), "google story", 10)
	require.NoError(t, err)

	assert.Equal(t, "google story", gotQuery)
	assert.Equal(t, "10", gotMax)
	assert.Equal(t, "k123", gotKey)
	assert.Equal(t, 2, res.TotalItems)
	require.Len(t, res.Items, 2)

	first := res.Items[0]
	info := first.Info()
	assert.Equal(t, "The Google Story", info.Title)
	assert.Equal(t, []string{"David A. Vise", "Mark Malseed"}, info.Authors)
	require.NotNil(t, info.PageCount)
	assert.Equal(t, 207, *info.PageCount)
	assert.Equal(t, "http://img/t", info.Thumbnail())
	assert.Equal(t, "http://img/s", info.SmallThumbnail())
	require.NotNil(t, first.SaleInfo)
	require.NotNil(t, first.SaleInfo.ListPrice)
	assert.Equal(t, 11.99, *first.SaleInfo.ListPrice.Amount)

	bare := res.Items[1]
	assert.Nil(t, bare.VolumeInfo)
	assert.Equal(t, VolumeInfo{}, bare.Info())
	assert.Empty(t, bare.Info().Thumbnail())
}

func TestClient_GetVolume(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/books/v1/volumes/abc" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":"abc","volumeInfo":{"title":"Dune"}}`))
	})

	v, err := c.GetVolume(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Dune", v.Info().Title)

	_, err = c.GetVolume(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	var outcomes []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"totalItems":0}`))
	}, WithObserver(func(o string) { outcomes = append(outcomes, o) }))

	res, err := c.Search(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalItems)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []string{OutcomeRetry, OutcomeRetry, OutcomeOK}, outcomes)
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Search(context.Background(), "q", 0)
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := c.Search(context.Background(), "q", 0)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_BadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := c.Search(context.Background(), "q", 0)
	assert.ErrorContains(t, err, "decode response")
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, WithBackoff(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Search(ctx, "q", 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
