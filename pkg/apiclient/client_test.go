package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-client/internal/pkg/logger"
	"marketplace-client/pkg/tokenstore"
)

func newTestClient(t *testing.T, baseURL string, opts ...Option) (*Client, tokenstore.Store) {
	t.Helper()
	store := tokenstore.NewMemoryStore()
	c := New(baseURL, store, logger.NopLogger{}, opts...)
	return c, store
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestRequestAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, store := newTestClient(t, srv.URL)
	require.NoError(t, store.Set(tokenstore.AccessTokenKey, signedToken(t, time.Now().Add(time.Hour))))

	var out map[string]bool
	require.NoError(t, c.Get(context.Background(), "/ping/", nil, &out))
	assert.True(t, out["ok"])
	assert.Contains(t, gotAuth, "Bearer ")
}

func TestRequestWithoutTokenOmitsHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL)
	resp, err := c.Request(context.Background(), "/public/", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, gotAuth)
}

func TestAbsoluteURLPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":2}`))
	}))
	defer srv.Close()

	// Base URL points somewhere unreachable; the absolute endpoint wins.
	c, _ := newTestClient(t, "http://127.0.0.1:1")

	var out map[string]int
	require.NoError(t, c.Get(context.Background(), srv.URL+"/products/", nil, &out))
	assert.Equal(t, 2, out["page"])
}

func TestSingleFlightRefresh(t *testing.T) {
	const workers = 5

	var refreshCalls int32
	arrived := make(chan struct{}, workers)
	release := make(chan struct{})

	freshToken := signedToken(t, time.Now().Add(time.Hour))

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/jwt/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		time.Sleep(200 * time.Millisecond) // keep the flight open for all waiters
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access":"` + freshToken + `"}`))
	})
	mux.HandleFunc("/data/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer "+freshToken {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok":true}`))
			return
		}
		// Hold every first attempt until all workers arrived, so the
		// 401s land as one concurrent burst.
		arrived <- struct{}{}
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, store := newTestClient(t, srv.URL)
	// Distinct expiry from freshToken: same-second HS256 tokens with an
	// identical exp claim are byte-identical, which would make the stored
	// token already match freshToken and skip the 401 path entirely.
	require.NoError(t, store.Set(tokenstore.AccessTokenKey, signedToken(t, time.Now().Add(30*time.Minute))))
	require.NoError(t, store.Set(tokenstore.RefreshTokenKey, "refresh-1"))

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out map[string]bool
			errs[i] = c.Get(context.Background(), "/data/", nil, &out)
		}(i)
	}

	for i := 0; i < workers; i++ {
		<-arrived
	}
	close(release)
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "worker %d", i)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls), "exactly one refresh call for the burst")

	access, err := store.Get(tokenstore.AccessTokenKey)
	require.NoError(t, err)
	assert.Equal(t, freshToken, access)
}

func TestSecond401FailsWithoutThirdAttempt(t *testing.T) {
	var dataCalls, refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/jwt/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access":"` + signedToken(t, time.Now().Add(time.Hour)) + `"}`))
	})
	mux.HandleFunc("/data/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&dataCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, store := newTestClient(t, srv.URL)
	require.NoError(t, store.Set(tokenstore.AccessTokenKey, signedToken(t, time.Now().Add(time.Hour))))
	require.NoError(t, store.Set(tokenstore.RefreshTokenKey, "refresh-1"))

	err := c.Get(context.Background(), "/data/", nil, nil)
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Equal(t, int32(2), atomic.LoadInt32(&dataCalls), "original + one replay, never a third")
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))

	// Session is cleared after the failed recovery.
	access, _ := store.Get(tokenstore.AccessTokenKey)
	assert.Empty(t, access)
}

func TestFailedRefreshRejectsAllWaiters(t *testing.T) {
	const workers = 3

	var refreshCalls int32
	arrived := make(chan struct{}, workers)
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/jwt/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"refresh token expired"}`))
	})
	mux.HandleFunc("/data/", func(w http.ResponseWriter, r *http.Request) {
		arrived <- struct{}{}
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, store := newTestClient(t, srv.URL)
	require.NoError(t, store.Set(tokenstore.AccessTokenKey, signedToken(t, time.Now().Add(time.Hour))))
	require.NoError(t, store.Set(tokenstore.RefreshTokenKey, "stale"))

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Get(context.Background(), "/data/", nil, nil)
		}(i)
	}

	for i := 0; i < workers; i++ {
		<-arrived
	}
	close(release)
	wg.Wait()

	for i, err := range errs {
		assert.ErrorIs(t, err, ErrAuthentication, "worker %d", i)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
}

func TestRefreshWithoutTokenFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected")
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL)
	_, err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, WithTimeout(50*time.Millisecond))
	err := c.Get(context.Background(), "/slow/", nil, nil)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		body        string
		wantMsg     string
	}{
		{"detail field", "application/json", `{"detail":"product not found"}`, "product not found"},
		{"error field", "application/json", `{"error":"bad filter"}`, "bad filter"},
		{"error wins over detail", "application/json", `{"error":"first","detail":"second"}`, "first"},
		{"malformed json", "application/json", `{oops`, "request failed with status 404"},
		{"non-json body", "text/plain", "gateway exploded", "request failed with status 404"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c, _ := newTestClient(t, srv.URL)
			err := c.Get(context.Background(), "/missing/", nil, nil)

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, http.StatusNotFound, httpErr.Status)
			assert.Equal(t, tc.wantMsg, httpErr.Message)
		})
	}
}

func TestTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("pong"))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL)
	resp, err := c.Request(context.Background(), "/ping/", nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Text())
}

func TestProactiveRefreshOfExpiredToken(t *testing.T) {
	expired := signedToken(t, time.Now().Add(-time.Hour))
	fresh := signedToken(t, time.Now().Add(time.Hour))

	var sawExpired atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/jwt/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access":"` + fresh + `"}`))
	})
	mux.HandleFunc("/data/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer "+expired {
			sawExpired.Store(true)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, store := newTestClient(t, srv.URL)
	require.NoError(t, store.Set(tokenstore.AccessTokenKey, expired))
	require.NoError(t, store.Set(tokenstore.RefreshTokenKey, "refresh-1"))

	require.NoError(t, c.Get(context.Background(), "/data/", nil, nil))
	assert.False(t, sawExpired.Load(), "expired token must never reach the backend")
}

func TestResponseCacheServesSecondGet(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":7}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, WithResponseCache(time.Minute))

	var first, second map[string]int
	require.NoError(t, c.Get(context.Background(), "/categories/", nil, &first))
	require.NoError(t, c.Get(context.Background(), "/categories/", nil, &second))

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// Logout flushes the cache.
	c.ClearSession()
	require.NoError(t, c.Get(context.Background(), "/categories/", nil, nil))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetUncachedBypassesCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, WithResponseCache(time.Minute))

	require.NoError(t, c.GetUncached(context.Background(), "/wishlist/", nil, nil))
	require.NoError(t, c.GetUncached(context.Background(), "/wishlist/", nil, nil))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "every uncached read hits the backend")
}

func TestQueryParamsEncoded(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL)
	q := url.Values{}
	q.Set("q", "ac repair")
	q.Set("limit", "5")
	require.NoError(t, c.Get(context.Background(), "/products/search/", q, nil))

	assert.Equal(t, "ac repair", gotQuery.Get("q"))
	assert.Equal(t, "5", gotQuery.Get("limit"))
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, tokenExpired(signedToken(t, time.Now().Add(-time.Minute))))
	assert.False(t, tokenExpired(signedToken(t, time.Now().Add(time.Minute))))
	assert.False(t, tokenExpired("not-a-jwt"), "unparsable tokens are sent as-is")
}
