package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 0)
	body, err := c.GetString(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", body)
	assert.Equal(t, BrowserUserAgent, gotUA)
}

func TestClient_StreamingClient(t *testing.T) {
	var gotUA []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = append(gotUA, r.Header.Get("User-Agent"))
		w.Write([]byte("audio"))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 0)
	stream := c.StreamingClient()
	assert.Zero(t, stream.Timeout)

	resp, err := stream.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom/1.0")
	resp, err = stream.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []string{BrowserUserAgent, "custom/1.0"}, gotUA)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 0)
	_, err := c.Get(context.Background(), srv.URL)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
}

func TestClient_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"name":"cover","size":3}`))
	}))
	defer srv.Close()

	var v struct {
		Name string `json:"name"`
		Size int    `json:"size"`
	}
	c := NewClient(5*time.Second, 0)
	require.NoError(t, c.GetJSON(context.Background(), srv.URL, &v))
	assert.Equal(t, "cover", v.Name)
	assert.Equal(t, 3, v.Size)

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{broken`))
	}))
	defer bad.Close()
	assert.Error(t, c.GetJSON(context.Background(), bad.URL, &v))
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := NewClient(5*time.Second, 0.001)
	_, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err, "first request uses the burst token")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Get(ctx, srv.URL)
	assert.Error(t, err)
}

func TestProgressWriter(t *testing.T) {
	var buf bytes.Buffer
	var updates []int64
	pw := &ProgressWriter{
		Writer:   &buf,
		Total:    6,
		OnUpdate: func(written, total int64) { updates = append(updates, written) },
	}

	pw.Write([]byte("abc"))
	pw.Write([]byte("def"))

	assert.Equal(t, "abcdef", buf.String())
	assert.Equal(t, []int64{3, 6}, updates)
	assert.Equal(t, int64(6), pw.Written)
}
