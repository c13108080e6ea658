package httpmod

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latch-lang/latch/internal/value"
)

func TestGetReturnsResponseRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Echo", r.Header.Get("X-Test"))
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("body text"))
	}))
	defer srv.Close()

	headers := value.NewDict()
	headers.Set("X-Test", value.Str("ping"))

	v, err := Module()["get"].Impl([]value.Value{value.Str(srv.URL), value.DictValue(headers)})
	require.Nil(t, err)
	resp := v.AsResponse()
	assert.Equal(t, int64(http.StatusTeapot), resp.Status)
	assert.Equal(t, "body text", resp.Body)
	assert.Equal(t, "ping", resp.Headers.Entries["X-Echo"].AsString())
}

func TestPostWithStringBodySendsVerbatim(t *testing.T) {
	var received string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		received = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := Module()["post"].Impl([]value.Value{value.Str(srv.URL), value.Str(`{"a":1}`)})
	require.Nil(t, err)
	assert.Equal(t, `{"a":1}`, received)
}

func TestPostWithDictBodyFormEncodes(t *testing.T) {
	var contentType, received string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		received = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	body := value.NewDict()
	body.Set("name", value.Str("ada"))
	_, err := Module()["post"].Impl([]value.Value{value.Str(srv.URL), value.DictValue(body)})
	require.Nil(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", contentType)
	assert.Equal(t, "name=ada", received)
}

func TestGetUnreachableHostIsNetworkError(t *testing.T) {
	_, err := Module()["get"].Impl([]value.Value{value.Str("http://127.0.0.1:1")})
	require.NotNil(t, err)
	assert.Equal(t, value.NetworkError, err.Kind)
}
