package store

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()

	_, ok := kv.Get(UserKey)
	assert.False(t, ok)

	require.NoError(t, kv.Set(UserKey, `{"id":"user123"}`))
	v, ok := kv.Get(UserKey)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"user123"}`, v)

	require.NoError(t, kv.Remove(UserKey))
	_, ok = kv.Get(UserKey)
	assert.False(t, ok)
}

// carry, önceki yanıtın cookie'lerini yeni bir isteğe taşır.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCookieKVRoundTrip(t *testing.T) {
	cs := NewCookieStore("test-secret", 3600)

	rec := httptest.NewRecorder()
	kv := NewCookieKV(cs, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, kv.Set(UserKey, `{"id":"admin123"}`))
	require.NotEmpty(t, rec.Result().Cookies())

	rec2 := httptest.NewRecorder()
	kv2 := NewCookieKV(cs, rec2, carry(rec))
	v, ok := kv2.Get(UserKey)
	require.True(t, ok)
	assert.Equal(t, `{"id":"admin123"}`, v)

	require.NoError(t, kv2.Remove(UserKey))
	cookies := rec2.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestCookieKVRejectsForeignSecret(t *testing.T) {
	rec := httptest.NewRecorder()
	kv := NewCookieKV(NewCookieStore("one", 3600), rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, kv.Set(UserKey, "x"))

	other := NewCookieKV(NewCookieStore("two", 3600), httptest.NewRecorder(), carry(rec))
	_, ok := other.Get(UserKey)
	assert.False(t, ok)
}
