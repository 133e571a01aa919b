package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfHandler(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seen string
	h := CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetCSRFToken(r)
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seen
}

func TestCSRFProtection_IssuesTokenOnSafeRequests(t *testing.T) {
	h, seen := csrfHandler(t)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == DefaultCSRFCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.Equal(t, cookie.Value, *seen)
	assert.False(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestCSRFProtection_ReusesExistingCookie(t *testing.T) {
	h, seen := csrfHandler(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "existing"})
	r.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	assert.Equal(t, "existing", *seen)
	assert.Empty(t, w.Result().Cookies())
}

func TestCSRFProtection_SecureBehindProxy(t *testing.T) {
	h, _ := csrfHandler(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	require.Len(t, w.Result().Cookies(), 1)
	assert.True(t, w.Result().Cookies()[0].Secure)
}

func TestCSRFProtection_Validation(t *testing.T) {
	const token = "tok-123"
	tests := []struct {
		name   string
		cookie string
		header string
		form   string
		ctype  string
		want   int
	}{
		{name: "matching header", cookie: token, header: token, want: http.StatusOK},
		{name: "matching form field", cookie: token, form: token, ctype: "application/x-www-form-urlencoded", want: http.StatusOK},
		{name: "header wins over form", cookie: token, header: "wrong", form: token, ctype: "application/x-www-form-urlencoded", want: http.StatusForbidden},
		{name: "mismatched form field", cookie: token, form: "other", ctype: "application/x-www-form-urlencoded", want: http.StatusForbidden},
		{name: "token in a JSON body is not read", cookie: token, form: token, ctype: "application/json", want: http.StatusForbidden},
		{name: "no cookie", form: token, ctype: "application/x-www-form-urlencoded", want: http.StatusForbidden},
		{name: "nothing sent", cookie: token, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := csrfHandler(t)
			body := url.Values{DefaultCSRFFormFieldName: {tt.form}}.Encode()
			r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
			if tt.ctype != "" {
				r.Header.Set("Content-Type", tt.ctype)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				r.Header.Set(DefaultCSRFHeaderName, tt.header)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestGenerateCSRFToken(t *testing.T) {
	a, err := generateCSRFToken(DefaultCSRFTokenLength)
	require.NoError(t, err)
	b, err := generateCSRFToken(DefaultCSRFTokenLength)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 44)
}
