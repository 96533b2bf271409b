package connection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	testLogger(t)
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, TokenPath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		if r.PostForm.Get("password") != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"authentication failure"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"00Dxx!token","instance_url":"https://acme.my.salesforce.com"}`))
	}))
	defer srv.Close()

	endpoint := strings.TrimPrefix(srv.URL, "http://")
	require.True(t, strings.HasPrefix(endpoint, "127.0.0.1"))

	props := func(password string) Properties {
		return Properties{
			Endpoint:    endpoint,
			User:        "admin@acme.test",
			Password:    password,
			OAuthKey:    "key",
			OAuthSecret: "shh",
			Timeout:     "5s",
		}
	}

	// 127.0.0.1 is not a local host name for InstanceURL, so route the
	// https URL to the test server.
	client := &http.Client{Transport: rewriteScheme{}}

	t.Run("password flow", func(t *testing.T) {
		s, err := Login(ctx, client, props("secret"))
		require.NoError(t, err)
		assert.Equal(t, &Session{InstanceURL: "https://acme.my.salesforce.com", AccessToken: "00Dxx!token"}, s)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		_, err := Login(ctx, client, props("wrong"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "authentication failure")
	})

	t.Run("access token", func(t *testing.T) {
		s, err := Login(ctx, nil, Properties{Endpoint: "na1.salesforce.com", AccessToken: "tok"})
		require.NoError(t, err)
		assert.Equal(t, "https://na1.salesforce.com", s.InstanceURL)
		assert.Equal(t, "tok", s.AccessToken)
	})

	t.Run("missing properties", func(t *testing.T) {
		_, err := Login(ctx, nil, Properties{Endpoint: "na1.salesforce.com", User: "a"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password")

		_, err = Login(ctx, nil, Properties{})
		assert.ErrorIs(t, err, ErrMissingEndpoint)
	})
}

// rewriteScheme sends https requests over plain http.
type rewriteScheme struct{}

func (rewriteScheme) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = "http"
	return http.DefaultTransport.RoundTrip(r)
}
