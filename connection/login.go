package connection

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pentops/log.go/log"
	"github.com/tidwall/gjson"
)

// TokenPath is the OAuth token endpoint of the remote service.
const TokenPath = "/services/oauth2/token"

// Session is an authenticated session.
type Session struct {
	InstanceURL string
	AccessToken string
}

// Login authenticates with the properties of a connection. A connection
// carrying an access token is used as is; otherwise the OAuth
// username-password flow is run against the connection endpoint.
func Login(ctx context.Context, client *http.Client, props Properties) (*Session, error) {
	instance := props.InstanceURL()
	if instance == "" {
		return nil, ErrMissingEndpoint
	}
	if token := props.Get(AccessToken); token != "" {
		return &Session{InstanceURL: instance, AccessToken: token}, nil
	}
	for _, p := range []Property{User, Password, OAuthKey, OAuthSecret} {
		if props.Get(p) == "" {
			return nil, fmt.Errorf("forcegen: connection property %s is required to log in", p)
		}
	}
	if client == nil {
		client = http.DefaultClient
	}
	if timeout, err := props.Timeout(); err != nil {
		return nil, err
	} else if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	form := url.Values{
		"grant_type":    {"password"},
		"client_id":     {props.Get(OAuthKey)},
		"client_secret": {props.Get(OAuthSecret)},
		"username":      {props.Get(User)},
		"password":      {props.Get(Password)},
	}
	tokenURL := instance + TokenPath
	ctx = log.WithField(ctx, "endpoint", props.Endpoint())
	log.Debug(ctx, "logging in")

	req, err := http.NewRequest(http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req = req.WithContext(ctx)

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("logging in: %q %w", tokenURL, err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading login response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(data, "error_description").String()
		if msg == "" {
			msg = string(data)
		}
		return nil, fmt.Errorf("logging in: %s %s", res.Status, msg)
	}

	result := gjson.GetManyBytes(data, "access_token", "instance_url")
	if result[0].String() == "" {
		return nil, fmt.Errorf("logging in: response has no access token")
	}
	s := &Session{AccessToken: result[0].String(), InstanceURL: result[1].String()}
	if s.InstanceURL == "" {
		s.InstanceURL = instance
	}
	return s, nil
}
