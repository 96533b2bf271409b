// Package connection resolves connection properties for a remote catalog.
//
// A connection is described by a URL of the form
//
//	force://host[:port][/path]?user=...&password=...&oauth_key=...&oauth_secret=...
//
// or by a ${VAR} reference to an environment variable holding such a URL.
// Resolved properties are cached per connection name.
package connection

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Scheme is the scheme of connection URLs.
const Scheme = "force"

// DefaultName is the connection name used when none is given.
const DefaultName = "${FORCE_URL}"

// Property names a connection property.
type Property string

// Known properties. Unknown query parameters are ignored.
const (
	Endpoint    Property = "endpoint"
	User        Property = "user"
	Password    Property = "password"
	OAuthKey    Property = "oauth_key"
	OAuthSecret Property = "oauth_secret"
	AccessToken Property = "access_token"
	ClientName  Property = "clientname"
	Timeout     Property = "timeout"
)

var knownProperties = map[Property]struct{}{
	User:        {},
	Password:    {},
	OAuthKey:    {},
	OAuthSecret: {},
	AccessToken: {},
	ClientName:  {},
	Timeout:     {},
}

var (
	// ErrUnsupportedScheme is returned for URLs not using the force scheme.
	ErrUnsupportedScheme = errors.New("forcegen: connection url must start with force://")
	// ErrMissingEndpoint is returned for URLs without a host.
	ErrMissingEndpoint = errors.New("forcegen: connection url has no endpoint")
	// ErrUnresolved is returned for ${VAR} references to unset variables.
	ErrUnresolved = errors.New("forcegen: connection variable is not set")
)

// Properties are the resolved properties of one connection.
type Properties map[Property]string

// Get returns the value of p, or "".
func (p Properties) Get(name Property) string { return p[name] }

// Endpoint returns host[:port][/path] of the connection.
func (p Properties) Endpoint() string { return p[Endpoint] }

// InstanceURL returns the base URL of the remote service. Local and
// internal hosts use http, every other host https.
func (p Properties) InstanceURL() string {
	endpoint := strings.TrimSuffix(p.Endpoint(), "/")
	if endpoint == "" {
		return ""
	}
	if strings.HasPrefix(endpoint, "localhost") || strings.Contains(endpoint, "internal") {
		return "http://" + endpoint
	}
	return "https://" + endpoint
}

// Timeout returns the request timeout. Values are Go durations ("30s") or
// plain milliseconds ("30000"). Zero means no timeout.
func (p Properties) Timeout() (time.Duration, error) {
	v := p[Timeout]
	if v == "" {
		return 0, nil
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid connection timeout %q: %w", v, err)
	}
	return d, nil
}

// Redacted returns the properties with secrets masked, for logging.
func (p Properties) Redacted() map[string]interface{} {
	out := make(map[string]interface{}, len(p))
	for k, v := range p {
		switch k {
		case Password, OAuthSecret, AccessToken:
			out[string(k)] = "xxxxx"
		default:
			out[string(k)] = v
		}
	}
	return out
}

// ParseURL parses a force:// connection URL.
func ParseURL(raw string) (Properties, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing connection url: %w", err)
	}
	if u.Scheme != Scheme {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Host == "" {
		return nil, ErrMissingEndpoint
	}
	props := Properties{Endpoint: u.Host + u.Path}
	for key, values := range u.Query() {
		p := Property(strings.ToLower(key))
		if _, ok := knownProperties[p]; ok && len(values) > 0 {
			props[p] = values[0]
		}
	}
	return props, nil
}

// IsVariable reports if s is a ${VAR} reference.
func IsVariable(s string) bool {
	return len(s) > 3 && strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}")
}

// Expand resolves a ${VAR} reference with lookup. Other strings are
// returned unchanged.
func Expand(s string, lookup func(string) (string, bool)) (string, error) {
	if !IsVariable(s) {
		return s, nil
	}
	name := s[2 : len(s)-1]
	v, ok := lookup(name)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrUnresolved, name)
	}
	return v, nil
}

// ExpandEnv resolves a ${VAR} reference from the environment.
func ExpandEnv(s string) (string, error) {
	return Expand(s, os.LookupEnv)
}
