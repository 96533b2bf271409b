package load

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pentops/log.go/log"
	"github.com/tidwall/gjson"

	"github.com/syssam/forcegen/schema"
)

// DefaultAPIVersion is the REST API version used unless configured.
const DefaultAPIVersion = "61.0"

// RESTSource describes a catalog through the REST API of an instance.
// Authentication is a bearer token obtained elsewhere.
type RESTSource struct {
	instance string
	version  string
	auth     string
	client   *http.Client
}

// NewRESTSource returns a source for the instance at instanceURL.
func NewRESTSource(instanceURL, accessToken string) (*RESTSource, error) {
	u, err := url.Parse(instanceURL)
	if err != nil {
		return nil, fmt.Errorf("parsing instance url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("instance url %q needs a scheme and host", instanceURL)
	}
	auth := ""
	if accessToken != "" {
		auth = fmt.Sprintf("Bearer %s", accessToken)
	}
	return &RESTSource{
		instance: strings.TrimRight(u.String(), "/"),
		version:  DefaultAPIVersion,
		auth:     auth,
		client:   http.DefaultClient,
	}, nil
}

// WithHTTPClient sets the client used for requests.
func (s *RESTSource) WithHTTPClient(c *http.Client) *RESTSource {
	if c != nil {
		s.client = c
	}
	return s
}

// WithAPIVersion sets the REST API version, e.g. "61.0".
func (s *RESTSource) WithAPIVersion(v string) *RESTSource {
	if v != "" {
		s.version = strings.TrimPrefix(v, "v")
	}
	return s
}

func (s *RESTSource) dataURL(path string) string {
	return fmt.Sprintf("%s/services/data/v%s/%s", s.instance, s.version, path)
}

func (s *RESTSource) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.auth != "" {
		req.Header.Set("Authorization", s.auth)
	}
	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", endpoint, err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", endpoint, err)
	}
	if res.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(data, "0.message").String()
		if msg == "" {
			msg = string(data)
		}
		return nil, fmt.Errorf("fetching %q: %s %q", endpoint, res.Status, msg)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("fetching %q: response is not valid JSON", endpoint)
	}
	return data, nil
}

// ObjectNames implements Source.
func (s *RESTSource) ObjectNames(ctx context.Context) ([]string, error) {
	data, err := s.get(ctx, s.dataURL("sobjects"))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, n := range gjson.GetBytes(data, "sobjects.#.name").Array() {
		names = append(names, n.String())
	}
	log.WithField(ctx, "objects", len(names)).Debug("listed objects")
	return names, nil
}

// Describe implements Source. Each name is described with its own request.
func (s *RESTSource) Describe(ctx context.Context, names []string) ([]*schema.Object, error) {
	objects := make([]*schema.Object, 0, len(names))
	for _, name := range names {
		data, err := s.get(ctx, s.dataURL("sobjects/"+url.PathEscape(name)+"/describe"))
		if err != nil {
			return nil, err
		}
		o, err := ParseDescribe(data)
		if err != nil {
			return nil, fmt.Errorf("describing %s: %w", name, err)
		}
		objects = append(objects, o)
	}
	return objects, nil
}

// Caller implements Source. The organisation name is looked up with a
// query since the user info endpoint does not carry it.
func (s *RESTSource) Caller(ctx context.Context) (*Caller, error) {
	data, err := s.get(ctx, s.instance+"/services/oauth2/userinfo")
	if err != nil {
		return nil, err
	}
	info := gjson.ParseBytes(data)
	c := &Caller{
		UserID:         info.Get("user_id").String(),
		UserName:       info.Get("preferred_username").String(),
		OrganizationID: info.Get("organization_id").String(),
	}
	q := url.Values{"q": {"SELECT Name FROM Organization LIMIT 1"}}
	data, err = s.get(ctx, s.dataURL("query?"+q.Encode()))
	if err != nil {
		return nil, err
	}
	c.OrganizationName = gjson.GetBytes(data, "records.0.Name").String()
	return c, nil
}

// ParseDescribe decodes the describe document of one object. Field types
// the generator does not know, such as compound address fields, are read
// as strings.
func ParseDescribe(data []byte) (*schema.Object, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("describe document is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	o := &schema.Object{
		Name:   root.Get("name").String(),
		Label:  root.Get("label").String(),
		Custom: root.Get("custom").Bool(),
	}
	if o.Name == "" {
		return nil, fmt.Errorf("describe document has no object name")
	}
	root.Get("fields").ForEach(func(_, v gjson.Result) bool {
		o.Fields = append(o.Fields, parseField(v))
		return true
	})
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func parseField(v gjson.Result) *schema.Field {
	typ, err := schema.ParseType(v.Get("type").String())
	if err != nil {
		typ = schema.TypeString
	}
	f := &schema.Field{
		Name:               v.Get("name").String(),
		Label:              v.Get("label").String(),
		Type:               typ,
		Custom:             v.Get("custom").Bool(),
		Nillable:           v.Get("nillable").Bool(),
		DefaultedOnCreate:  v.Get("defaultedOnCreate").Bool(),
		RelationshipName:   v.Get("relationshipName").String(),
		RestrictedPicklist: v.Get("restrictedPicklist").Bool(),
	}
	for _, r := range v.Get("referenceTo").Array() {
		f.ReferenceTo = append(f.ReferenceTo, r.String())
	}
	v.Get("picklistValues").ForEach(func(_, p gjson.Result) bool {
		e := schema.EnumEntry{
			Value:   p.Get("value").String(),
			Active:  p.Get("active").Bool(),
			Default: p.Get("defaultValue").Bool(),
		}
		if l := p.Get("label"); l.Exists() && l.Type != gjson.Null {
			label := l.String()
			e.Label = &label
		}
		f.PicklistValues = append(f.PicklistValues, e)
		return true
	})
	return f
}
