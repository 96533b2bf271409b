package load

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/forcegen/schema"
)

const contactDescribe = `{
  "name": "Contact",
  "label": "Contact",
  "custom": false,
  "fields": [
    {"name": "Id", "type": "id", "nillable": false, "referenceTo": []},
    {"name": "AccountId", "type": "reference", "nillable": true, "referenceTo": ["Account"], "relationshipName": "Account"},
    {"name": "MailingAddress", "type": "address", "referenceTo": []},
    {"name": "Level__c", "type": "picklist", "custom": true, "restrictedPicklist": true, "referenceTo": [],
     "picklistValues": [
       {"value": "1", "label": null, "active": true, "defaultValue": false},
       {"value": "Gold", "label": "Gold tier", "active": true, "defaultValue": true}
     ]}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	auth := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`[{"message":"Session expired or invalid","errorCode":"INVALID_SESSION_ID"}]`))
				return
			}
			h(w, r)
		}
	}
	mux.HandleFunc("/services/data/v61.0/sobjects", auth(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"sobjects":[{"name":"Account"},{"name":"Contact"}]}`))
	}))
	mux.HandleFunc("/services/data/v61.0/sobjects/Contact/describe", auth(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(contactDescribe))
	}))
	mux.HandleFunc("/services/oauth2/userinfo", auth(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"user_id":"005xx","organization_id":"00Dxx","preferred_username":"admin@acme.test"}`))
	}))
	mux.HandleFunc("/services/data/v61.0/query", auth(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SELECT Name FROM Organization LIMIT 1", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"records":[{"Name":"Acme, Inc."}]}`))
	}))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRESTSource(t *testing.T) {
	testLogger(t)
	ctx := context.Background()
	srv := newTestServer(t)

	src, err := NewRESTSource(srv.URL+"/", "secret")
	require.NoError(t, err)
	src.WithHTTPClient(srv.Client())

	t.Run("object names", func(t *testing.T) {
		names, err := src.ObjectNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Account", "Contact"}, names)
	})

	t.Run("describe", func(t *testing.T) {
		objects, err := src.Describe(ctx, []string{"Contact"})
		require.NoError(t, err)
		require.Len(t, objects, 1)
		o := objects[0]
		assert.Equal(t, "Contact", o.Name)
		require.Len(t, o.Fields, 4)

		ref := o.Field("AccountId")
		assert.Equal(t, schema.TypeReference, ref.Type)
		assert.Equal(t, []string{"Account"}, ref.ReferenceTo)
		assert.Equal(t, "Account", ref.RelationshipName)
		assert.True(t, ref.Nillable)

		assert.Equal(t, schema.TypeString, o.Field("MailingAddress").Type)

		level := o.Field("Level__c")
		assert.True(t, level.IsRestrictedEnum())
		require.Len(t, level.PicklistValues, 2)
		assert.Nil(t, level.PicklistValues[0].Label)
		require.NotNil(t, level.PicklistValues[1].Label)
		assert.Equal(t, "Gold tier", *level.PicklistValues[1].Label)
		assert.True(t, level.PicklistValues[1].Default)
	})

	t.Run("describe unknown object", func(t *testing.T) {
		_, err := src.Describe(ctx, []string{"Lead"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("caller", func(t *testing.T) {
		c, err := src.Caller(ctx)
		require.NoError(t, err)
		assert.Equal(t, &Caller{
			UserID:           "005xx",
			UserName:         "admin@acme.test",
			OrganizationID:   "00Dxx",
			OrganizationName: "Acme, Inc.",
		}, c)
	})

	t.Run("service errors are reported", func(t *testing.T) {
		bad, err := NewRESTSource(srv.URL, "wrong")
		require.NoError(t, err)
		bad.WithHTTPClient(srv.Client())
		_, err = bad.ObjectNames(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Session expired or invalid")
	})

	t.Run("api version", func(t *testing.T) {
		other, err := NewRESTSource(srv.URL, "secret")
		require.NoError(t, err)
		other.WithHTTPClient(srv.Client()).WithAPIVersion("v58.0")
		_, err = other.ObjectNames(ctx)
		require.Error(t, err)
	})
}

func TestNewRESTSource(t *testing.T) {
	_, err := NewRESTSource("login.example.com", "t")
	require.Error(t, err)
}

func TestParseDescribe(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		_, err := ParseDescribe([]byte(`{"name":`))
		require.Error(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := ParseDescribe([]byte(`{"fields":[]}`))
		require.Error(t, err)
	})

	t.Run("reference without targets", func(t *testing.T) {
		_, err := ParseDescribe([]byte(`{"name":"Case","fields":[{"name":"OwnerId","type":"reference","referenceTo":[]}]}`))
		require.Error(t, err)
	})
}
