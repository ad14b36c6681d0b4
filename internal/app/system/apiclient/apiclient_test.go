package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/revenuedash/internal/app/system/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorded struct {
	path    string
	session string
}

func serve(t *testing.T, status int, body string) (*apiclient.Client, *recorded) {
	t.Helper()
	seen := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.path = r.URL.Path
		if ck, err := r.Cookie("revenuedash-session"); err == nil {
			seen.session = ck.Value
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL+"/", nil, zap.NewNop()), seen
}

func TestListProperties_Array(t *testing.T) {
	c, seen := serve(t, http.StatusOK, `[{"id":"prop-001","name":"Beach House Alpha"},{"id":"prop-002","name":"<b>City</b> Apartment"}]`)

	list, err := c.ListProperties(context.Background(), []*http.Cookie{{Name: "revenuedash-session", Value: "abc"}})
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "prop-001", list[0].PropertyID)
	assert.Equal(t, "City Apartment", list[1].Name)

	assert.Equal(t, apiclient.PropertiesPath, seen.path)
	assert.Equal(t, "abc", seen.session)
}

func TestListProperties_EmptyArray(t *testing.T) {
	c, _ := serve(t, http.StatusOK, `[]`)

	list, err := c.ListProperties(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListProperties_Unavailable(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"object", http.StatusOK, `{"id":"prop-001"}`},
		{"null", http.StatusOK, `null`},
		{"empty body", http.StatusOK, ``},
		{"garbage", http.StatusOK, `[{"id":`},
		{"missing id", http.StatusOK, `[{"name":"No Id"}]`},
		{"markup in id", http.StatusOK, `[{"id":"prop-001","name":"A"},{"id":"<img src=x>","name":"B"}]`},
		{"server error", http.StatusInternalServerError, `[]`},
		{"unauthorized", http.StatusUnauthorized, `{"error":"unauthorized"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := serve(t, tc.status, tc.body)

			_, err := c.ListProperties(context.Background(), nil)
			assert.ErrorIs(t, err, apiclient.ErrUnavailable)
		})
	}
}

func TestListProperties_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := apiclient.New(url, nil, zap.NewNop()).ListProperties(context.Background(), nil)
	assert.ErrorIs(t, err, apiclient.ErrUnavailable)
}

func TestSource(t *testing.T) {
	c, _ := serve(t, http.StatusOK, `[{"id":"prop-004","name":"Lakeside Cottage"}]`)

	list, err := c.Source(nil).ListProperties(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Lakeside Cottage", list[0].Name)
}
