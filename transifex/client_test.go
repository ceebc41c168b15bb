package transifex_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruntjs-updater/transifex-keyvaluejson/transifex"
)

var testCreds = transifex.Credentials{User: "fake-user", Pass: "fake-password"}

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	rtr := mux.NewRouter()
	rtr.HandleFunc("/api/2/project/{project}/resource/{resource}", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != testCreds.User || pass != testCreds.Pass {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}).Methods(http.MethodGet)

	srv := httptest.NewServer(rtr)
	t.Cleanup(srv.Close)

	return srv
}

func Test_Client_Get_Success(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"available_languages":[{"code":"en"}]}`)
	client := transifex.NewClient(srv.URL+"/api/2/", testCreds, srv.Client())

	obj, err := client.Get(context.Background(), "/project/p/resource/r?details")
	require.NoError(t, err)
	assert.Contains(t, obj, "available_languages")
}

func Test_Client_Get_SendsHeaders(t *testing.T) {
	var got http.Header

	rtr := mux.NewRouter()
	rtr.HandleFunc("/project/p/resource/r", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		fmt.Fprint(w, `{}`)
	})
	srv := httptest.NewServer(rtr)
	defer srv.Close()

	_, err := transifex.NewClient(srv.URL, testCreds, srv.Client()).Get(context.Background(), "/project/p/resource/r?details")
	require.NoError(t, err)

	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "no-cache", got.Get("Cache-Control"))
	assert.NotEmpty(t, got.Get("Authorization"))
}

func Test_Client_Get_Failed(t *testing.T) {
	testCases := map[string]struct {
		status      int
		body        string
		creds       transifex.Credentials
		kind        transifex.ErrorKind
		specificErr error
	}{
		"not found": {
			status:      http.StatusNotFound,
			creds:       testCreds,
			kind:        transifex.KindNotFound,
			specificErr: transifex.ErrNotFound,
		},
		"unauthorized": {
			status:      http.StatusOK,
			body:        `{}`,
			creds:       transifex.Credentials{User: "someone", Pass: "wrong"},
			kind:        transifex.KindUnauthorized,
			specificErr: transifex.ErrUnauthorized,
		},
		"server error": {
			status:      http.StatusInternalServerError,
			creds:       testCreds,
			kind:        transifex.KindUnexpected,
			specificErr: transifex.ErrUnexpectedStatus,
		},
		"invalid json": {
			status:      http.StatusOK,
			body:        `not json`,
			creds:       testCreds,
			kind:        transifex.KindMalformedResponse,
			specificErr: transifex.ErrMalformedResponse,
		},
		"json array instead of object": {
			status:      http.StatusOK,
			body:        `[1, 2]`,
			creds:       testCreds,
			kind:        transifex.KindMalformedResponse,
			specificErr: transifex.ErrMalformedResponse,
		},
	}

	for scenario, tc := range testCases {
		t.Run(scenario, func(t *testing.T) {
			srv := newTestServer(t, tc.status, tc.body)
			client := transifex.NewClient(srv.URL+"/api/2", tc.creds, srv.Client())

			_, err := client.Get(context.Background(), "/project/p/resource/r?details")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.specificErr)

			var transportErr *transifex.TransportError
			require.True(t, errors.As(err, &transportErr))
			assert.Equal(t, tc.kind, transportErr.Kind)
		})
	}
}

func Test_Client_Get_UnexpectedStatusCarriesCode(t *testing.T) {
	srv := newTestServer(t, http.StatusBadGateway, "")
	client := transifex.NewClient(srv.URL+"/api/2", testCreds, srv.Client())

	_, err := client.Get(context.Background(), "/project/p/resource/r")

	var transportErr *transifex.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusBadGateway, transportErr.Status)
	assert.Contains(t, err.Error(), "502")
}

func Test_Client_Get_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	_, err := transifex.NewClient(baseURL, testCreds, nil).Get(context.Background(), "/project/p/resource/r")
	require.Error(t, err)
	assert.ErrorIs(t, err, transifex.ErrNetwork)
}

func Test_Client_GetList(t *testing.T) {
	rtr := mux.NewRouter()
	rtr.HandleFunc("/project/p/resources/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"slug":"a"},{"slug":"b"}]`)
	})
	srv := httptest.NewServer(rtr)
	defer srv.Close()

	list, err := transifex.NewClient(srv.URL, testCreds, srv.Client()).GetList(context.Background(), "/project/p/resources/")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[1]["slug"])
}
