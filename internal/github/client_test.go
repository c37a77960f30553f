package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	apperrors "github.com/KOFI-GYIMAH/github-connector/pkg/errors"
	gogithub "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultOpts = ListOptions{State: "open", Page: 1, PerPage: 30}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClientWithBaseURL("test-token", server.URL)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-token")

	assert.NotNil(t, client)
	assert.NotNil(t, client.requester)
	assert.NotNil(t, client.rateLimiter)

	_, ok := client.RateLimit()
	assert.False(t, ok, "nothing observed before the first call")
}

func TestNewClientWithBaseURL_Invalid(t *testing.T) {
	_, err := NewClientWithBaseURL("test-token", "://bad")
	assert.Error(t, err)
}

func TestClient_ListIssues(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/repos/testowner/testrepo/issues", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		assert.Equal(t, "30", r.URL.Query().Get("per_page"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"number":1,"title":"first","state":"open"},{"number":2,"title":"second","state":"open"}]`))
	})

	raw, err := client.ListIssues(context.Background(), "testowner", "testrepo", defaultOpts)
	require.NoError(t, err)
	assert.Equal(t, `[{"number":1,"title":"first","state":"open"},{"number":2,"title":"second","state":"open"}]`, string(raw))
}

func TestClient_ListIssues_BodyUnchanged(t *testing.T) {
	upstream := `[{"number":1,"title":"a","state":"open","body":null,"milestone":null,"sub_issues_summary":{"total":0},"state_reason":null}]`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(upstream))
	})

	raw, err := client.ListIssues(context.Background(), "testowner", "testrepo", defaultOpts)
	require.NoError(t, err)
	assert.Equal(t, upstream, string(raw), "nulls, unmodelled keys and key order are kept")
}

func TestClient_ListBranches(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/testowner/testrepo/branches", r.URL.Path)
		assert.False(t, r.URL.Query().Has("state"))
		assert.Equal(t, "30", r.URL.Query().Get("per_page"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"main","protected":true},{"name":"dev","protected":false}]`))
	})

	raw, err := client.ListBranches(context.Background(), "testowner", "testrepo", defaultOpts)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"main","protected":true},{"name":"dev","protected":false}]`, string(raw))
}

func TestClient_ListPullRequests(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/testowner/testrepo/pulls", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		assert.Equal(t, "30", r.URL.Query().Get("per_page"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"number":12,"title":"Add feature","draft":false,"auto_merge":null}]`))
	})

	raw, err := client.ListPullRequests(context.Background(), "testowner", "testrepo", defaultOpts)
	require.NoError(t, err)
	assert.Equal(t, `[{"number":12,"title":"Add feature","draft":false,"auto_merge":null}]`, string(raw))
}

func TestClient_GetIssueAndPullRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/repos/testowner/testrepo/issues/7":
			w.Write([]byte(`{"number":7,"title":"bug"}`))
		case "/repos/testowner/testrepo/pulls/9":
			w.Write([]byte(`{"number":9,"title":"fix"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not Found","documentation_url":"https://docs.github.com/rest"}`))
		}
	})

	issue, err := client.GetIssue(context.Background(), "testowner", "testrepo", 7)
	require.NoError(t, err)
	assert.Equal(t, `{"number":7,"title":"bug"}`, string(issue))

	pr, err := client.GetPullRequest(context.Background(), "testowner", "testrepo", 9)
	require.NoError(t, err)
	assert.Equal(t, `{"number":9,"title":"fix"}`, string(pr))

	_, err = client.GetIssue(context.Background(), "testowner", "testrepo", 8)
	require.Error(t, err)
	assert.True(t, apperrors.IsReference(err, apperrors.RefGitHubAPI))
	assert.Equal(t, "Not Found", apperrors.Message(err))
}

func TestClient_EmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	raw, err := client.ListBranches(context.Background(), "testowner", "testrepo", defaultOpts)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestClient_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse func(w http.ResponseWriter, r *http.Request)
		expectedRef    string
		expectedMsg    string
	}{
		{
			name: "server error",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"message":"Server Error"}`))
			},
			expectedRef: apperrors.RefGitHubAPI,
			expectedMsg: "Server Error",
		},
		{
			name: "bad credentials",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"Bad credentials","documentation_url":"https://docs.github.com/rest"}`))
			},
			expectedRef: apperrors.RefGitHubAPI,
			expectedMsg: "Bad credentials",
		},
		{
			name: "no error document",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(`<html>bad gateway</html>`))
			},
			expectedRef: apperrors.RefGitHubAPI,
			expectedMsg: "502 Bad Gateway",
		},
		{
			name: "rate limited",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-RateLimit-Limit", "60")
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"message":"API rate limit exceeded for 127.0.0.1."}`))
			},
			expectedRef: apperrors.RefGitHubRateLimited,
			expectedMsg: "API rate limit exceeded for 127.0.0.1.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				tt.serverResponse(w, r)
			})

			raw, err := client.ListIssues(context.Background(), "testowner", "testrepo", defaultOpts)
			require.Error(t, err)
			assert.Nil(t, raw)
			assert.Equal(t, 1, calls, "upstream failures are never retried")
			assert.True(t, apperrors.IsReference(err, tt.expectedRef))
			assert.Equal(t, tt.expectedMsg, apperrors.Message(err))
		})
	}
}

func TestClient_RateLimit(t *testing.T) {
	reset := time.Now().Add(time.Hour).Unix()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Remaining", "4321")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
		w.Write([]byte(`[]`))
	})

	_, err := client.ListBranches(context.Background(), "testowner", "testrepo", defaultOpts)
	require.NoError(t, err)

	status, ok := client.RateLimit()
	require.True(t, ok)
	assert.Equal(t, 4321, status.Remaining)
	assert.Equal(t, 5000, status.Limit)
	assert.Equal(t, reset, status.Reset.Unix())
}

// * failingRequester builds real requests but fails every Do
type failingRequester struct {
	*gogithub.Client
	err  error
	urls []string
}

func (f *failingRequester) Do(ctx context.Context, req *http.Request, v any) (*gogithub.Response, error) {
	f.urls = append(f.urls, req.URL.String())
	return nil, f.err
}

func TestClient_TransportErrorVerbatim(t *testing.T) {
	requester := &failingRequester{Client: gogithub.NewClient(nil), err: errors.New("rate limited")}
	client := NewClientWithRequester(requester)

	_, err := client.ListIssues(context.Background(), "o", "r", defaultOpts)
	require.Error(t, err)
	assert.Equal(t, "rate limited", apperrors.Message(err))
	assert.Equal(t, []string{"https://api.github.com/repos/o/r/issues?page=1&per_page=30&state=open"}, requester.urls)

	_, ok := client.RateLimit()
	assert.False(t, ok)
}
