package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type capturedRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
	Auth      string
}

// newTestClient points a client at a stub GraphQL endpoint.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(context.Background(), "test-token", "octocat")
	c.endpoint = srv.URL
	return c, srv
}

func decodeRequest(t *testing.T, r *http.Request) capturedRequest {
	t.Helper()
	var req capturedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	req.Auth = r.Header.Get("Authorization")
	return req
}

func TestFollowers(t *testing.T) {
	var got capturedRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = decodeRequest(t, r)
		w.Write([]byte(`{"data":{"user":{"followers":{"totalCount":321}}}}`))
	})

	n, err := c.Followers(context.Background())
	if err != nil {
		t.Fatalf("Followers() error = %v", err)
	}
	if n != 321 {
		t.Errorf("Followers() = %d, want 321", n)
	}
	if got.Auth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", got.Auth)
	}
	if got.Variables["login"] != "octocat" {
		t.Errorf("login variable = %v, want octocat", got.Variables["login"])
	}
	if c.Counter().Count(OpFollowers) != 1 {
		t.Errorf("counter[%s] = %d, want 1", OpFollowers, c.Counter().Count(OpFollowers))
	}
}

func TestUserCreated(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"user":{"id":"MDQ6VXNlcjE=","createdAt":"2016-03-01T12:30:00Z"}}}`))
	})

	u, err := c.UserCreated(context.Background())
	if err != nil {
		t.Fatalf("UserCreated() error = %v", err)
	}
	if u.ID != "MDQ6VXNlcjE=" {
		t.Errorf("ID = %q", u.ID)
	}
	want := time.Date(2016, time.March, 1, 12, 30, 0, 0, time.UTC)
	if !u.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", u.CreatedAt, want)
	}
}

func TestContributionsSendsWindow(t *testing.T) {
	var got capturedRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = decodeRequest(t, r)
		w.Write([]byte(`{"data":{"user":{"contributionsCollection":{"contributionCalendar":{"totalContributions":2048}}}}}`))
	})

	from := time.Date(2025, time.August, 25, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	n, err := c.Contributions(context.Background(), from, to)
	if err != nil {
		t.Fatalf("Contributions() error = %v", err)
	}
	if n != 2048 {
		t.Errorf("Contributions() = %d, want 2048", n)
	}
	if got.Variables["start_date"] != "2025-08-25T00:00:00Z" {
		t.Errorf("start_date = %v", got.Variables["start_date"])
	}
	if got.Variables["end_date"] != "2026-08-25T00:00:00Z" {
		t.Errorf("end_date = %v", got.Variables["end_date"])
	}
}

func TestRequestErrorOnNonSuccess(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	})

	_, err := c.Followers(context.Background())
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *RequestError", err)
	}
	if reqErr.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", reqErr.Status)
	}
	if reqErr.Op != OpFollowers {
		t.Errorf("Op = %q, want %q", reqErr.Op, OpFollowers)
	}
	if !strings.Contains(reqErr.Body, "upstream unavailable") {
		t.Errorf("Body = %q, want response body", reqErr.Body)
	}
	// failed calls still count
	if c.Counter().Count(OpFollowers) != 1 {
		t.Errorf("counter[%s] = %d, want 1", OpFollowers, c.Counter().Count(OpFollowers))
	}
}

func TestGraphQLErrorsSurface(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"Could not resolve to a User"}]}`))
	})

	_, err := c.UserCreated(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Could not resolve to a User") {
		t.Errorf("error = %v, want GraphQL error message", err)
	}
}

func TestRepoCount(t *testing.T) {
	var got capturedRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = decodeRequest(t, r)
		w.Write([]byte(`{"data":{"user":{"repositories":{"totalCount":42,"edges":[],"pageInfo":{"endCursor":"","hasNextPage":false}}}}}`))
	})

	n, err := c.RepoCount(context.Background(), []Affiliation{AffiliationOwner})
	if err != nil {
		t.Fatalf("RepoCount() error = %v", err)
	}
	if n != 42 {
		t.Errorf("RepoCount() = %d, want 42", n)
	}
	affs, ok := got.Variables["owner_affiliation"].([]any)
	if !ok || len(affs) != 1 || affs[0] != "OWNER" {
		t.Errorf("owner_affiliation = %v, want [OWNER]", got.Variables["owner_affiliation"])
	}
}

func TestStarCountFollowsCursors(t *testing.T) {
	pages := map[string]string{
		"": `{"data":{"user":{"repositories":{"totalCount":3,
			"edges":[{"node":{"nameWithOwner":"octocat/a","stargazers":{"totalCount":100}}},
			         {"node":{"nameWithOwner":"octocat/b","stargazers":{"totalCount":20}}}],
			"pageInfo":{"endCursor":"CURSOR1","hasNextPage":true}}}}}`,
		"CURSOR1": `{"data":{"user":{"repositories":{"totalCount":3,
			"edges":[{"node":{"nameWithOwner":"octocat/c","stargazers":{"totalCount":3}}}],
			"pageInfo":{"endCursor":"","hasNextPage":false}}}}}`,
	}

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		cursor, _ := req.Variables["cursor"].(string)
		page, ok := pages[cursor]
		if !ok {
			t.Errorf("unexpected cursor %q", cursor)
			http.Error(w, "bad cursor", http.StatusBadRequest)
			return
		}
		w.Write([]byte(page))
	})

	n, err := c.StarCount(context.Background(), []Affiliation{AffiliationOwner})
	if err != nil {
		t.Fatalf("StarCount() error = %v", err)
	}
	if n != 123 {
		t.Errorf("StarCount() = %d, want 123", n)
	}
	if got := c.Counter().Count(OpRepositories); got != 2 {
		t.Errorf("counter[%s] = %d, want 2", OpRepositories, got)
	}
}

func TestCounter(t *testing.T) {
	c := NewCounter()
	c.Inc("a")
	c.Inc("a")
	c.Inc("b")

	if got := c.Count("a"); got != 2 {
		t.Errorf("Count(a) = %d, want 2", got)
	}
	if got := c.Count("missing"); got != 0 {
		t.Errorf("Count(missing) = %d, want 0", got)
	}
	if got := c.Total(); got != 3 {
		t.Errorf("Total() = %d, want 3", got)
	}

	snap := c.Snapshot()
	snap["a"] = 99
	if c.Count("a") != 2 {
		t.Error("Snapshot() shares state with the counter")
	}

	ops := c.Operations()
	if len(ops) != 2 || ops[0] != "a" || ops[1] != "b" {
		t.Errorf("Operations() = %v, want [a b]", ops)
	}
}
