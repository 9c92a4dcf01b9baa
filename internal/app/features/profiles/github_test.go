package profiles_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/web-rebel/devlink/internal/app/features/profiles"
	"github.com/web-rebel/devlink/internal/testutil"
)

func githubHandler(t *testing.T, gh profiles.GithubClient) *profiles.Handler {
	t.Helper()
	// The GitHub route never touches the database.
	return profiles.NewHandler(nil, gh, zap.NewNop())
}

func TestHandleGithubRepos_ReturnsRepos(t *testing.T) {
	h := githubHandler(t, &fakeGithub{repos: []profiles.Repo{
		{Name: "devlink", HTMLURL: "https://github.com/ada/devlink"},
		{Name: "notes"},
	}})

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/api/profile/github/ada", nil), "username", "ada")
	rec := httptest.NewRecorder()
	h.HandleGithubRepos(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var body []profiles.Repo
	testutil.DecodeBody(t, rec, &body)
	if len(body) != 2 || body[0].Name != "devlink" {
		t.Errorf("repos: %+v", body)
	}
}

func TestHandleGithubRepos_UnknownUser(t *testing.T) {
	h := githubHandler(t, &fakeGithub{err: profiles.ErrGithubUserNotFound})

	req := testutil.WithChiURLParam(httptest.NewRequest("GET", "/api/profile/github/nobody", nil), "username", "nobody")
	rec := httptest.NewRecorder()
	h.HandleGithubRepos(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d", rec.Code)
	}
	var body struct {
		Msg string `json:"msg"`
	}
	testutil.DecodeBody(t, rec, &body)
	if body.Msg != "No Github profile found" {
		t.Errorf("msg: %q", body.Msg)
	}
}

func TestGithubClient_AgainstStubServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/ada/repos":
			if got := r.URL.Query().Get("per_page"); got != "5" {
				t.Errorf("per_page: %q", got)
			}
			json.NewEncoder(w).Encode([]profiles.Repo{{Name: "devlink", Stargazers: 42}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := profiles.NewGithubClient(srv.URL, "")

	repos, err := client.LatestRepos(context.Background(), "ada", 5)
	if err != nil {
		t.Fatalf("LatestRepos: %v", err)
	}
	if len(repos) != 1 || repos[0].Stargazers != 42 {
		t.Errorf("repos: %+v", repos)
	}

	if _, err := client.LatestRepos(context.Background(), "nobody", 5); err != profiles.ErrGithubUserNotFound {
		t.Errorf("missing user: got %v", err)
	}
}
