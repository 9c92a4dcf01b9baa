package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/web-rebel/devlink/internal/app/system/httpjson"
)

// Repo is the subset of a GitHub repository shown on a profile page.
type Repo struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stargazers  int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// GithubClient fetches a user's public repositories.
type GithubClient interface {
	LatestRepos(ctx context.Context, username string, count int) ([]Repo, error)
}

// ErrGithubUserNotFound reports a username GitHub does not know.
var ErrGithubUserNotFound = fmt.Errorf("github user not found")

// githubAPI talks to the real GitHub REST API.
type githubAPI struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewGithubClient builds a GithubClient against baseURL (normally
// https://api.github.com). token may be empty; unauthenticated requests get
// GitHub's lower rate limit.
func NewGithubClient(baseURL, token string) GithubClient {
	return &githubAPI{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *githubAPI) LatestRepos(ctx context.Context, username string, count int) ([]Repo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=created:asc",
		g.baseURL, url.PathEscape(username), count)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrGithubUserNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("github responded %d", resp.StatusCode)
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// HandleGithubRepos handles GET /api/profile/github/{username}: the latest
// five public repos, or 404 when GitHub has no such user.
func (h *Handler) HandleGithubRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	repos, err := h.Github.LatestRepos(ctx, username, 5)
	if err != nil {
		if err == ErrGithubUserNotFound {
			httpjson.Msg(w, http.StatusNotFound, "No Github profile found")
			return
		}
		h.Log.Error("github fetch failed", zap.Error(err), zap.String("username", username))
		httpjson.ServerError(w)
		return
	}
	if repos == nil {
		repos = []Repo{}
	}

	httpjson.Write(w, http.StatusOK, repos)
}
