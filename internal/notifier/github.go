package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"LeapsRadar/internal/model"
)

// GitHubNotifier files an issue on a repository for each alert batch. The
// repo's watchers get the email notification for free.
type GitHubNotifier struct {
	Repo   string // "owner/name"
	Token  string
	Client *http.Client
}

// NewGitHubNotifier creates a notifier with optional proxy support.
func NewGitHubNotifier(repo, token, proxyURL string) *GitHubNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &GitHubNotifier{
		Repo:  repo,
		Token: token,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (g *GitHubNotifier) Name() string { return "github" }

// Deliver creates one issue carrying the full markdown report.
func (g *GitHubNotifier) Deliver(ctx context.Context, report *model.ScanReport) error {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/issues", g.Repo)
	payload := map[string]interface{}{
		"title":  FormatIssueTitle(report),
		"body":   FormatMarkdownBody(report),
		"labels": []string{"leaps-alert"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal issue: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("create issue: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil && result.HTMLURL != "" {
		log.Printf("[INFO] github issue created: %s", result.HTMLURL)
	}
	return nil
}
