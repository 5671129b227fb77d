package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"trendscope/pkg/retry"
)

// Uploader pushes report files into a backup repository through the contents
// API. Upload failures are meant to be logged by the caller, never fatal.
type Uploader struct {
	apiBase    string
	token      string
	owner      string
	repo       string
	httpClient *http.Client
	policy     retry.Policy
}

func NewUploader(token, owner, repo string, timeout time.Duration, retries int) (*Uploader, error) {
	if token == "" {
		return nil, fmt.Errorf("github upload requires a token")
	}
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("github upload requires a repository owner and name")
	}

	return &Uploader{
		apiBase:    defaultAPIBase,
		token:      token,
		owner:      owner,
		repo:       repo,
		httpClient: &http.Client{Timeout: timeout},
		policy: retry.Policy{
			Attempts:  retries,
			BaseDelay: time.Second,
			Retryable: retry.RetryableHTTP,
		},
	}, nil
}

// UploadReport creates or updates repoPath with content and returns the file
// URL on the backup repository.
func (u *Uploader) UploadReport(ctx context.Context, repoPath, content, message string) (string, error) {
	sha, err := u.fileSHA(ctx, repoPath)
	if err != nil {
		return "", err
	}
	if sha != "" {
		slog.Info("backup file exists, updating", "path", repoPath)
	}

	body := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString([]byte(content)),
		"branch":  "main",
	}
	if sha != "" {
		body["sha"] = sha
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", u.apiBase, u.owner, u.repo, repoPath)

	var htmlURL string
	err = u.policy.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		u.setHeaders(req)

		resp, err := u.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			io.Copy(io.Discard, resp.Body)
			return &retry.StatusError{StatusCode: resp.StatusCode, URL: url}
		}

		var result struct {
			Content struct {
				HTMLURL string `json:"html_url"`
			} `json:"content"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return err
		}
		htmlURL = result.Content.HTMLURL
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", repoPath, err)
	}

	return htmlURL, nil
}

// fileSHA returns the blob SHA of an existing file, or "" when the file does
// not exist yet.
func (u *Uploader) fileSHA(ctx context.Context, repoPath string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", u.apiBase, u.owner, u.repo, repoPath)

	var sha string
	err := u.policy.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		u.setHeaders(req)

		resp, err := u.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			sha = ""
			return nil
		}
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return &retry.StatusError{StatusCode: resp.StatusCode, URL: url}
		}

		var result struct {
			SHA string `json:"sha"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return err
		}
		sha = result.SHA
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("checking %s: %w", repoPath, err)
	}
	return sha, nil
}

func (u *Uploader) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+u.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")
}
