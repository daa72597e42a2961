// =============================================================================
// CAPPS Converter - Upload Transport
// =============================================================================
//
// Sends a finished document to the CAPPS bulk-upload API. This is a
// collaborator of the conversion core, not part of it: success or failure is
// reported back to the operator and never affects conversion correctness.
//
// PROTOCOL:
//   1. OAuth2 client-credentials token fetch (basic auth, scope "api")
//   2. Multipart POST of the document as "bulkUploadFile" (202 Accepted)
//   3. Bounded polling of the returned status link until "complete"
//
// The CAPPS endpoint runs a legacy TLS configuration; verification can be
// relaxed via configuration, with TLS 1.2 still enforced as the floor.
//
// =============================================================================

package uploader

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/storeops/capps-converter/internal/config"
)

// statusPollLimit bounds how long we wait for CAPPS to finish processing.
const (
	statusPollLimit    = 10
	statusPollInterval = 2 * time.Second
)

// Client uploads documents to CAPPS.
type Client struct {
	cfg  config.UploadSettings
	http *http.Client
	log  zerolog.Logger
}

// Receipt reports the outcome of an accepted upload.
type Receipt struct {
	SubmissionID string

	// Processed is true once CAPPS reported the submission complete. An
	// accepted-but-unconfirmed upload returns Processed=false with no error.
	Processed bool
}

// New creates an upload client from the transport settings.
func New(cfg config.UploadSettings, log zerolog.Logger) *Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		log: log,
	}
}

// Upload sends the document at path and waits (bounded) for processing.
func (c *Client) Upload(ctx context.Context, path string) (*Receipt, error) {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return nil, fmt.Errorf("upload credentials not configured (upload.client_id / upload.client_secret)")
	}

	token, err := c.fetchToken(ctx)
	if err != nil {
		return nil, err
	}

	return c.uploadFile(ctx, path, token)
}

// fetchToken performs the client-credentials grant.
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{
		"scope":      {"api"},
		"grant_type": {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token request returned %d: %s", resp.StatusCode, snippet)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("token response carried no access_token")
	}

	return parsed.AccessToken, nil
}

func (c *Client) uploadFile(ctx context.Context, path, token string) (*Receipt, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("bulkUploadFile", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.UploadURL, strings.NewReader(body.String()))
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("upload returned %d: %s", resp.StatusCode, snippet)
	}

	var parsed struct {
		Submission struct {
			SubmissionID string `json:"submissionId"`
		} `json:"submission"`
		Links struct {
			Href string `json:"href"`
		} `json:"links"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	receipt := &Receipt{SubmissionID: parsed.Submission.SubmissionID}
	c.log.Info().Str("submission_id", receipt.SubmissionID).Msg("upload accepted")

	if parsed.Links.Href != "" {
		receipt.Processed = c.pollStatus(ctx, parsed.Links.Href, token)
	}

	return receipt, nil
}

// pollStatus checks the submission status a bounded number of times. A
// submission still pending after the limit is not an error; CAPPS finishes
// asynchronously.
func (c *Client) pollStatus(ctx context.Context, statusURL, token string) bool {
	for i := 0; i < statusPollLimit; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(statusPollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
		if err != nil {
			return false
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.http.Do(req)
		if err != nil {
			c.log.Warn().Err(err).Msg("status check failed")
			return false
		}

		var parsed struct {
			Status string `json:"status"`
		}
		decodeErr := json.NewDecoder(resp.Body).Decode(&parsed)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK && decodeErr == nil && parsed.Status == "complete":
			return true
		case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted:
			continue
		default:
			c.log.Warn().Int("status", resp.StatusCode).Msg("status check returned error")
			return false
		}
	}
	return false
}
