// Package reelclient is the HTTP implementation of session.Collaborator.
// It talks to the reel API's JSON endpoints and rebuilds typed errors from
// the structured error codes the server puts in its error bodies.
package reelclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/reelworks/reel-api/api/types"
	"github.com/reelworks/reel-api/internal/models"
	"github.com/reelworks/reel-api/internal/session"
	apperrors "github.com/reelworks/reel-api/pkg/errors"
)

// Client handles communication with the reel API
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Config holds configuration for the reel API client
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// NewClient creates a new reel API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "ReelEditSession/1.0"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
	}
}

var _ session.Collaborator = (*Client)(nil)

// doJSON executes a request with an optional JSON body and decodes the
// response into result. Non-2xx responses become AppErrors carrying the
// server's error code when the body has one.
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	fullURL := fmt.Sprintf("%s/api/v1%s", c.baseURL, path)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encoding request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "creating request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Transport(fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp, method, path)
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return apperrors.Transport(fmt.Sprintf("decoding %s %s response", method, path), err)
	}
	return nil
}

// decodeError rebuilds a typed error from an error response body. When the
// body carries no structured code the HTTP status decides the code.
func (c *Client) decodeError(resp *http.Response, method, path string) error {
	var errResp types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Code != "" {
		appErr := apperrors.New(apperrors.ErrorCode(errResp.Code), errResp.Message)
		appErr.HTTPCode = resp.StatusCode
		return appErr
	}

	log.Printf("[ERROR] Reel API returned status %d for %s %s", resp.StatusCode, method, path)
	message := errResp.Message
	if message == "" {
		message = fmt.Sprintf("API returned status %d", resp.StatusCode)
	}
	appErr := apperrors.New(apperrors.CodeFromHTTP(resp.StatusCode), message)
	appErr.HTTPCode = resp.StatusCode
	return appErr
}

// FetchReel returns the current state of a reel
func (c *Client) FetchReel(ctx context.Context, reelID string) (*models.Reel, error) {
	var resp types.ReelResponse
	if err := c.doJSON(ctx, http.MethodGet, "/reels/"+reelID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reel, nil
}

// PatchMetadata commits a partial metadata update against an expected version
func (c *Client) PatchMetadata(ctx context.Context, reelID string, patch models.MetadataPatch, expectedVersion int, changeNote string) (*models.Reel, error) {
	req := types.UpdateMetadataRequest{
		MetadataPatch:   patch,
		ExpectedVersion: expectedVersion,
		ChangeNote:      changeNote,
	}

	var resp types.ReelResponse
	if err := c.doJSON(ctx, http.MethodPatch, "/reels/"+reelID, req, &resp); err != nil {
		return nil, err
	}
	return resp.Reel, nil
}

// FetchVersions returns the reel's revision history
func (c *Client) FetchVersions(ctx context.Context, reelID string) ([]models.ReelVersion, error) {
	var resp types.VersionsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/reels/"+reelID+"/versions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Versions, nil
}

// RollbackToVersion restores the reel to a prior version's state
func (c *Client) RollbackToVersion(ctx context.Context, reelID, versionID string) (*models.Reel, error) {
	path := fmt.Sprintf("/reels/%s/versions/%s/rollback", reelID, versionID)

	var resp types.ReelResponse
	if err := c.doJSON(ctx, http.MethodPost, path, types.RollbackRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Reel, nil
}

// StartReprocess enqueues a reprocess job and returns its ID
func (c *Client) StartReprocess(ctx context.Context, reelID string) (string, error) {
	var resp types.ReprocessAcceptedResponse
	if err := c.doJSON(ctx, http.MethodPost, "/reels/"+reelID+"/reprocess", nil, &resp); err != nil {
		return "", err
	}
	return resp.JobID, nil
}

// FetchReprocessStatus returns the polling record for a reprocess job
func (c *Client) FetchReprocessStatus(ctx context.Context, reelID, jobID string) (*models.ReprocessStatus, error) {
	path := fmt.Sprintf("/reels/%s/reprocess/%s", reelID, jobID)

	var resp types.ReprocessStatusResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Job, nil
}

// FetchTranscript returns the stored transcript for a reel
func (c *Client) FetchTranscript(ctx context.Context, reelID string) (*models.Transcript, error) {
	var resp types.TranscriptResponse
	if err := c.doJSON(ctx, http.MethodGet, "/reels/"+reelID+"/transcript", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transcript, nil
}

// ReplaceTranscript swaps in a full replacement segment list
func (c *Client) ReplaceTranscript(ctx context.Context, reelID string, segments models.SegmentList, changeNote string) (*models.Transcript, error) {
	req := types.ReplaceTranscriptRequest{
		Segments:   segments,
		ChangeNote: changeNote,
	}

	var resp types.TranscriptResponse
	if err := c.doJSON(ctx, http.MethodPut, "/reels/"+reelID+"/transcript", req, &resp); err != nil {
		return nil, err
	}
	return resp.Transcript, nil
}
