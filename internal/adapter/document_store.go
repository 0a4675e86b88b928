package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/Ivanblancs/weave-sync/internal/config"
	"github.com/Ivanblancs/weave-sync/internal/logger"
)

type documentStore struct {
	client *resty.Client
	logger *logger.Logger
}

// NewDocumentStore builds the HTTP adapter for the authoritative document
// backend. Documents are addressed as /api/documents/{collection}/{id}; a
// merge upsert is a PATCH with merge=true in the query string.
func NewDocumentStore(cfg config.Remote, log *logger.Logger) DocumentStore {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	if cfg.APIKey != "" {
		cli.SetAuthToken(cfg.APIKey)
	}

	return &documentStore{client: cli, logger: log}
}

func (d *documentStore) Upsert(ctx context.Context, collection, id string, payload map[string]any, merge bool) error {
	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("merge", strconv.FormatBool(merge)).
		SetBody(payload).
		Patch(fmt.Sprintf("/api/documents/%s/%s", collection, id))
	if err != nil {
		return fmt.Errorf("upsert request %s/%s: %w", collection, id, errors.Join(ErrRemoteWrite, err))
	}

	return d.mapHTTPError(resp, collection, id)
}

func (d *documentStore) mapHTTPError(resp *resty.Response, collection, id string) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	d.logger.Error().
		Str("func", "documentStore.Upsert").
		Str("collection", collection).
		Str("id", id).
		Int("status", resp.StatusCode()).
		Str("body", body).
		Msg("document store rejected upsert")

	return fmt.Errorf("upsert %s/%s: status %d: %w", collection, id, resp.StatusCode(), ErrRemoteWrite)
}
