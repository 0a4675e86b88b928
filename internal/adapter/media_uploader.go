package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/Ivanblancs/weave-sync/internal/config"
	"github.com/Ivanblancs/weave-sync/internal/logger"
	"github.com/Ivanblancs/weave-sync/models"
)

// uploadResponse is the slice of the media service reply we care about.
// Success is indicated solely by the presence of secure_url.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

type mediaUploader struct {
	client       *resty.Client
	cloudName    string
	uploadPreset string
	logger       *logger.Logger
}

// NewMediaUploader builds the unsigned-upload adapter for the media hosting
// service. The per-media-type endpoint is {base}/{cloud_name}/{media}/upload.
func NewMediaUploader(cfg config.Uploader, log *logger.Logger) MediaUploader {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &mediaUploader{
		client:       cli,
		cloudName:    cfg.CloudName,
		uploadPreset: cfg.UploadPreset,
		logger:       log,
	}
}

func (u *mediaUploader) Upload(ctx context.Context, ref models.FileRef, media models.MediaType) (string, error) {
	content, err := refContent(ref)
	if err != nil {
		return "", err
	}

	name := ref.Name
	if name == "" {
		name = "upload"
	}

	resp, err := u.client.R().
		SetContext(ctx).
		SetFileReader("file", name, bytes.NewReader(content)).
		SetFormData(map[string]string{"upload_preset": u.uploadPreset}).
		Post(fmt.Sprintf("/%s/%s/upload", u.cloudName, media))
	if err != nil {
		return "", fmt.Errorf("upload request: %w", errors.Join(ErrUploadFailed, err))
	}

	var body uploadResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		u.logger.Err(err).
			Str("func", "mediaUploader.Upload").
			Int("status", resp.StatusCode()).
			Msg("media service returned unparsable response")
		return "", fmt.Errorf("decode upload response: %w", errors.Join(ErrUploadFailed, err))
	}

	// Absence of secure_url is a failure regardless of HTTP status.
	if body.SecureURL == "" {
		u.logger.Error().
			Str("func", "mediaUploader.Upload").
			Int("status", resp.StatusCode()).
			Str("media", string(media)).
			Msg("media service returned no secure_url")
		return "", fmt.Errorf("%s upload returned no secure_url: %w", media, ErrUploadFailed)
	}

	return body.SecureURL, nil
}

func refContent(ref models.FileRef) ([]byte, error) {
	if len(ref.Data) > 0 {
		return ref.Data, nil
	}
	if ref.Path != "" {
		content, err := os.ReadFile(ref.Path)
		if err != nil {
			return nil, fmt.Errorf("read file reference %q: %w", ref.Path, err)
		}
		return content, nil
	}

	return nil, ErrEmptyFileRef
}
