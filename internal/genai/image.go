package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"adworks/internal/campaign/domain"
)

// ImageGenerator produces one image reference from a prompt at a given size.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, size string) (string, error)
}

// Image sizes requested per deliverable shape.
const (
	ImageSizeLandscape = "1536x1024"
	ImageSizePortrait  = "1024x1536"
	ImageSizeSquare    = "1024x1024"
)

// ImageSizeForType chooses the rendered aspect for a deliverable type:
// landscape for film and large-format print, portrait for vertical video,
// square otherwise.
func ImageSizeForType(deliverableType domain.DeliverableType) string {
	switch deliverableType {
	case domain.DeliverableTypeVideo, domain.DeliverableTypePrintAd, domain.DeliverableTypeBillboard:
		return ImageSizeLandscape
	case domain.DeliverableTypeSocialVideo:
		return ImageSizePortrait
	default:
		return ImageSizeSquare
	}
}

// ImageClientConfig configures the generative-image endpoint and HTTP behavior.
type ImageClientConfig struct {
	ImagesURL  string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

type imageClient struct {
	cfg ImageClientConfig
}

// NewImageClient builds a generative-image adapter.
func NewImageClient(cfg ImageClientConfig) ImageGenerator {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.ImagesURL) == "" {
		cfg.ImagesURL = "https://api.openai.com/v1/images/generations"
	}
	return &imageClient{cfg: cfg}
}

func (c *imageClient) GenerateImage(ctx context.Context, prompt, size string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("prompt is required")
	}
	if strings.TrimSpace(size) == "" {
		size = ImageSizeSquare
	}

	body := map[string]any{
		"prompt": prompt,
		"n":      1,
		"size":   size,
	}
	if model := strings.TrimSpace(c.cfg.Model); model != "" {
		body["model"] = model
	}
	requestBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal image request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ImagesURL, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.cfg.APIKey))

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		errBody, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read image error body: %w", err)
		}
		return "", fmt.Errorf("image request status %d: %s", res.StatusCode, strings.TrimSpace(string(errBody)))
	}

	var payload struct {
		Data []struct {
			URL     string `json:"url"`
			B64JSON string `json:"b64_json"`
		} `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode image response: %w", err)
	}
	if len(payload.Data) == 0 {
		return "", fmt.Errorf("image response missing data")
	}
	if url := strings.TrimSpace(payload.Data[0].URL); url != "" {
		return url, nil
	}
	if encoded := strings.TrimSpace(payload.Data[0].B64JSON); encoded != "" {
		return "data:image/png;base64," + encoded, nil
	}
	return "", fmt.Errorf("image response missing image reference")
}
