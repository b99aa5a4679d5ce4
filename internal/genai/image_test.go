package genai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"adworks/internal/campaign/domain"
)

func TestImageSizeForType(t *testing.T) {
	tests := []struct {
		deliverableType domain.DeliverableType
		size            string
	}{
		{domain.DeliverableTypeVideo, ImageSizeLandscape},
		{domain.DeliverableTypePrintAd, ImageSizeLandscape},
		{domain.DeliverableTypeBillboard, ImageSizeLandscape},
		{domain.DeliverableTypeSocialVideo, ImageSizePortrait},
		{domain.DeliverableTypeSocialPost, ImageSizeSquare},
		{domain.DeliverableTypeEmailBlast, ImageSizeSquare},
	}
	for _, tc := range tests {
		if size := ImageSizeForType(tc.deliverableType); size != tc.size {
			t.Fatalf("type %s: expected size %s, got %s", tc.deliverableType, tc.size, size)
		}
	}
}

func TestGenerateImageReturnsURL(t *testing.T) {
	var gotBody map[string]any
	client := NewImageClient(ImageClientConfig{
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			payload, _ := io.ReadAll(req.Body)
			if err := json.Unmarshal(payload, &gotBody); err != nil {
				t.Fatalf("unmarshal request body: %v", err)
			}
			return response(http.StatusOK, `{"data":[{"url":"https://img.example/1.png"}]}`), nil
		})},
	})

	ref, err := client.GenerateImage(context.Background(), "a neon billboard at dusk", ImageSizeLandscape)
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if ref != "https://img.example/1.png" {
		t.Fatalf("image ref = %q", ref)
	}
	if gotBody["n"] != float64(1) {
		t.Fatalf("expected image count 1, got %v", gotBody["n"])
	}
	if gotBody["size"] != ImageSizeLandscape {
		t.Fatalf("expected size %s, got %v", ImageSizeLandscape, gotBody["size"])
	}
}

func TestGenerateImageFallsBackToEncodedPayload(t *testing.T) {
	client := NewImageClient(ImageClientConfig{
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return response(http.StatusOK, `{"data":[{"b64_json":"aWJt"}]}`), nil
		})},
	})

	ref, err := client.GenerateImage(context.Background(), "a poster", "")
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if !strings.HasPrefix(ref, "data:image/png;base64,") {
		t.Fatalf("expected data URI, got %q", ref)
	}
}

func TestGenerateImageNon2xxCarriesStatus(t *testing.T) {
	client := NewImageClient(ImageClientConfig{
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return response(http.StatusBadRequest, `{"error":"bad prompt"}`), nil
		})},
	})

	_, err := client.GenerateImage(context.Background(), "a poster", "")
	if err == nil || !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestGenerateImageMissingData(t *testing.T) {
	client := NewImageClient(ImageClientConfig{
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return response(http.StatusOK, `{"data":[]}`), nil
		})},
	})

	_, err := client.GenerateImage(context.Background(), "a poster", "")
	if err == nil || !strings.Contains(err.Error(), "missing data") {
		t.Fatalf("expected missing data error, got %v", err)
	}
}
