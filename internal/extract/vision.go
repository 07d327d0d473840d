package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"nltools/internal/docs"
)

// ErrMissingCredentials is returned when no Google Cloud credentials are
// available in the environment.
var ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

// VisionExtractor recognizes text in image blobs using Google Cloud
// Vision document text detection.
type VisionExtractor struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionExtractor creates the OCR extractor with credentials from the
// environment: GOOGLE_CREDENTIALS inline JSON first, then
// GOOGLE_APPLICATION_CREDENTIALS, then default credentials.
func NewVisionExtractor(ctx context.Context) (*VisionExtractor, error) {
	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingCredentials, err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create vision client: %w", err)
	}

	return &VisionExtractor{client: client}, nil
}

// NewVisionExtractorWithClient creates the OCR extractor with an explicit
// client (for testing).
func NewVisionExtractorWithClient(client *vision.ImageAnnotatorClient) *VisionExtractor {
	return &VisionExtractor{client: client}
}

// ExtractText runs document text detection on the image blob and returns
// the recognized text.
func (v *VisionExtractor) ExtractText(ctx context.Context, blob *docs.Blob) (string, error) {
	if blob == nil || len(blob.Data) == 0 {
		return "", ErrEmptyBlob
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: blob.Data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision api call failed: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("vision api returned no response")
	}

	imageResp := resp.Responses[0]
	if imageResp.Error != nil {
		return "", fmt.Errorf("vision api error: %s", imageResp.Error.Message)
	}

	annotation := imageResp.GetFullTextAnnotation()
	if annotation == nil || strings.TrimSpace(annotation.GetText()) == "" {
		return "", fmt.Errorf("image contains no readable text")
	}

	return annotation.GetText(), nil
}

// Close closes the underlying Vision client.
func (v *VisionExtractor) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}
