package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"watchlist-foodlens-service/internal/models"
)

// GoogleLabeler labels images with Google Cloud Vision label detection.
type GoogleLabeler struct {
	client    *gvision.ImageAnnotatorClient
	maxLabels int32
}

// NewGoogleLabeler creates a GoogleLabeler. When credentialsJSON is empty the
// client falls back to application default credentials
// (GOOGLE_APPLICATION_CREDENTIALS).
func NewGoogleLabeler(ctx context.Context, credentialsJSON string, maxLabels int) (*GoogleLabeler, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	client, err := gvision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &GoogleLabeler{client: client, maxLabels: int32(maxLabels)}, nil
}

// Close releases the underlying gRPC connection.
func (g *GoogleLabeler) Close() error {
	return g.client.Close()
}

// Labels implements Labeler.
func (g *GoogleLabeler) Labels(ctx context.Context, image []byte) ([]models.Label, error) {
	if len(image) == 0 {
		return nil, ErrNoImage
	}

	resp, err := g.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image: &visionpb.Image{Content: image},
			Features: []*visionpb.Feature{{
				Type:       visionpb.Feature_LABEL_DETECTION,
				MaxResults: g.maxLabels,
			}},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("label detection failed: %w", err)
	}
	if len(resp.GetResponses()) == 0 {
		return []models.Label{}, nil
	}

	r := resp.GetResponses()[0]
	if st := r.GetError(); st != nil && st.GetCode() != 0 {
		return nil, fmt.Errorf("label detection failed: %s", st.GetMessage())
	}

	labels := make([]models.Label, 0, len(r.GetLabelAnnotations()))
	for _, a := range r.GetLabelAnnotations() {
		labels = append(labels, models.Label{
			Description: a.GetDescription(),
			Score:       float64(a.GetScore()),
		})
	}
	return labels, nil
}
