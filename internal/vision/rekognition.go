package vision

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"watchlist-foodlens-service/internal/models"
)

// DetectLabelsAPI is the subset of the Rekognition client used here.
type DetectLabelsAPI interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// RekognitionLabeler labels images with AWS Rekognition.
type RekognitionLabeler struct {
	api           DetectLabelsAPI
	maxLabels     int32
	minConfidence float32
}

// NewRekognitionClient builds a Rekognition client for the given region.
func NewRekognitionClient(ctx context.Context, region string) (*rekognition.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return rekognition.NewFromConfig(cfg), nil
}

// NewRekognitionLabeler creates a RekognitionLabeler.
// minConfidence is a percentage, as Rekognition reports it.
func NewRekognitionLabeler(api DetectLabelsAPI, maxLabels int, minConfidence float64) *RekognitionLabeler {
	return &RekognitionLabeler{
		api:           api,
		maxLabels:     int32(maxLabels),
		minConfidence: float32(minConfidence),
	}
}

// Labels implements Labeler. Scores are normalized to 0..1.
func (r *RekognitionLabeler) Labels(ctx context.Context, image []byte) ([]models.Label, error) {
	if len(image) == 0 {
		return nil, ErrNoImage
	}

	out, err := r.api.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(r.maxLabels),
		MinConfidence: aws.Float32(r.minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("rekognition DetectLabels failed: %w", err)
	}

	labels := make([]models.Label, 0, len(out.Labels))
	for _, l := range out.Labels {
		name := aws.ToString(l.Name)
		if name == "" {
			continue
		}
		labels = append(labels, models.Label{
			Description: name,
			Score:       float64(aws.ToFloat32(l.Confidence)) / 100,
		})
	}
	sort.SliceStable(labels, func(i, j int) bool { return labels[i].Score > labels[j].Score })
	return labels, nil
}
