package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// VisionService stores scan captures in S3 and turns them into a product
// label via Rekognition. Recognition quality is the provider's concern; this
// service only picks the most confident food-like label.
type VisionService struct {
	rek    *rekognition.Client
	s3     *s3.Client
	bucket string
}

// NewVisionService creates a new VisionService instance.
func NewVisionService(ctx context.Context, region, bucket string) (*VisionService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &VisionService{
		rek:    rekognition.NewFromConfig(cfg),
		s3:     s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

// nonProductLabels are generic labels Rekognition returns for almost any
// food photo; they never identify a product.
var nonProductLabels = map[string]bool{
	"Food":     true,
	"Meal":     true,
	"Dish":     true,
	"Plant":    true,
	"Produce":  true,
	"Beverage": true,
	"Drink":    true,
	"Plate":    true,
	"Bowl":     true,
}

// DetectProductLabel archives the capture and returns the best label to look
// the product up by. The S3 write is best-effort: a failed archive never
// fails the scan.
func (v *VisionService) DetectProductLabel(ctx context.Context, image []byte) (string, error) {
	v.archiveCapture(ctx, image)

	out, err := v.rek.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &rektypes.Image{Bytes: image},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(70),
	})
	if err != nil {
		return "", fmt.Errorf("detect labels: %w", err)
	}

	var fallback string
	for _, l := range out.Labels {
		if l.Name == nil {
			continue
		}
		if !nonProductLabels[*l.Name] {
			return *l.Name, nil
		}
		if fallback == "" {
			fallback = *l.Name
		}
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("no recognizable product in image")
}

func (v *VisionService) archiveCapture(ctx context.Context, image []byte) {
	key := fmt.Sprintf("captures/%s/%s.jpg", time.Now().Format("2006-01-02"), uuid.NewString())
	_, err := v.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(v.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(image),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		log.Printf("scan capture archive failed: %v", err)
	}
}
