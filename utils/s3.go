package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/raushankrgupta/closetly/config"
)

// PhotoLinkTTL is the lifetime of the link returned for an archived photo
const PhotoLinkTTL = time.Hour

// S3Enabled reports whether a bucket is configured for photo archiving
func S3Enabled() bool {
	return appConfig.AWSBucketName != ""
}

// S3Archiver uploads analysed photos to a bucket and returns a presigned link
type S3Archiver struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3Archiver loads the default AWS credential chain for region
func NewS3Archiver(ctx context.Context, region, bucket string) (*S3Archiver, error) {
	if bucket == "" {
		return nil, errors.New("AWS_BUCKET_NAME is empty")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}
	client := s3.NewFromConfig(cfg)
	log.Println("S3 Client Initialized")
	return &S3Archiver{client: client, presign: s3.NewPresignClient(client), bucket: bucket}, nil
}

func (a *S3Archiver) Archive(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo to S3: %v", err)
	}

	req, err := a.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(PhotoLinkTTL))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %v", err)
	}
	return req.URL, nil
}
