package db

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	fig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MediaRepository is the S3-backed media store. Keys double as the
// "public id" handed back to clients so later deletes need no lookup.
type MediaRepository interface {
	UploadObject(ctx context.Context, key string, body []byte, contentType string) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

type mediaRepo struct {
	bucket string
	region string
}

func NewMediaRepo() MediaRepository {
	return &mediaRepo{
		bucket: os.Getenv("AWS_BUCKET"),
		region: os.Getenv("AWS_REGION"),
	}
}

func (m *mediaRepo) createS3Client(ctx context.Context) (*s3.Client, error) {
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	cfg, err := fig.LoadDefaultConfig(ctx,
		fig.WithRegion(m.region),
		fig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}

	return s3.NewFromConfig(cfg), nil
}

func (m *mediaRepo) UploadObject(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	client, err := m.createS3Client(ctx)
	if err != nil {
		return "", err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	fileURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.bucket, m.region, key)
	return fileURL, nil
}

func (m *mediaRepo) DeleteObject(ctx context.Context, key string) error {
	client, err := m.createS3Client(ctx)
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %v", err)
	}
	return nil
}
