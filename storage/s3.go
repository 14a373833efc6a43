package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Bucket wraps the S3 client for the single image bucket the API uses.
type Bucket struct {
	client *s3.Client
	name   string
	region string
}

// File is one stored object with its public URL.
type File struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// New loads the default AWS config (env credentials and region) and returns a
// client bound to the configured bucket.
func New(ctx context.Context, region, bucket string) (*Bucket, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return &Bucket{
		client: s3.NewFromConfig(cfg),
		name:   bucket,
		region: region,
	}, nil
}

// Put uploads the object and returns its public URL.
func (b *Bucket) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(b.name),
		Key:         sdkaws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: sdkaws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return b.URL(key), nil
}

// Delete removes the object. Deleting a missing key is not an error in S3.
func (b *Bucket) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: sdkaws.String(b.name),
		Key:    sdkaws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// List returns every object in the bucket with its public URL.
func (b *Bucket) List(ctx context.Context) ([]File, error) {
	out, err := b.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: sdkaws.String(b.name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket: %w", err)
	}

	files := make([]File, 0, len(out.Contents))
	for _, item := range out.Contents {
		files = append(files, File{Key: *item.Key, URL: b.URL(*item.Key)})
	}
	return files, nil
}

// URL maps an object key to its public https URL.
func (b *Bucket) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.name, b.region, key)
}

// KeyFromURL is the inverse of URL, used when deleting objects referenced by
// stored image URLs.
func (b *Bucket) KeyFromURL(url string) string {
	return strings.TrimPrefix(url, fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", b.name, b.region))
}
