package services

import (
	"context"
	"errors"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2003dinijay/ChatStack/internal/chatserver/config"
)

func mediaTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.S3PresignExpiry = time.Minute
	return cfg
}

func TestGetUploadURL(t *testing.T) {
	origPut := presignPutObject
	defer func() { presignPutObject = origPut }()

	var gotBucket, gotKey string
	presignPutObject = func(_ *s3.PresignClient, _ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket = *in.Bucket
		gotKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "https://s3.example.com/put"}, nil
	}

	svc := NewMediaService(mediaTestConfig())
	key, url, err := svc.GetUploadURL(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/put", url)
	assert.Equal(t, key, gotKey)
	assert.Equal(t, "chatstack-media", gotBucket)
	assert.Contains(t, key, "posts/")
}

func TestGetUploadURLKeysAreUnique(t *testing.T) {
	origPut := presignPutObject
	defer func() { presignPutObject = origPut }()

	presignPutObject = func(_ *s3.PresignClient, _ context.Context, _ *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "https://s3.example.com/put"}, nil
	}

	svc := NewMediaService(mediaTestConfig())
	first, _, err := svc.GetUploadURL(context.Background())
	require.NoError(t, err)
	second, _, err := svc.GetUploadURL(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestGetDownloadURL(t *testing.T) {
	origGet := presignGetObject
	defer func() { presignGetObject = origGet }()

	presignGetObject = func(_ *s3.PresignClient, _ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "https://s3.example.com/get/" + *in.Key}, nil
	}

	svc := NewMediaService(mediaTestConfig())
	url, err := svc.GetDownloadURL(context.Background(), "posts/2026/1/1/abc")

	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/get/posts/2026/1/1/abc", url)
}

func TestGetDownloadURLError(t *testing.T) {
	origGet := presignGetObject
	defer func() { presignGetObject = origGet }()

	presignGetObject = func(_ *s3.PresignClient, _ context.Context, _ *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign failed")
	}

	svc := NewMediaService(mediaTestConfig())
	_, err := svc.GetDownloadURL(context.Background(), "posts/x")

	assert.Error(t, err)
}
