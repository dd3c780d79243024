package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresignPutSignsOffline(t *testing.T) {
	awsCfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	}
	presigner := NewS3PresignerFromConfig(awsCfg, "avatars", "http://localhost:9000")

	raw, err := presigner.PresignPut(context.Background(), "user-profiles/u1/me.png", "image/png", 15*time.Minute)
	require.NoError(t, err)

	signed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", signed.Host)
	assert.Equal(t, "/avatars/user-profiles/u1/me.png", signed.Path)
	assert.Equal(t, "900", signed.Query().Get("X-Amz-Expires"))
	assert.Equal(t, "host", signed.Query().Get("X-Amz-SignedHeaders"))
	assert.NotEmpty(t, signed.Query().Get("X-Amz-Signature"))
}
