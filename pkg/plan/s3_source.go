package plan

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3API is the subset of the S3 client used to fetch the plan file.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Source struct {
	client S3API
	bucket string
	key    string
}

// NewS3Source returns a Source that reads a YAML or TOML plan file from S3.
// The format is picked from the key's extension.
func NewS3Source(client S3API, bucket, key string) Source {
	if client == nil {
		panic("plan: S3 client is required")
	}
	return &s3Source{client: client, bucket: bucket, key: key}
}

func (s *s3Source) Load(ctx context.Context) ([]Plan, error) {
	format, err := FormatFromPath(s.key)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NoSuchBucket") {
			return nil, errors.Join(ErrSourceNotFound, err)
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return Decode(format, data)
}
