package config

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/vango-dev/qszone/internal/errors"
)

// ObjectGetter is the subset of *s3.Client used to fetch configuration.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// maxRemoteConfigSize caps how much of a remote object is read.
const maxRemoteConfigSize = 1 << 20

// IsS3URI reports whether location is an s3://bucket/key URI.
func IsS3URI(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

// ParseS3URI splits s3://bucket/key into its parts.
func ParseS3URI(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme != "s3" || u.Host == "" || strings.TrimPrefix(u.Path, "/") == "" {
		return "", "", errors.New("E006").
			WithDetail("Expected s3://bucket/key, got " + location)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// LoadFromS3 fetches bucket/key and parses it like LoadFile. The key's
// extension selects the format.
func LoadFromS3(ctx context.Context, client ObjectGetter, bucket, key string) (*Config, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.New("E006").Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxRemoteConfigSize+1))
	if err != nil {
		return nil, errors.New("E006").Wrap(err)
	}
	if len(data) > maxRemoteConfigSize {
		return nil, errors.New("E006").WithDetail("config object exceeds 1 MiB")
	}

	cfg, err := Parse(key, data)
	if err != nil {
		return nil, err
	}
	cfg.configPath = "s3://" + bucket + "/" + key
	return cfg, nil
}
