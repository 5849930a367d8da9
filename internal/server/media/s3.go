package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// PublicURL prefixes object keys in returned URLs. When empty the URL
	// is Endpoint/Bucket/key.
	PublicURL string
	MaxWidth  int
	MaxHeight int
}

type S3Uploader struct {
	opts   S3Options
	client *s3.Client
	logger logging.Logger
	now    func() time.Time
}

func NewS3Uploader(ctx context.Context, opts S3Options, logger logging.Logger) (*S3Uploader, error) {
	if opts.Bucket == "" || opts.Endpoint == "" {
		return nil, fmt.Errorf("%w: media bucket and endpoint are required", common.ErrConfig)
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultMaxWidth
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = DefaultMaxHeight
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
	})

	return &S3Uploader{
		opts:   opts,
		client: client,
		logger: logger.With("module", "media"),
		now:    time.Now,
	}, nil
}

// Upload normalizes data and stores it under folder/yyyy/mm/dd/<uuid>.<ext>.
// Store errors wrap common.ErrUploadFailed.
func (u *S3Uploader) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	img, err := Normalize(data, u.opts.MaxWidth, u.opts.MaxHeight)
	if err != nil {
		return "", err
	}

	key := u.objectKey(folder, img.Ext)
	_, err = putObject(u.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(img.ContentType),
	})
	if err != nil {
		u.logger.Error(ctx, "put object failed", "key", key, "error", err)
		return "", fmt.Errorf("%w: %v", common.ErrUploadFailed, err)
	}

	u.logger.Info(ctx, "image stored", "key", key, "bytes", len(img.Data))
	return u.publicURL(key), nil
}

func (u *S3Uploader) objectKey(folder, ext string) string {
	d := u.now().UTC()
	folder = strings.Trim(folder, "/")
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s%s", folder, d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (u *S3Uploader) publicURL(key string) string {
	if u.opts.PublicURL != "" {
		return strings.TrimRight(u.opts.PublicURL, "/") + "/" + key
	}
	return strings.TrimRight(u.opts.Endpoint, "/") + "/" + u.opts.Bucket + "/" + key
}
