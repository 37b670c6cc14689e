package s3_helper

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/danthegoodman1/dynamicblog/gologger"
	"github.com/danthegoodman1/dynamicblog/utils"
	"github.com/rs/zerolog"
)

var (
	logger = gologger.NewLogger()
)

// Uploader writes objects with credentials from the environment.
type Uploader struct {
	uploader *s3manager.Uploader
}

func NewUploader() (*Uploader, error) {
	s3Config := &aws.Config{
		Region:      aws.String(utils.AWS_DEFAULT_REGION),
		Credentials: credentials.NewEnvCredentials(),
	}
	if utils.S3_ENDPOINT != "" {
		s3Config.Endpoint = aws.String(utils.S3_ENDPOINT)
		s3Config.S3ForcePathStyle = aws.Bool(true)
	}

	s3Session, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("error making new session: %w", err)
	}

	return &Uploader{uploader: s3manager.NewUploader(s3Session)}, nil
}

const defaultContentType = "application/octet-stream"

// uploadInput falls back to application/octet-stream when contentType is nil.
func uploadInput(bucket, key string, byteStream io.Reader, contentType *string) *s3manager.UploadInput {
	return &s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        byteStream,
		ContentType: aws.String(utils.Deref(contentType, defaultContentType)),
	}
}

func (u *Uploader) Upload(ctx context.Context, bucket, key string, byteStream io.Reader, contentType *string) error {
	ctx = logger.WithContext(ctx)
	logger := zerolog.Ctx(ctx)

	input := uploadInput(bucket, key, byteStream, contentType)

	s := time.Now()
	_, err := u.uploader.UploadWithContext(ctx, input)
	if err != nil {
		return fmt.Errorf("error uploading to s3: %w", err)
	}

	d := time.Since(s)
	logger.Debug().Str("bucket", bucket).Str("key", key).Int64("durationNS", d.Nanoseconds()).Str("durationHuman", d.String()).Msg("uploaded file to s3")

	return nil
}
