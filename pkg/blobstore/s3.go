package blobstore

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

var _ Store = (*S3Store)(nil)

// S3Store nesneleri bir Amazon S3 bucket'ında tutar ve önceden imzalanmış URL üretir.
type S3Store struct {
	client     *s3.S3
	uploader   *s3manager.Uploader
	bucketName string
	urlTTL     time.Duration
}

// NewS3Store ortamdaki AWS kimlik bilgileriyle bir istemci oluşturur.
func NewS3Store(bucketName, region string, urlTTL time.Duration) (*S3Store, error) {
	if bucketName == "" {
		return nil, errors.New("blobstore: s3 bucket adı boş olamaz")
	}
	sess, err := session.NewSession(aws.NewConfig().WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.New(sess)
	return &S3Store{
		client:     client,
		uploader:   s3manager.NewUploaderWithClient(client),
		bucketName: bucketName,
		urlTTL:     urlTTL,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	key, err := CleanPath(objectPath)
	if err != nil {
		return err
	}
	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	_, err = s.uploader.UploadWithContext(ctx, input)
	return err
}

func (s *S3Store) URL(ctx context.Context, objectPath string) (string, error) {
	key, err := CleanPath(objectPath)
	if err != nil {
		return "", err
	}
	_, err = s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	return req.Presign(s.urlTTL)
}

func (s *S3Store) Open(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	key, err := CleanPath(objectPath)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out.Body, nil
}

func isS3NotFound(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return true
		}
	}
	return false
}
