package storage

// s3.go: el mismo documento del cache.json guardado como objeto en un bucket
// S3 (o compatible: MinIO, DigitalOcean Spaces), para compartir el histórico
// entre máquinas.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/alejandrodnm/eurokeys/internal/domain"
)

const defaultS3Key = "eurokeys/cache.json"

// s3API es el subconjunto del cliente S3 que usa S3Store.
type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options son los parámetros del bucket. Sin AccessKey se usa la cadena de
// credenciales por defecto de AWS (variables de entorno, ~/.aws, IAM role).
type S3Options struct {
	Bucket    string
	Key       string
	Region    string
	Endpoint  string // vacío = AWS; con valor activa path-style
	AccessKey string
	SecretKey string
}

// S3Store implementa ports.DrawStore sobre un objeto S3.
type S3Store struct {
	client s3API
	bucket string
	key    string
}

// NewS3Store crea el cliente S3. No hace ninguna llamada de red.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage.NewS3Store: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewS3Store: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Store(client, opts.Bucket, opts.Key), nil
}

func newS3Store(client s3API, bucket, key string) *S3Store {
	if key == "" {
		key = defaultS3Key
	}
	return &S3Store{client: client, bucket: bucket, key: key}
}

// LoadDraws descarga el objeto. ok=false si no existe.
func (s *S3Store) LoadDraws(ctx context.Context) (domain.DrawHistory, bool, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return domain.DrawHistory{}, false, nil
		}
		return domain.DrawHistory{}, false, fmt.Errorf("storage.LoadDraws: get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return domain.DrawHistory{}, false, fmt.Errorf("storage.LoadDraws: read s3://%s/%s: %w", s.bucket, s.key, err)
	}

	h, ok, err := decodeHistory(data)
	if err != nil {
		return domain.DrawHistory{}, false, fmt.Errorf("storage.LoadDraws: decode s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return h, ok, nil
}

// SaveDraws sube el histórico reemplazando el objeto.
func (s *S3Store) SaveDraws(ctx context.Context, h domain.DrawHistory) error {
	data, err := encodeHistory(h)
	if err != nil {
		return fmt.Errorf("storage.SaveDraws: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("storage.SaveDraws: put s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}

// Close no hace nada: el cliente HTTP no necesita cierre.
func (s *S3Store) Close() error { return nil }
