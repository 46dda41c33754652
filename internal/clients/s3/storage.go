// Package s3 stores fiscal artifacts (signed XML and PDF rendering) in an S3
// compatible bucket.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofrs/uuid/v5"
	"golang.org/x/sync/errgroup"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/pkg/config"
)

const (
	contentTypeXML = "application/xml"
	contentTypePDF = "application/pdf"

	presignExpiration = 15 * time.Minute
)

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Storage struct {
	client  objectAPI
	presign *s3.PresignClient
	bucket  string
}

func New(ctx context.Context, cfg config.S3) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}

	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle

		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

// Keys returns the object keys of an invoice's artifacts.
func Keys(tenantID, invoiceID uuid.UUID) entity.ArtifactKeys {
	prefix := fmt.Sprintf("tenants/%s/invoices/%s", tenantID, invoiceID)

	return entity.ArtifactKeys{
		SignedDocument: prefix + ".xml",
		Rendering:      prefix + ".pdf",
	}
}

// SaveArtifacts uploads the signed document and its rendering. Missing artifacts
// are skipped and their keys left empty.
func (s *Storage) SaveArtifacts(
	ctx context.Context,
	inv entity.Invoice,
	res entity.CertificationResult,
) (entity.ArtifactKeys, error) {
	keys := Keys(inv.TenantID, inv.ID)

	if len(res.SignedDocument) == 0 {
		keys.SignedDocument = ""
	}

	if len(res.Rendering) == 0 {
		keys.Rendering = ""
	}

	g, gCtx := errgroup.WithContext(ctx)

	if keys.SignedDocument != "" {
		g.Go(func() error {
			return s.put(gCtx, keys.SignedDocument, contentTypeXML, res.SignedDocument)
		})
	}

	if keys.Rendering != "" {
		g.Go(func() error {
			return s.put(gCtx, keys.Rendering, contentTypePDF, res.Rendering)
		})
	}

	err := g.Wait()
	if err != nil {
		return entity.ArtifactKeys{}, fmt.Errorf("%w: %w", entity.ErrStorage, err)
	}

	return keys, nil
}

// ArtifactURL returns a short lived download link for key.
func (s *Storage) ArtifactURL(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: artifact is not stored", entity.ErrNotFound)
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiration))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}

	return req.URL, nil
}

func (s *Storage) put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	return nil
}
