// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client for
// the character photo archive. Reader-uploaded photos feed later
// illustration work, so they live in a private bucket and are only ever
// handed out through short-lived presigned URLs. The client wraps the
// AWS SDK v2 and is configured for path-style access (required by
// CEPH/Hetzner).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client wraps an S3 client for operations on the photo archive bucket.
type Client struct {
	s3        *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

// Photo is an uploaded character photo ready for archiving. Thumbnail,
// when set, is a JPEG rendition stored alongside the original.
type Photo struct {
	ContentType string
	Data        []byte
	Thumbnail   []byte
}

// ArchivedPhoto is one archived object with a presigned download URL.
type ArchivedPhoto struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// New creates an S3 storage client with path-style addressing.
// Returns (nil, nil) if endpoint or credentials are empty, allowing
// the app to start without storage.
func New(endpoint, region, accessKey, secretKey, bucket string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(strings.TrimRight(endpoint, "/")),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		presigner: s3.NewPresignClient(s3Client),
		bucket:    bucket,
	}, nil
}

// ArchiveCharacterPhotos stores a batch of reader-uploaded photos under
// the given key prefix, writing each thumbnail next to its original.
// Returns the object keys written.
func (c *Client) ArchiveCharacterPhotos(ctx context.Context, prefix string, photos []Photo) ([]string, error) {
	keys := make([]string, 0, len(photos))
	for i, p := range photos {
		key := fmt.Sprintf("%s/photo-%02d%s", prefix, i+1, extensionFor(p.ContentType))
		if err := c.put(ctx, key, p.ContentType, bytes.NewReader(p.Data), int64(len(p.Data))); err != nil {
			return nil, err
		}
		keys = append(keys, key)

		if p.Thumbnail == nil {
			continue
		}
		thumbKey := fmt.Sprintf("%s/photo-%02d-thumb.jpg", prefix, i+1)
		if err := c.put(ctx, thumbKey, "image/jpeg", bytes.NewReader(p.Thumbnail), int64(len(p.Thumbnail))); err != nil {
			return nil, err
		}
		keys = append(keys, thumbKey)
	}
	return keys, nil
}

// ArchivedPhotoURLs lists the objects under prefix and returns a
// presigned GET URL for each, valid for the given duration (max 7 days
// per the S3 spec). Keys are returned in lexical order, so originals
// and their thumbnails stay adjacent.
func (c *Client) ArchivedPhotoURLs(ctx context.Context, prefix string, expires time.Duration) ([]ArchivedPhoto, error) {
	keys, err := c.listKeys(ctx, prefix)
	if err != nil {
		return nil, err
	}

	photos := make([]ArchivedPhoto, 0, len(keys))
	for _, key := range keys {
		req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key),
		}, s3.WithPresignExpires(expires))
		if err != nil {
			return nil, fmt.Errorf("s3 presign %s/%s: %w", c.bucket, key, err)
		}
		photos = append(photos, ArchivedPhoto{Key: key, URL: req.URL})
	}
	return photos, nil
}

// DeleteArchivedPhotos removes every object under prefix.
func (c *Client) DeleteArchivedPhotos(ctx context.Context, prefix string) error {
	keys, err := c.listKeys(ctx, prefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if _, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key),
		}); err != nil {
			return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
		}
	}
	return nil
}

// put stores a single object in the archive bucket.
func (c *Client) put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// listKeys collects all object keys under prefix, following
// continuation tokens.
func (c *Client) listKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix + "/"),
	}
	for {
		output, err := c.s3.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("s3 list %s/%s: %w", c.bucket, prefix, err)
		}
		for _, obj := range output.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if !aws.ToBool(output.IsTruncated) {
			break
		}
		input.ContinuationToken = output.NextContinuationToken
	}
	return keys, nil
}

// extensionFor maps the common upload content types to file extensions.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
