/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package s3cache is an httpcache.Cache kept in an S3 bucket so that cached
// tournament files survive restarts and are shared between the CLI, the
// bot and the cache seeder.
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// DefaultPrefix is used when Options.Prefix is empty.
const DefaultPrefix = "s3cache"

const gzipSuffix = ".gz"

type Options struct {
	Bucket string
	// Prefix namespaces object keys, e.g. "swisstd" yields swisstd/<sha256>
	Prefix string
	// Gzip compresses stored entries; their keys carry a .gz suffix
	Gzip      bool
	LogErrors bool
}

type Cache struct {
	// Client is created by Init; callers may replace it afterwards.
	Client *s3.Client

	opts Options
	ctx  context.Context
}

// New returns a Cache for opts. Init must be called before use.
func New(ctx context.Context, opts Options) *Cache {
	opts.Prefix = strings.Trim(opts.Prefix, "/")
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	return &Cache{opts: opts, ctx: ctx}
}

// Init loads the default AWS configuration (environment, shared config and
// credentials files) and checks that the bucket is reachable.
func (c *Cache) Init() error {
	awsCfg, err := config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(awsCfg)

	_, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.opts.Bucket),
	})
	if err != nil {
		return fmt.Errorf("s3cache.init: bucket %v is not accessible: %w",
			c.opts.Bucket, err)
	}
	return nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	objKey := c.objectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		if !isNotFound(err) {
			c.logf("get", objKey, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	data, err := c.decode(resp.Body)
	if err != nil {
		c.logf("get", objKey, err)
		return nil, false
	}
	return data, true
}

func (c *Cache) Set(key string, data []byte) {
	objKey := c.objectKey(key)
	body, err := c.encode(data)
	if err != nil {
		c.logf("set", objKey, err)
		return
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(body),
	}
	if c.opts.Gzip {
		input.ContentEncoding = aws.String("gzip")
	}
	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		c.logf("set", objKey, err)
	}
}

func (c *Cache) Delete(key string) {
	objKey := c.objectKey(key)
	_, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		c.logf("delete", objKey, err)
	}
}

// objectKey maps a cache key (a request URL) to prefix/<sha256>[.gz].
func (c *Cache) objectKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	objKey := c.opts.Prefix + "/" + hex.EncodeToString(sum[:])
	if c.opts.Gzip {
		objKey += gzipSuffix
	}
	return objKey
}

func (c *Cache) encode(data []byte) ([]byte, error) {
	if !c.opts.Gzip {
		return data, nil
	}
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, fmt.Errorf("gzip failed: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("gzip failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Cache) decode(r io.Reader) ([]byte, error) {
	if !c.opts.Gzip {
		return io.ReadAll(r)
	}
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gunzip failed: %w", err)
	}
	defer gr.Close()
	return io.ReadAll(gr)
}

func (c *Cache) logf(op string, objKey string, err error) {
	if c.opts.LogErrors {
		log.Printf("s3cache.%v: %v/%v: %v", op, c.opts.Bucket, objKey, err)
	}
}

// isNotFound reports whether err is S3's answer for a missing object, which
// is an ordinary cache miss.
func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}
