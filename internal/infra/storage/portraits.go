package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/care-scheduler/internal/config"
)

const (
	PortraitWidth  = 300
	portraitPrefix = "doctors/"
	webpQuality    = 80
)

var ErrNotConfigured = errors.New("S3_BUCKET is not configured")

// ObjectPutter is the part of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func NewS3Client(cfg *config.Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.S3Region,
	}
	if cfg.S3AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretKey, "")
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

// PortraitStore resizes doctor portraits, encodes them as WebP and uploads
// them to a bucket.
type PortraitStore struct {
	client     ObjectPutter
	bucket     string
	region     string
	publicBase string
}

func NewPortraitStore(client ObjectPutter, cfg *config.Config) (*PortraitStore, error) {
	if cfg.S3Bucket == "" {
		return nil, ErrNotConfigured
	}
	return &PortraitStore{
		client:     client,
		bucket:     cfg.S3Bucket,
		region:     cfg.S3Region,
		publicBase: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
	}, nil
}

// Upload stores src under a key derived from name and returns its public URL.
func (p *PortraitStore) Upload(ctx context.Context, name string, src io.Reader) (string, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode portrait: %w", err)
	}

	body, err := EncodeWebP(Resize(img, PortraitWidth))
	if err != nil {
		return "", err
	}

	key := portraitPrefix + slug(name) + ".webp"
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=604800"),
	})
	if err != nil {
		return "", fmt.Errorf("upload portrait: %w", err)
	}
	return p.URL(key), nil
}

func (p *PortraitStore) URL(key string) string {
	if p.publicBase != "" {
		return p.publicBase + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
}

// Resize scales img to width, keeping the aspect ratio. Narrower images are
// returned unchanged.
func Resize(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() <= width {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func EncodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_', r == '@':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
