package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const maxFileSize = 10 * 1024 * 1024

var (
	ErrUnsupportedType = errors.New("invalid file type. Only jpg, png, webp images and mp4, webm videos are allowed")
	ErrFileTooLarge    = errors.New("file exceeds the 10MB size limit")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"video/mp4":  ".mp4",
	"video/webm": ".webm",
}

type StoredMedia struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	ResourceType string `json:"resourceType"`
}

// MediaStore persists uploaded files on the external media host. Type and
// size limits are enforced here, before any controller sees the file.
type MediaStore interface {
	Save(ctx context.Context, contentType string, size int64, body io.Reader) (*StoredMedia, error)
}

type S3MediaStore struct {
	client     *s3.Client
	bucketName string
	endpoint   string
}

func NewS3MediaStore() (*S3MediaStore, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	region := os.Getenv("AWS_REGION")
	bucketName := os.Getenv("S3_BUCKET_NAME")
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	usePathStyle := os.Getenv("S3_USE_PATH_STYLE") == "true"

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               endpoint,
			SigningRegion:     region,
			HostnameImmutable: true,
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(
		context.TODO(),
		config.WithRegion(region),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)

	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = usePathStyle
	})

	return &S3MediaStore{
		client:     s3Client,
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

func (s *S3MediaStore) Save(ctx context.Context, contentType string, size int64, body io.Reader) (*StoredMedia, error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedType
	}

	if size > maxFileSize {
		return nil, ErrFileTooLarge
	}

	resourceType := "image"
	folder := "product-images"
	if strings.HasPrefix(contentType, "video/") {
		resourceType = "video"
		folder = "product-videos"
	}

	filename := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1e9), ext)
	objectKey := folder + "/" + filename

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})

	if err != nil {
		return nil, err
	}

	return &StoredMedia{
		URL:          s.endpoint + "/" + s.bucketName + "/" + objectKey,
		Filename:     filename,
		ResourceType: resourceType,
	}, nil
}
