package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
)

const imagesFolder = "images"

// PhotoStore keeps uploaded advertisement photos and hands back their URL.
type PhotoStore interface {
	Save(ctx context.Context, fileName, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// IsRemoteURL reports URLs the application does not own, such as placeholders.
func IsRemoteURL(url string) bool {
	return strings.HasPrefix(strings.ToLower(url), "http")
}

// uniqueName prefixes the client file name with a uuid and strips any path.
func uniqueName(fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, `\`, "/"))
	if base == "." || base == "/" || base == "" {
		base = "photo"
	}
	base = strings.ReplaceAll(base, " ", "_")
	return uuid.NewString() + "_" + base
}

// LocalPhotoStore writes files under <Root>/images and serves them as /images/<name>.
type LocalPhotoStore struct {
	Root string
}

func (s *LocalPhotoStore) Save(_ context.Context, fileName, _ string, body io.Reader) (string, error) {
	dir := filepath.Join(s.Root, imagesFolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}
	name := uniqueName(fileName)
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("write photo file: %w", err)
	}
	return "/" + imagesFolder + "/" + name, nil
}

// Delete removes a file previously returned by Save. Remote URLs and
// already-missing files are ignored.
func (s *LocalPhotoStore) Delete(_ context.Context, url string) error {
	if url == "" || IsRemoteURL(url) {
		return nil
	}
	clean := path.Clean("/" + url)
	if !strings.HasPrefix(clean, "/"+imagesFolder+"/") {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

// S3PhotoStore uploads to an S3-compatible bucket with public-read objects.
type S3PhotoStore struct {
	client    s3iface.S3API
	bucket    string
	publicURL string
}

func NewS3Client(cfg S3Config) (*s3.S3, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

func NewS3PhotoStore(client s3iface.S3API, bucket, publicURL string) *S3PhotoStore {
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return &S3PhotoStore{client: client, bucket: bucket, publicURL: strings.TrimSuffix(publicURL, "/")}
}

func (s *S3PhotoStore) Save(ctx context.Context, fileName, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := imagesFolder + "/" + uniqueName(fileName)

	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

// Delete only touches objects under this store's public URL.
func (s *S3PhotoStore) Delete(ctx context.Context, url string) error {
	prefix := s.publicURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return nil
	}
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(strings.TrimPrefix(url, prefix)),
	})
	return err
}
