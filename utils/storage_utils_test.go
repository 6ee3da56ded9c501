package utils

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPhotoStoreSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store := &LocalPhotoStore{Root: root}
	ctx := context.Background()

	url, err := store.Save(ctx, `C:\Users\me\my car.jpg`, "image/jpeg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/images/"))
	assert.True(t, strings.HasSuffix(url, "_my_car.jpg"))

	onDisk := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(url, "/")))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	// second delete and remote URLs are no-ops
	assert.NoError(t, store.Delete(ctx, url))
	assert.NoError(t, store.Delete(ctx, "https://placehold.co/400x300?text=No+Photo"))
}

func TestLocalPhotoStoreDeleteStaysInImages(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(root, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	store := &LocalPhotoStore{Root: root}
	require.NoError(t, store.Delete(context.Background(), "/images/../secret.txt"))

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

type fakeS3 struct {
	s3iface.S3API
	put     *s3.PutObjectInput
	body    string
	deleted []string
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.put = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3PhotoStore(t *testing.T) {
	client := &fakeS3{}
	store := NewS3PhotoStore(client, "adverts", "https://cdn.example.com/")
	ctx := context.Background()

	url, err := store.Save(ctx, "bike.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/images/"))
	assert.Equal(t, "adverts", aws.StringValue(client.put.Bucket))
	assert.Equal(t, "image/png", aws.StringValue(client.put.ContentType))
	assert.Equal(t, "png", client.body)

	require.NoError(t, store.Delete(ctx, url))
	require.NoError(t, store.Delete(ctx, "https://placehold.co/400x300"))
	require.Len(t, client.deleted, 1)
	assert.Equal(t, strings.TrimPrefix(url, "https://cdn.example.com/"), client.deleted[0])
}
