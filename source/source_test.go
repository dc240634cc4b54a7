package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/tinypng/config"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Location
	}{
		{"-", Location{Kind: StandardInput}},
		{"image.png", Location{Kind: File, Path: "image.png"}},
		{"/tmp/a b.png", Location{Kind: File, Path: "/tmp/a b.png"}},
		{"s3://bucket/key.png", Location{Kind: S3, Bucket: "bucket", Key: "key.png"}},
		{"s3://bucket/dir/key.png", Location{Kind: S3, Bucket: "bucket", Key: "dir/key.png"}},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.in, got.String())
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "s3://", "s3://bucket", "s3://bucket/", "s3:///key"} {
		_, err := Parse(in)
		assert.Error(t, err, "Parse(%q)", in)
	}
}

func TestLocation_Name(t *testing.T) {
	loc, err := Parse("s3://bucket/dir/key.png")
	require.NoError(t, err)
	assert.Equal(t, "key.png", loc.Name())

	loc, err = Parse("-")
	require.NoError(t, err)
	assert.Equal(t, "stdin", loc.Name())
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, os.WriteFile(path, []byte("pixels"), 0o644))

	rc, err := Open(context.Background(), path, config.S3Config{})
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.png"), config.S3Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestBytes(t *testing.T) {
	rc := Bytes([]byte{1, 2, 3})
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.NoError(t, rc.Close())
}

type fakeGetter struct {
	objects map[string]string
	err     error
	gotKey  string
}

func (f *fakeGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotKey = aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[f.gotKey]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "The specified key does not exist."}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestOpenObject(t *testing.T) {
	client := &fakeGetter{objects: map[string]string{"images/cat.png": "meow"}}

	rc, err := OpenObject(context.Background(), client, "images", "cat.png")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "meow", string(data))
	assert.Equal(t, "images/cat.png", client.gotKey)
}

func TestOpenObject_NotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"missing key", &smithy.GenericAPIError{Code: "NoSuchKey"}},
		{"missing bucket", &smithy.GenericAPIError{Code: "NoSuchBucket"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenObject(context.Background(), &fakeGetter{err: tt.err}, "b", "k")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotFound))
			assert.Contains(t, err.Error(), "s3://b/k")
		})
	}
}

func TestOpenObject_OtherError(t *testing.T) {
	denied := &smithy.GenericAPIError{Code: "AccessDenied"}
	_, err := OpenObject(context.Background(), &fakeGetter{err: denied}, "b", "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	var apiError smithy.APIError
	require.True(t, errors.As(err, &apiError))
	assert.Equal(t, "AccessDenied", apiError.ErrorCode())
}
