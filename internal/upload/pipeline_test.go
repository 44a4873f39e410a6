package upload

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodline/workorder-tracker/internal/domain"
	"github.com/prodline/workorder-tracker/internal/identity"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

type fakeObjectStore struct {
	puts     []string
	failKeys map[string]bool
	failAll  bool
}

func (f *fakeObjectStore) Put(_ context.Context, key string, _ []byte, _ string) error {
	if f.failAll || f.failKeys[key] {
		return fmt.Errorf("store unavailable")
	}
	f.puts = append(f.puts, key)
	return nil
}

func (f *fakeObjectStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func caller() *identity.Identity {
	return &identity.Identity{ID: "u1", Role: domain.RoleLineOperator, AccessGranted: true}
}

func jpeg(name string) FileInput {
	return FileInput{Name: name, ContentType: "image/jpeg", Data: []byte("jpeg-bytes")}
}

func newTestPipeline(store *fakeObjectStore) *Pipeline {
	return NewPipeline(store, nil, Options{})
}

func TestUploadImages_EmptyBatch(t *testing.T) {
	store := &fakeObjectStore{}
	pipeline := newTestPipeline(store)

	_, err := pipeline.UploadImages(context.Background(), caller(), nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NO_FILES"))
	// Rejected before any store interaction.
	assert.Empty(t, store.puts)
}

func TestUploadImages_TooManyFiles(t *testing.T) {
	store := &fakeObjectStore{}
	pipeline := newTestPipeline(store)

	files := make([]FileInput, 6)
	for i := range files {
		files[i] = jpeg(fmt.Sprintf("photo-%d.jpg", i))
	}

	_, err := pipeline.UploadImages(context.Background(), caller(), files)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "TOO_MANY_FILES"))
	assert.Empty(t, store.puts)
}

func TestUploadImages_FullBatchKeepsInputOrder(t *testing.T) {
	store := &fakeObjectStore{}
	pipeline := newTestPipeline(store)

	files := []FileInput{
		jpeg("a.jpg"), jpeg("b.jpg"), jpeg("c.jpg"), jpeg("d.jpg"), jpeg("e.jpg"),
	}

	result, err := pipeline.UploadImages(context.Background(), caller(), files)

	require.NoError(t, err)
	require.Len(t, result.URLs, 5)
	assert.Empty(t, result.Errors)
	assert.False(t, result.Partial)
	// URLs follow input order: each URL embeds the stored key, and keys
	// were written in input order.
	for i, url := range result.URLs {
		assert.Equal(t, "https://cdn.example.com/"+store.puts[i], url)
	}
}

func TestUploadImages_PartialFailure(t *testing.T) {
	store := &fakeObjectStore{}
	pipeline := newTestPipeline(store)

	files := []FileInput{
		jpeg("a.jpg"),
		{Name: "notes.txt", ContentType: "text/plain", Data: []byte("hello")},
		jpeg("c.jpg"),
		jpeg("d.jpg"),
		jpeg("e.jpg"),
	}

	result, err := pipeline.UploadImages(context.Background(), caller(), files)

	require.NoError(t, err)
	assert.Len(t, result.URLs, 4)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "notes.txt")
	assert.True(t, result.Partial)
}

func TestUploadImages_OversizedFileRejected(t *testing.T) {
	store := &fakeObjectStore{}
	pipeline := newTestPipeline(store)

	big := FileInput{Name: "huge.png", ContentType: "image/png", Data: make([]byte, 5*1024*1024+1)}
	result, err := pipeline.UploadImages(context.Background(), caller(), []FileInput{jpeg("ok.jpg"), big})

	require.NoError(t, err)
	assert.Len(t, result.URLs, 1)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "huge.png")
}

func TestUploadImages_AllInvalidFailsBatch(t *testing.T) {
	store := &fakeObjectStore{}
	pipeline := newTestPipeline(store)

	files := []FileInput{
		{Name: "a.txt", ContentType: "text/plain", Data: []byte("x")},
		{Name: "b.pdf", ContentType: "application/pdf", Data: []byte("y")},
	}

	_, err := pipeline.UploadImages(context.Background(), caller(), files)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UPLOAD_FAILED"))
	// Nothing was stored.
	assert.Empty(t, store.puts)

	domainErr := apperrors.ToDomainError(err)
	assert.Contains(t, domainErr.Message, "a.txt")
	assert.Contains(t, domainErr.Message, "b.pdf")
}

func TestUploadImages_StoreFailureIsPerFile(t *testing.T) {
	store := &fakeObjectStore{failAll: true}
	pipeline := newTestPipeline(store)

	_, err := pipeline.UploadImages(context.Background(), caller(), []FileInput{jpeg("a.jpg")})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UPLOAD_FAILED"))
}

func TestObjectKey_SameMillisecondDistinct(t *testing.T) {
	at := time.Now()
	first := objectKey("u1", "photo.jpg", at)
	second := objectKey("u1", "photo.jpg", at)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "u1/"))
	assert.True(t, strings.HasSuffix(first, ".jpg"))
}

func TestObjectKey_Extension(t *testing.T) {
	key := objectKey("u1", "IMG_0042.HEIC", time.Now())
	assert.True(t, strings.HasSuffix(key, ".heic"))
}
