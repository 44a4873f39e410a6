package upload

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prodline/workorder-tracker/internal/identity"
	"github.com/prodline/workorder-tracker/internal/storage"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

// allowedImageTypes lists the declared media types accepted for ticket
// images.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
	"image/heic": {},
}

// FileInput is one candidate file from a multipart request.
type FileInput struct {
	Name        string
	ContentType string
	Data        []byte
}

// Result aggregates one upload batch. It lives for the duration of the
// call and is never persisted.
type Result struct {
	URLs    []string
	Errors  []string
	Partial bool
}

// Pipeline validates, names, stores, and aggregates a batch of images.
type Pipeline struct {
	store       storage.ObjectStore
	logger      *zap.Logger
	maxBatch    int
	maxFileSize int64
	putTimeout  time.Duration
}

// Options tune batch and per-file limits.
type Options struct {
	MaxBatchSize     int
	MaxFileSizeBytes int64
	PutTimeout       time.Duration
}

// NewPipeline constructs the pipeline, falling back to the tracker's
// stock limits (5 files, 5 MiB, 60s per write) for unset options.
func NewPipeline(store storage.ObjectStore, logger *zap.Logger, opts Options) *Pipeline {
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = 5
	}
	if opts.MaxFileSizeBytes <= 0 {
		opts.MaxFileSizeBytes = 5 * 1024 * 1024
	}
	if opts.PutTimeout <= 0 {
		opts.PutTimeout = 60 * time.Second
	}
	return &Pipeline{
		store:       store,
		logger:      logger,
		maxBatch:    opts.MaxBatchSize,
		maxFileSize: opts.MaxFileSizeBytes,
		putTimeout:  opts.PutTimeout,
	}
}

// UploadImages processes every file independently: a validation or store
// failure for one file never blocks the others, and nothing is rolled
// back. Successes keep input order.
func (p *Pipeline) UploadImages(ctx context.Context, caller *identity.Identity, files []FileInput) (*Result, error) {
	if len(files) == 0 {
		return nil, apperrors.NewNoFiles()
	}
	if len(files) > p.maxBatch {
		return nil, apperrors.NewTooManyFiles(p.maxBatch)
	}

	outcomes := make([]fileOutcome, 0, len(files))
	for _, file := range files {
		outcomes = append(outcomes, p.processFile(ctx, caller.ID, file))
	}
	return aggregate(outcomes)
}

type fileOutcome struct {
	url string
	err string
}

func (p *Pipeline) processFile(ctx context.Context, userID string, file FileInput) fileOutcome {
	if _, ok := allowedImageTypes[strings.ToLower(file.ContentType)]; !ok {
		return fileOutcome{err: fmt.Sprintf("%s: invalid file type %s", file.Name, file.ContentType)}
	}
	if int64(len(file.Data)) > p.maxFileSize {
		return fileOutcome{err: fmt.Sprintf("%s: file exceeds %d bytes", file.Name, p.maxFileSize)}
	}

	key := objectKey(userID, file.Name, time.Now())

	putCtx, cancel := context.WithTimeout(ctx, p.putTimeout)
	defer cancel()
	if err := p.store.Put(putCtx, key, file.Data, file.ContentType); err != nil {
		if p.logger != nil {
			p.logger.Warn("image store failed",
				zap.String("user_id", userID),
				zap.String("file", file.Name),
				zap.Error(err),
			)
		}
		return fileOutcome{err: fmt.Sprintf("%s: upload failed", file.Name)}
	}
	return fileOutcome{url: p.store.PublicURL(key)}
}

// objectKey derives a storage key from the caller, the current time, a
// random disambiguator, and the original extension. The random component
// keeps two same-millisecond uploads from colliding.
func objectKey(userID, fileName string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s/%d-%s%s", userID, at.UnixMilli(), uuid.NewString(), ext)
}

// aggregate folds per-file outcomes into the batch result. It is pure:
// the same outcomes give the same result whether writes ran sequentially
// or not.
func aggregate(outcomes []fileOutcome) (*Result, error) {
	result := &Result{}
	for _, outcome := range outcomes {
		if outcome.err != "" {
			result.Errors = append(result.Errors, outcome.err)
			continue
		}
		result.URLs = append(result.URLs, outcome.url)
	}
	if len(result.URLs) == 0 {
		return nil, apperrors.NewUploadFailed(strings.Join(result.Errors, "; "))
	}
	result.Partial = len(result.Errors) > 0
	return result, nil
}
