package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/tunewave/tunewave/internal/models"
)

// streamChunkSize bounds single reads from a streamed track body.
const streamChunkSize = 8 * 1024

// S3Client interface for testability
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3BlobRepository stores audio objects in the music bucket and cover images
// in the cover bucket of an S3-compatible endpoint.
type S3BlobRepository struct {
	client      S3Client
	musicBucket string
	coverBucket string
}

// NewBlobRepository creates a new S3BlobRepository.
func NewBlobRepository(client S3Client, musicBucket, coverBucket string) *S3BlobRepository {
	return &S3BlobRepository{
		client:      client,
		musicBucket: musicBucket,
		coverBucket: coverBucket,
	}
}

// EnsureBuckets creates the music and cover buckets when they are missing.
func (r *S3BlobRepository) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range []string{r.musicBucket, r.coverBucket} {
		_, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
		if err == nil {
			continue
		}
		if !isNotFoundError(err) {
			return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if _, err := r.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}
	return nil
}

// trackKey derives the music-bucket key for a track.
func trackKey(track *models.Track) string {
	return fmt.Sprintf("%d/%d", track.ArtistID, track.ID)
}

// PutTrack writes the audio object for a track.
func (r *S3BlobRepository) PutTrack(ctx context.Context, track *models.Track, data []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.musicBucket),
		Key:         aws.String(trackKey(track)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to store track audio: %w", err)
	}
	return nil
}

// StreamTrack opens a ranged read over [start, end]. The returned stream
// yields at most 8 KiB per read and releases the connection on Close; it is
// finite and non-restartable.
func (r *S3BlobRepository) StreamTrack(ctx context.Context, track *models.Track, start, end int64) (*models.TrackStream, error) {
	contentLength := end - start + 1
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.musicBucket),
		Key:    aws.String(trackKey(track)),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", start, end)),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, musicFileNotFound(track)
		}
		return nil, fmt.Errorf("failed to open track stream: %w", err)
	}

	return &models.TrackStream{
		Stream:        &chunkedBody{body: out.Body, limit: contentLength},
		Start:         start,
		End:           end,
		ContentLength: contentLength,
	}, nil
}

// StatTrack reports the stored size of the track's audio object.
func (r *S3BlobRepository) StatTrack(ctx context.Context, track *models.Track) (*models.MusicFileStats, error) {
	out, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.musicBucket),
		Key:    aws.String(trackKey(track)),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, musicFileNotFound(track)
		}
		return nil, fmt.Errorf("failed to stat track audio: %w", err)
	}
	return &models.MusicFileStats{Size: aws.ToInt64(out.ContentLength)}, nil
}

// DeleteTrack removes the track's audio object; deleting an absent object is
// reported as not-found so compensating cleanup can treat it as success.
func (r *S3BlobRepository) DeleteTrack(ctx context.Context, track *models.Track) error {
	return r.deleteObject(ctx, r.musicBucket, trackKey(track), musicFileNotFound(track))
}

// PutImage writes a cover image for the target.
func (r *S3BlobRepository) PutImage(ctx context.Context, target models.ImageTarget, data []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.coverBucket),
		Key:         aws.String(target.ObjectKey()),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to store image: %w", err)
	}
	return nil
}

// GetImage reads the whole cover image for the target.
func (r *S3BlobRepository) GetImage(ctx context.Context, target models.ImageTarget) ([]byte, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.coverBucket),
		Key:    aws.String(target.ObjectKey()),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, imageFileNotFound(target)
		}
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	return data, nil
}

// DeleteImage removes the cover image for the target, reporting not-found
// for absent objects.
func (r *S3BlobRepository) DeleteImage(ctx context.Context, target models.ImageTarget) error {
	return r.deleteObject(ctx, r.coverBucket, target.ObjectKey(), imageFileNotFound(target))
}

// deleteObject stats before deleting: S3 DeleteObject succeeds on absent
// keys, and the callers need absence surfaced.
func (r *S3BlobRepository) deleteObject(ctx context.Context, bucket, key string, notFound error) error {
	_, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return notFound
		}
		return fmt.Errorf("failed to stat object before delete: %w", err)
	}
	_, err = r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func musicFileNotFound(track *models.Track) error {
	return models.NewNotFoundErrorWithCode(models.CodeMusicFileMissing, "audio for track", track.ID)
}

func imageFileNotFound(target models.ImageTarget) error {
	return models.NewNotFoundErrorWithCode(models.CodeImageFileMissing,
		fmt.Sprintf("image for %s", target.Kind), target.ID)
}

// chunkedBody caps single reads at the streaming chunk size and hard-limits
// the total bytes handed out to the planned content length.
type chunkedBody struct {
	body      io.ReadCloser
	limit     int64
	delivered int64
}

func (c *chunkedBody) Read(p []byte) (int, error) {
	remaining := c.limit - c.delivered
	if remaining <= 0 {
		return 0, io.EOF
	}
	max := int64(streamChunkSize)
	if remaining < max {
		max = remaining
	}
	if int64(len(p)) > max {
		p = p[:max]
	}
	n, err := c.body.Read(p)
	c.delivered += int64(n)
	return n, err
}

func (c *chunkedBody) Close() error {
	return c.body.Close()
}

// isNotFoundError checks if an error is a "not found" error from S3.
// Uses errors.As to unwrap the AWS SDK error chain (e.g. *smithyhttp.ResponseError).
func isNotFoundError(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return true
	}
	// Fallback: check HTTP status code for wrapped 404 responses
	var respErr interface{ HTTPStatusCode() int }
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return true
	}
	return false
}
