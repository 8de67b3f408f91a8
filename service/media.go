package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

type UploadResult struct {
	PublicID       string
	CompressedSize int64
	Duration       float64
}

// MediaStore is the external media provider: it owns the binary asset,
// compresses it and reports what the probe saw.
type MediaStore interface {
	Upload(ctx context.Context, file io.Reader, fileName string) (*UploadResult, error)
	Remove(ctx context.Context, publicID string) error
}

type minioMediaStore struct {
	client *minio.Client
	bucket string
}

func NewMinioMediaStore(client *minio.Client, bucket string) MediaStore {
	return &minioMediaStore{
		client: client,
		bucket: bucket,
	}
}

func (m *minioMediaStore) Upload(ctx context.Context, file io.Reader, fileName string) (*UploadResult, error) {
	tempDir := filepath.Join("temp", uuid.New().String())
	if err := os.MkdirAll(tempDir, os.ModePerm); err != nil {
		return nil, errors.Join(ErrExternalService, err)
	}
	defer os.RemoveAll(tempDir)

	inputPath := filepath.Join(tempDir, filepath.Base(fileName))
	input, err := os.Create(inputPath)
	if err != nil {
		return nil, errors.Join(ErrExternalService, err)
	}
	if _, err = io.Copy(input, file); err != nil {
		input.Close()
		return nil, errors.Join(ErrExternalService, err)
	}
	if err = input.Close(); err != nil {
		return nil, errors.Join(ErrExternalService, err)
	}

	outputPath := filepath.Join(tempDir, "compressed.mp4")
	zerolog.Ctx(ctx).Info().Str("input", inputPath).Msg("compressing upload")
	if err = compressVideo(inputPath, outputPath); err != nil {
		return nil, errors.Join(ErrExternalService, err)
	}

	duration, err := probeDuration(outputPath)
	if err != nil {
		return nil, errors.Join(ErrExternalService, err)
	}

	stat, err := os.Stat(outputPath)
	if err != nil {
		return nil, errors.Join(ErrExternalService, err)
	}

	publicID := "videos/" + uuid.New().String() + ".mp4"
	_, err = m.client.FPutObject(ctx, m.bucket, publicID, outputPath, minio.PutObjectOptions{
		ContentType: "video/mp4",
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to upload compressed file")
		return nil, errors.Join(ErrExternalService, err)
	}

	return &UploadResult{
		PublicID:       publicID,
		CompressedSize: stat.Size(),
		Duration:       duration,
	}, nil
}

func (m *minioMediaStore) Remove(ctx context.Context, publicID string) error {
	err := m.client.RemoveObject(ctx, m.bucket, publicID, minio.RemoveObjectOptions{})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("public_id", publicID).Msg("failed to remove media asset")
		return errors.Join(ErrExternalService, err)
	}
	return nil
}

func compressVideo(inputPath, outputPath string) error {
	ffmpegArgs := []string{
		"-i", inputPath,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "28",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		outputPath,
	}

	cmd := exec.Command("ffmpeg", ffmpegArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg execution failed: %w: %s", err, string(output))
	}

	return nil
}

func probeDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe execution failed: %w: %s", err, string(output))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe returned unparsable duration: %w", err)
	}

	return duration, nil
}
