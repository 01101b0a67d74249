package refdata

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"canonpipe/internal/config"
)

// PullSnapshot downloads the three NDJSON exports (ingredients.ndjson,
// forms.ndjson, densities.ndjson) from an S3-compatible mirror into dir,
// overwriting any local copies, mirroring the teacher's S3Store/ArtifactConfig
// pattern in internal/gateway/repository/artifact.
func PullSnapshot(ctx context.Context, cfg config.S3Config, dir string) error {
	if !cfg.CanUseS3() {
		return nil
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return fmt.Errorf("refdata: init s3 client: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("refdata: mkdir %s: %w", dir, err)
	}

	for _, name := range []string{"ingredients.ndjson", "forms.ndjson", "densities.ndjson"} {
		key := strings.TrimSuffix(cfg.Prefix, "/") + "/" + name
		key = strings.TrimPrefix(key, "/")
		if err := pullOne(ctx, client, cfg.Bucket, key, filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("refdata: pull %s: %w", name, err)
		}
	}
	return nil
}

func pullOne(ctx context.Context, client *minio.Client, bucket, key, destPath string) error {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return err
	}
	defer obj.Close()

	if _, statErr := obj.Stat(); statErr != nil {
		errResp := minio.ToErrorResponse(statErr)
		if errResp.Code == "NoSuchKey" {
			return nil // optional table export; loadDir tolerates a missing file
		}
		return statErr
	}

	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, obj)
	return err
}
