package blob

import (
	"context"
	"fmt"
	"os"
)

// Open selects a Store implementation from the environment:
//
//	BLOB_DRIVER: fs|s3|memory (default fs)
//	BLOB_FS_ROOT: directory root when driver=fs (default ./blobdata)
//	(S3 variables documented in s3.go)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("BLOB_DRIVER")
	if driver == "" {
		driver = "fs"
	}
	switch driver {
	case "fs":
		return NewFilesystem(os.Getenv("BLOB_FS_ROOT"))
	case "s3":
		return OpenS3FromEnv(ctx)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
