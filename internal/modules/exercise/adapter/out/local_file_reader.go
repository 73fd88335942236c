package out

import (
	"context"
	"fmt"
	"os"

	exerciseout "drill/internal/modules/exercise/port/out"
)

type LocalFileReader struct{}

func NewLocalFileReader() exerciseout.FileReader {
	return &LocalFileReader{}
}

func (r *LocalFileReader) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read exercise file: %w", err)
	}
	return string(b), nil
}
