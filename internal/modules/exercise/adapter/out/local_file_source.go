package out

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"drill/internal/modules/exercise/domain"
	exerciseout "drill/internal/modules/exercise/port/out"
	"drill/internal/platform/logging"
)

type LocalFileSource struct {
	logger *zap.Logger
}

func NewLocalFileSource(logger *zap.Logger) exerciseout.FileSource {
	return &LocalFileSource{logger: logging.OrNop(logger)}
}

// Expand resolves files as-is and walks directories recursively. Files found
// in a directory are named relative to the directory's parent, mirroring a
// browser folder upload ("exercises/ej1.txt").
//
// A path that cannot be stat'ed is still returned as a file upload; reading
// it fails later and its exercise side counts as missing. Folders that
// cannot be listed are logged and skipped. Only cancellation is an error.
func (s *LocalFileSource) Expand(ctx context.Context, paths []string) ([]domain.Upload, error) {
	var out []domain.Upload
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			out = append(out, domain.Upload{Name: filepath.ToSlash(path), Path: path})
			continue
		}
		base := filepath.Dir(filepath.Clean(path))
		_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && !d.IsDir() {
					out = append(out, s.upload(base, p, d))
					return nil
				}
				s.logger.Warn("skip unreadable folder", zap.String("path", p), zap.Error(err))
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() {
				return nil
			}
			out = append(out, s.upload(base, p, d))
			return nil
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LocalFileSource) upload(base, p string, d fs.DirEntry) domain.Upload {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		rel = d.Name()
	}
	return domain.Upload{Name: filepath.ToSlash(rel), Path: p}
}
