package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"stylekit/archive"
	"stylekit/sheet"
)

// stdin may be used as a source name.
const stdinSource = "-"

var stdin io.Reader = os.Stdin

// loadSources reads descriptions from every source in order. A source is
// either a single file, a directory (walked recursively), a zip archive or
// path inside zip archive ("styles.zip/buttons").
func loadSources(ctx context.Context, sources []string, log *zap.Logger) ([]*described, error) {
	var docs []*described
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		loaded, err := loadSource(ctx, src, log)
		if err != nil {
			return nil, err
		}
		if len(loaded) == 0 {
			log.Debug("Nothing to process", zap.String("source", src))
		}
		docs = append(docs, loaded...)
	}
	return docs, nil
}

func loadSource(ctx context.Context, src string, log *zap.Logger) ([]*described, error) {
	if src == stdinSource {
		return decode(stdin, "STDIN")
	}

	var head string
	for head = filepath.Clean(src); len(head) != 0; head, _ = filepath.Split(head) {
		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}
		if fi.IsDir() {
			if head != filepath.Clean(src) {
				return nil, fmt.Errorf("input source was not found (%s)", src)
			}
			return loadDir(ctx, head, log)
		}
		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s)", head)
		}
		if isZip(head) {
			prefix := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(filepath.Clean(src), head), string(filepath.Separator)))
			return loadArchive(head, prefix)
		}
		if head != filepath.Clean(src) {
			return nil, fmt.Errorf("input source was not found (%s)", src)
		}
		return loadFile(head)
	}
	return nil, fmt.Errorf("input source was not found (%s)", src)
}

func loadDir(ctx context.Context, dir string, log *zap.Logger) ([]*described, error) {
	var docs []*described
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() || !archive.IsDescription(path) {
			return nil
		}
		loaded, err := loadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, loaded...)
		return nil
	})
	return docs, err
}

func loadFile(path string) ([]*described, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f, path)
}

func loadArchive(path, prefix string) ([]*described, error) {
	var docs []*described
	err := archive.Walk(path, prefix, func(name string, r io.Reader) error {
		loaded, err := decode(r, path+":"+name)
		if err != nil {
			return err
		}
		docs = append(docs, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to process archive: %w", err)
	}
	return docs, nil
}

func decode(r io.Reader, source string) ([]*described, error) {
	docs, err := sheet.Load(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	out := make([]*described, 0, len(docs))
	for _, d := range docs {
		out = append(out, &described{Document: d, source: source})
	}
	return out, nil
}

// isZip checks file signature.
func isZip(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	// zip signature is in the first bytes, filetype needs no more than 262
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false
	}
	return filetype.Is(head[:n], "zip")
}
