package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"stylekit/registry"
)

// stdout may be replaced in tests.
var stdout io.Writer = os.Stdout

// writeOutput stores produced content in dst or writes it to STDOUT when
// destination is empty.
func writeOutput(dst string, writeTo func(io.Writer) (int64, error), log *zap.Logger) (err error) {
	if len(dst) == 0 {
		n, err := writeTo(stdout)
		if err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		log.Debug("Output written", zap.String("file", "STDOUT"), zap.Int64("bytes", n))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create output file '%s': %w", dst, err)
	}
	defer func() {
		if er := out.Close(); er != nil && err == nil {
			err = fmt.Errorf("unable to close output file '%s': %w", dst, er)
		}
	}()

	n, err := writeTo(out)
	if err != nil {
		return fmt.Errorf("unable to write output file '%s': %w", dst, err)
	}
	log.Info("Output written", zap.String("file", dst), zap.Int64("bytes", n))
	return nil
}

// stylesheet concatenates rules of every registered class in natural order
// of class names.
func stylesheet(reg *registry.Registry) *bytes.Buffer {
	buf := &bytes.Buffer{}
	for _, class := range reg.Classes() {
		if css, ok := reg.CSS(class); ok {
			buf.WriteString(css)
			buf.WriteByte('\n')
		}
	}
	return buf
}
