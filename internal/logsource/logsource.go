// Package logsource reads the log text a diagram is generated from.
//
// Files are read line by line through nxadm/tail in non-follow mode.
package logsource

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nxadm/tail"

	"github.com/log2seq/log2seq-go/internal/safefile"
)

// DefaultMaxBytes caps how much log text is read from one source.
const DefaultMaxBytes int64 = 16 << 20

// ReadFile returns the contents of the log file at path with lines joined by
// "\n". Empty lines are preserved so line indices match the file.
//
// The file must be a regular file no larger than maxBytes
// (DefaultMaxBytes if maxBytes <= 0).
func ReadFile(ctx context.Context, path string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if _, err := safefile.CheckRegular(path, maxBytes); err != nil {
		return "", fmt.Errorf("log file: %w", safefile.SanitizePathError(err))
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow:    false,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return "", fmt.Errorf("log file: %w", safefile.SanitizePathError(err))
	}
	defer t.Cleanup()
	defer func() { _ = t.Stop() }()

	var (
		lines []string
		total int64
	)
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case line, ok := <-t.Lines:
			if !ok {
				return strings.Join(lines, "\n"), nil
			}
			if line.Err != nil {
				return "", fmt.Errorf("reading log file: %w", line.Err)
			}
			total += int64(len(line.Text)) + 1
			if total > maxBytes+1 {
				return "", fmt.Errorf("log file: %w: more than %d bytes", safefile.ErrTooLarge, maxBytes)
			}
			lines = append(lines, line.Text)
		}
	}
}

// Read returns everything from r, up to maxBytes (DefaultMaxBytes if
// maxBytes <= 0). It is used for standard input and request bodies.
func Read(ctx context.Context, r io.Reader, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading log: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("log: %w: more than %d bytes", safefile.ErrTooLarge, maxBytes)
	}
	return string(data), nil
}
