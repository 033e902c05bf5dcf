//go:build !windows

package safefile

import (
	"errors"
	"path/filepath"
	"syscall"
	"testing"
)

func TestRejectsFIFO(t *testing.T) {
	fifo := filepath.Join(t.TempDir(), "log.pipe")
	if err := syscall.Mkfifo(fifo, 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := OpenRegular(fifo); !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("OpenRegular() error = %v, want ErrNotRegularFile", err)
	}
	if _, err := ReadFile(fifo, 0); !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("ReadFile() error = %v, want ErrNotRegularFile", err)
	}
}
