package filereader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// readLines hands every complete line of path after offset to fn and returns
// the offset right after the last complete line. A trailing line without its
// newline is left for the next read.
func readLines(ctx context.Context, path string, offset int64, fn func(string)) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return offset, err
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset, fmt.Errorf("seek %s to %d: %w", path, offset, err)
	}

	reader := bufio.NewReader(file)
	for {
		if err := ctx.Err(); err != nil {
			return offset, err
		}

		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return offset, nil
		}
		if err != nil {
			return offset, fmt.Errorf("read %s: %w", path, err)
		}

		offset += int64(len(line))
		fn(strings.TrimRight(line, "\r\n"))
	}
}
