package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/khanhnv2901/srcaudit-cli/internal/shared/constants"
	sharederrors "github.com/khanhnv2901/srcaudit-cli/internal/shared/errors"
)

// ScanFile reads one file line by line and records, per matching
// category, the 1-based line number and the trimmed line text. Bytes
// that are not valid UTF-8 are replaced rather than failing the file.
// An open or read failure is returned as an error so the walker can
// downgrade it to a warning and keep going; an empty FileResult means
// the file was scanned and is clean.
func ScanFile(path string, m *Matcher) (FileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", sharederrors.ErrFileUnreadable, path, err)
	}
	defer f.Close()

	result := FileResult{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), constants.MaxLineBytes)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := string(bytes.ToValidUTF8(sc.Bytes(), []byte("�")))
		for _, category := range m.Match(line) {
			result[category] = append(result[category], Finding{
				Line: lineNo,
				Text: strings.TrimSpace(line),
			})
		}
	}
	if err := sc.Err(); err != nil {
		// Covers oversized lines (bufio.ErrTooLong) and mid-read I/O
		// failures; both mean we cannot trust the file as text.
		return nil, fmt.Errorf("%w: %s: %v", sharederrors.ErrFileUnreadable, path, err)
	}
	return result, nil
}
