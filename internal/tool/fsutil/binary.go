// Package fsutil provides small filesystem helpers shared by the tools.
package fsutil

import (
	"io"
	"os"
)

// BinaryDetector implements binary content detection using null byte
// detection over the first N bytes, with special handling for UTF BOMs.
type BinaryDetector struct {
	SampleSize int
}

// NewBinaryDetector creates a detector with the specified sample size.
func NewBinaryDetector(sampleSize int) *BinaryDetector {
	return &BinaryDetector{SampleSize: sampleSize}
}

// IsBinaryContent checks whether content looks binary by scanning for null
// bytes. UTF-16 and UTF-32 BOMs are treated as text to avoid false
// positives.
func (d *BinaryDetector) IsBinaryContent(content []byte) bool {
	if len(content) >= 2 {
		if (content[0] == 0xFF && content[1] == 0xFE) ||
			(content[0] == 0xFE && content[1] == 0xFF) {
			return false // UTF-16 BOM
		}
	}
	if len(content) >= 4 {
		if (content[0] == 0xFF && content[1] == 0xFE && content[2] == 0x00 && content[3] == 0x00) ||
			(content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF) {
			return false // UTF-32 BOM
		}
	}

	sampleSize := min(len(content), d.SampleSize)
	for i := range sampleSize {
		if content[i] == 0 {
			return true
		}
	}
	return false
}

// IsBinaryFile samples the head of the file at path.
func (d *BinaryDetector) IsBinaryFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	sample := make([]byte, d.SampleSize)
	n, err := io.ReadFull(f, sample)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	return d.IsBinaryContent(sample[:n]), nil
}
