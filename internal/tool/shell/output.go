package shell

import (
	"bytes"

	"github.com/aide-cli/aide/internal/tool/fsutil"
)

// collector captures command output with a size limit and binary content
// detection.
type collector struct {
	buffer    bytes.Buffer
	maxBytes  int
	truncated bool
	isBinary  bool

	bytesChecked int
	detector     *fsutil.BinaryDetector
}

func newCollector(maxBytes int, detector *fsutil.BinaryDetector) *collector {
	return &collector{
		maxBytes: maxBytes,
		detector: detector,
	}
}

func (c *collector) Write(p []byte) (int, error) {
	if c.isBinary {
		return len(p), nil
	}

	if c.bytesChecked < c.detector.SampleSize {
		remaining := c.detector.SampleSize - c.bytesChecked
		toCheck := p
		if len(toCheck) > remaining {
			toCheck = toCheck[:remaining]
		}
		if c.detector.IsBinaryContent(toCheck) {
			c.isBinary = true
			c.truncated = true
			return len(p), nil
		}
		c.bytesChecked += len(toCheck)
	}

	remainingSpace := c.maxBytes - c.buffer.Len()
	if remainingSpace <= 0 {
		c.truncated = true
		return len(p), nil
	}

	toWrite := p
	if len(toWrite) > remainingSpace {
		toWrite = toWrite[:remainingSpace]
		c.truncated = true
	}
	if _, err := c.buffer.Write(toWrite); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *collector) String() string {
	if c.isBinary {
		return "[binary output]"
	}
	return c.buffer.String()
}

func (c *collector) Truncated() bool {
	return c.truncated
}
