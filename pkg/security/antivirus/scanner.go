package antivirus

import (
	"context"
)

// ScanResult contains the result of a malware scan
type ScanResult struct {
	Infected    bool   // True if malware was detected
	ThreatName  string // Name of detected threat (empty if clean)
	ScannerName string // Name of scanner that produced this result
}

// Scanner is the interface for pluggable antivirus implementations.
// A non-nil error means the file could not be checked and must be rejected.
type Scanner interface {
	Scan(ctx context.Context, filename string, data []byte) (ScanResult, error)
	Name() string
}

// NoOpScanner reports every file as clean. Used when no scanner is configured.
type NoOpScanner struct{}

var _ Scanner = NoOpScanner{}

func (NoOpScanner) Scan(context.Context, string, []byte) (ScanResult, error) {
	return ScanResult{ScannerName: "noop"}, nil
}

func (NoOpScanner) Name() string {
	return "noop"
}

// New returns a ClamAV scanner for addr, or a NoOpScanner when addr is empty.
func New(addr string) Scanner {
	if addr == "" {
		return NoOpScanner{}
	}
	return NewClamAVScanner(addr, 0)
}
