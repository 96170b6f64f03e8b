package antivirus

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// chunkSize stays well below clamd's default StreamMaxLength.
const chunkSize = 64 * 1024

// ClamAVScanner talks to a clamd daemon over its INSTREAM protocol
type ClamAVScanner struct {
	address string        // TCP "host:port" or a Unix socket path
	timeout time.Duration // Dial plus scan deadline
}

var _ Scanner = (*ClamAVScanner)(nil)

func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{
		address: address,
		timeout: timeout,
	}
}

func (c *ClamAVScanner) Name() string {
	return "clamav"
}

func (c *ClamAVScanner) network() string {
	if strings.HasPrefix(c.address, "/") {
		return "unix"
	}
	return "tcp"
}

// Scan streams data to clamd in chunks and parses its verdict.
func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data []byte) (ScanResult, error) {
	result := ScanResult{ScannerName: c.Name()}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, c.network(), c.address)
	if err != nil {
		return result, fmt.Errorf("connect to clamd: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := conn.Write([]byte("zINSTREAM\x00")); err != nil {
		return result, fmt.Errorf("send command: %w", err)
	}

	size := make([]byte, 4)
	for start := 0; start < len(data); start += chunkSize {
		end := start + chunkSize
		if end > len(data) {
			end = len(data)
		}
		binary.BigEndian.PutUint32(size, uint32(end-start))
		if _, err := conn.Write(size); err != nil {
			return result, fmt.Errorf("send chunk size: %w", err)
		}
		if _, err := conn.Write(data[start:end]); err != nil {
			return result, fmt.Errorf("send chunk: %w", err)
		}
	}

	// zero-length chunk terminates the stream
	if _, err := conn.Write([]byte{0, 0, 0, 0}); err != nil {
		return result, fmt.Errorf("send end marker: %w", err)
	}

	reply, err := io.ReadAll(io.LimitReader(conn, 1024))
	if err != nil && len(reply) == 0 {
		return result, fmt.Errorf("read reply for %s: %w", filename, err)
	}

	infected, threat, err := parseReply(string(reply))
	if err != nil {
		return result, err
	}
	result.Infected = infected
	result.ThreatName = threat
	return result, nil
}

// parseReply interprets clamd replies:
//
//	stream: OK
//	stream: Eicar-Signature FOUND
//	stream: <message> ERROR
func parseReply(reply string) (bool, string, error) {
	reply = strings.TrimRight(strings.TrimSpace(reply), "\x00")
	_, verdict, ok := strings.Cut(reply, ":")
	if !ok {
		return false, "", fmt.Errorf("unexpected clamd reply %q", reply)
	}
	verdict = strings.TrimSpace(verdict)

	switch {
	case verdict == "OK":
		return false, "", nil
	case strings.HasSuffix(verdict, "FOUND"):
		return true, strings.TrimSpace(strings.TrimSuffix(verdict, "FOUND")), nil
	default:
		return false, "", fmt.Errorf("clamd scan error: %s", verdict)
	}
}
