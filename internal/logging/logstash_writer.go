package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

const (
	dialTimeout   = 2 * time.Second
	writeTimeout  = time.Second
	retryInterval = 5 * time.Second
)

// LogstashWriter mirrors log output to a Logstash TCP input. Writes never
// block the caller on network trouble; while Logstash is unreachable the
// payloads are dropped and a reconnect is attempted after a cool-down.
type LogstashWriter struct {
	addr string

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool
}

func NewLogstashWriter(addr string) (*LogstashWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}
	return &LogstashWriter{addr: addr}, nil
}

// Write implements io.Writer. It always reports the full length as written so
// a MultiWriter wrapping stdout keeps working when Logstash is down.
func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	data := make([]byte, len(p))
	copy(data, p)
	if data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}

	if w.conn == nil {
		if !w.nextRetry.IsZero() && time.Now().Before(w.nextRetry) {
			return len(p), nil
		}
		conn, err := net.DialTimeout("tcp", w.addr, dialTimeout)
		if err != nil {
			w.nextRetry = time.Now().Add(retryInterval)
			return len(p), nil
		}
		w.conn = conn
		w.nextRetry = time.Time{}
	}

	_ = w.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := w.conn.Write(data); err != nil {
		_ = w.conn.Close()
		w.conn = nil
		w.nextRetry = time.Now().Add(retryInterval)
	}

	return len(p), nil
}

func (w *LogstashWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}
