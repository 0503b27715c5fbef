package procexec

import (
	"bytes"
	"log/slog"
)

// lineWriter logs every complete line written to it. Each instance is fed by
// a single copying goroutine inside os/exec, so it needs no locking.
type lineWriter struct {
	logger *slog.Logger
	stream string
	buf    []byte
}

func newLineWriter(logger *slog.Logger, stream string) *lineWriter {
	return &lineWriter{logger: logger, stream: stream}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// flush logs a trailing line that was not newline terminated.
func (w *lineWriter) flush() {
	if len(w.buf) > 0 {
		w.emit(w.buf)
		w.buf = nil
	}
}

func (w *lineWriter) emit(line []byte) {
	line = bytes.TrimRight(line, "\r")
	w.logger.Info(string(line), "stream", w.stream)
}
