package grid

import (
	"log"
	"strings"
)

type lineWriter struct {
	lines *[]string
}

func (w lineWriter) Write(p []byte) (int, error) {
	*w.lines = append(*w.lines, strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func logRecorder(lines *[]string) *log.Logger {
	return log.New(lineWriter{lines: lines}, "", 0)
}
