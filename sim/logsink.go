package sim

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// LogSink writes execution log lines to the monitor, a file, or both.
type LogSink struct {
	monitor io.Writer // nil when not logging to the monitor
	console io.Writer // always set; receives error reports
	file    *os.File
	writer  *bufio.Writer
}

// NewLogSink opens the destinations selected by dest. console stands in for
// the monitor (os.Stdout in the CLI). An unknown destination or a file
// destination without a path is an error and nothing is opened.
func NewLogSink(dest LogDestination, path string, console io.Writer) (*LogSink, error) {
	if console == nil {
		console = os.Stdout
	}
	if !IsValidLogDestination(string(dest)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLogDestination, dest)
	}
	s := &LogSink{console: console}
	if dest == LogToMonitor || dest == LogToBoth {
		s.monitor = console
	}
	if dest == LogToFile || dest == LogToBoth {
		if path == "" {
			return nil, ErrMissingLogFilePath
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", path, err)
		}
		s.file = f
		s.writer = bufio.NewWriter(f)
	}
	return s, nil
}

// NewWriterSink logs to w only. Used by tests and embedders that manage
// their own output.
func NewWriterSink(w io.Writer) *LogSink {
	return &LogSink{monitor: w, console: w}
}

// WriteLine writes one log line to every selected destination.
func (s *LogSink) WriteLine(line string) error {
	if s.monitor != nil {
		if _, err := fmt.Fprintln(s.monitor, line); err != nil {
			return err
		}
	}
	if s.writer != nil {
		if _, err := fmt.Fprintln(s.writer, line); err != nil {
			return err
		}
	}
	return nil
}

// ReportError writes msg to the console only, whatever the destination.
func (s *LogSink) ReportError(msg string) {
	fmt.Fprintln(s.console, msg)
}

// Close flushes and closes the log file, if one was opened.
func (s *LogSink) Close() error {
	if s.file == nil {
		return nil
	}
	flushErr := s.writer.Flush()
	closeErr := s.file.Close()
	s.file, s.writer = nil, nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
