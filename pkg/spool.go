// Package pkg provides shared utilities for docsight.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Spool is an append-only collection of records of type T backed by a
// temporary file, so large scans do not have to hold every record in
// memory at once.
type Spool[T any] interface {
	Len() uint64
	Append(item T) error
	Range(fn func(index uint64, item T) error) error
	Close() error
}

type fileSpool[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	length  uint64
}

// NewSpool creates a Spool backed by a fresh temporary file. Close
// removes the file.
func NewSpool[T any]() (Spool[T], error) {
	file, err := os.CreateTemp("", "docsight-spool-*.gob")
	if err != nil {
		return nil, fmt.Errorf("create spool file: %w", err)
	}

	return &fileSpool[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Len returns the number of appended records.
func (s *fileSpool[T]) Len() uint64 {
	return s.length
}

// Append encodes one record at the end of the spool.
func (s *fileSpool[T]) Append(item T) error {
	if err := s.encoder.Encode(item); err != nil {
		slog.Error("failed to encode spool record", "path", s.path, "index", s.length, "error", err)
		return fmt.Errorf("encode spool record: %w", err)
	}

	s.length++

	return nil
}

// Range replays every appended record in order. The write handle stays
// open; reading goes through a separate handle so Range can be called
// more than once.
func (s *fileSpool[T]) Range(fn func(index uint64, item T) error) error {
	reader, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open spool for read: %w", err)
	}

	defer func() { _ = reader.Close() }()

	decoder := gob.NewDecoder(reader)

	for index := uint64(0); ; index++ {
		var item T

		if err := decoder.Decode(&item); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("decode spool record %d: %w", index, err)
		}

		if err := fn(index, item); err != nil {
			return err
		}
	}
}

// Close releases the write handle and removes the backing file.
func (s *fileSpool[T]) Close() error {
	if s.file == nil {
		return nil
	}

	if err := s.file.Close(); err != nil {
		slog.Error("failed to close spool", "path", s.path, "error", err)
		return err
	}

	s.file = nil

	return os.Remove(s.path)
}
