package taskboard

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"
)

// TimeLayout is the text form of start times in the snapshot file
const TimeLayout = "2006-01-02T15:04:05"

var fileHeader = []string{"id", "type", "name", "status", "description", "epic", "start_time", "duration"}

// FileRepository stores a full snapshot of the store as one line per item.
// No caching - always reads/writes the whole file. File locking prevents races.
type FileRepository struct {
	filePath string
}

// NewFileRepository creates a repository backed by filePath, creating its
// directory if needed. The file itself is created on first use.
func NewFileRepository(filePath string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileRepository{
		filePath: filePath,
	}, nil
}

// Load reads every item from the file. A missing or empty file holds no items.
// Lock → Read → Decode → Unlock
func (r *FileRepository) Load() ([]Entity, error) {
	var items []Entity

	err := r.withFileLock(func(file *os.File) error {
		var err error
		items, err = r.readItems(file)
		return err
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Save replaces the file contents with items, in the given order.
// Lock → Truncate → Write → Unlock
func (r *FileRepository) Save(items []Entity) error {
	return r.withFileLock(func(file *os.File) error {
		return r.writeItems(file, items)
	})
}

// withFileLock executes a function with the file locked
func (r *FileRepository) withFileLock(fn func(*os.File) error) error {
	// Open file for read/write, create if not exists
	file, err := os.OpenFile(r.filePath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Acquire exclusive lock
	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("failed to lock file: %w", err)
	}
	defer syscall.Flock(int(file.Fd()), syscall.LOCK_UN)

	return fn(file)
}

// readItems decodes every line after the header
func (r *FileRepository) readItems(file *os.File) ([]Entity, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(fileHeader)

	// Skip header; an empty file has none
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []Entity{}, nil
		}
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedRecord, err)
	}

	var items []Entity
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}

		line, _ := reader.FieldPos(0)
		item, err := decodeRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// writeItems encodes items after a fresh header
func (r *FileRepository) writeItems(file *os.File, items []Entity) error {
	// Truncate file
	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate file: %w", err)
	}

	// Seek to beginning
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(fileHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, item := range items {
		if err := writer.Write(encodeRecord(item)); err != nil {
			return fmt.Errorf("failed to write item %d: %w", item.Base().ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func encodeRecord(e Entity) []string {
	base := e.Base()

	epic := ""
	if st, ok := e.(*Subtask); ok {
		epic = strconv.Itoa(st.EpicID)
	}

	start := ""
	if base.StartTime != nil {
		start = base.StartTime.UTC().Format(TimeLayout)
	}

	return []string{
		strconv.Itoa(base.ID),
		string(e.Kind()),
		base.Name,
		string(base.Status),
		base.Description,
		epic,
		start,
		strconv.FormatInt(int64(base.Duration/time.Second), 10),
	}
}

func decodeRecord(record []string) (Entity, error) {
	id, err := strconv.Atoi(record[0])
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid id %q", record[0])
	}
	kind, err := ParseKind(record[1])
	if err != nil {
		return nil, err
	}
	status, err := ParseStatus(record[3])
	if err != nil {
		return nil, err
	}

	item := Item{
		ID:          id,
		Name:        record[2],
		Status:      status,
		Description: record[4],
	}

	if record[6] != "" {
		start, err := time.Parse(TimeLayout, record[6])
		if err != nil {
			return nil, fmt.Errorf("invalid start time %q", record[6])
		}
		item.StartTime = &start
	}

	seconds, err := strconv.ParseInt(record[7], 10, 64)
	if err != nil || seconds < 0 || seconds > math.MaxInt64/int64(time.Second) {
		return nil, fmt.Errorf("invalid duration %q", record[7])
	}
	item.Duration = time.Duration(seconds) * time.Second

	switch kind {
	case KindTask:
		return &Task{Item: item}, nil
	case KindEpic:
		return &Epic{Item: item}, nil
	default:
		epicID, err := strconv.Atoi(record[5])
		if err != nil || epicID <= 0 {
			return nil, fmt.Errorf("invalid epic id %q", record[5])
		}
		return &Subtask{Item: item, EpicID: epicID}, nil
	}
}
