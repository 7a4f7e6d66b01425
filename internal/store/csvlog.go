package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/abhisek/learntwin/internal/attempt"
	"github.com/abhisek/learntwin/internal/questionbank"
)

// CSVLog stores attempts in a CSV file with a header row.
//
// Each append encodes the full row into memory and issues one write on an
// O_APPEND descriptor, so concurrent writers never interleave partial rows.
// A file whose last row lacks a newline (hand-edited or exported by a
// spreadsheet) is terminated by the next append. Readers keep such a row
// only when it has a full set of fields.
type CSVLog struct {
	path   string
	logger *slog.Logger
	mu     *sync.Mutex
}

// fileLocks holds one mutex per log file so separate handles on the same
// path serialize their appends.
var fileLocks sync.Map // map[string]*sync.Mutex

func lockFor(path string) *sync.Mutex {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	mu, _ := fileLocks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

var _ AttemptRepo = (*CSVLog)(nil)

// OpenCSV returns a CSV log at path. The file is created on first append.
func OpenCSV(path string, logger *slog.Logger) *CSVLog {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CSVLog{path: path, logger: logger, mu: lockFor(path)}
}

// Path returns the file backing the log.
func (l *CSVLog) Path() string { return l.path }

// Close is a no-op; the file is opened per operation.
func (l *CSVLog) Close() error { return nil }

func (l *CSVLog) Append(ctx context.Context, r attempt.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	header, err := l.readHeader()
	if err != nil {
		return err
	}

	if header == nil {
		if err := EnsureDir(l.path); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		switch {
		case err == nil:
			defer f.Close()
			return l.write(f, Columns, r, true)
		case errors.Is(err, fs.ErrExist):
			// Another writer created it, or it exists but is empty.
			if header, err = l.readHeader(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("create log: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	if header == nil {
		return l.write(f, Columns, r, true)
	}
	return l.write(f, header, r, false)
}

// unterminated reports whether the file is non-empty and does not end in a
// newline.
func unterminated(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("stat log: %w", err)
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, fmt.Errorf("read log tail: %w", err)
	}
	return last[0] != '\n', nil
}

// write encodes r in the column order of header and writes it, preceded by
// the header itself when withHeader is set, in a single call.
func (l *CSVLog) write(f *os.File, header []string, r attempt.Record, withHeader bool) error {
	var buf bytes.Buffer
	needsNewline, err := unterminated(f)
	if err != nil {
		return err
	}
	if needsNewline {
		buf.WriteByte('\n')
	}
	w := csv.NewWriter(&buf)
	if withHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("encode header: %w", err)
		}
	}
	row := make([]string, len(header))
	for i, col := range header {
		row[i] = fieldValue(col, r)
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode row: %w", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

func fieldValue(col string, r attempt.Record) string {
	switch col {
	case "user":
		return strings.TrimSpace(r.User)
	case "question_id":
		return strings.TrimSpace(r.QuestionID)
	case "topic":
		return r.Topic
	case "chapter":
		return r.Chapter
	case "difficulty":
		return string(r.Difficulty)
	case "correct_numeric", legacyCorrectColumn:
		return r.Correct.String()
	case "time_taken":
		if !r.HasTime() {
			return ""
		}
		return strconv.FormatFloat(r.TimeTaken, 'f', -1, 64)
	case "timestamp":
		return r.Timestamp
	default:
		return ""
	}
}

// readHeader returns the existing header, or nil if the file is missing or empty.
func (l *CSVLog) readHeader() ([]string, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	header, err := csv.NewReader(bufio.NewReader(f)).Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read log header: %w", err)
	}
	return normalizeHeader(header), nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}

func (l *CSVLog) LoadAll(ctx context.Context) ([]attempt.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if n := len(data); n > 0 && data[n-1] != '\n' {
		cut := bytes.LastIndexByte(data, '\n') + 1
		if cut > 0 && !completeRow(data[:cut], data[cut:]) {
			data = data[:cut]
		}
	}
	return l.decode(data)
}

// completeRow reports whether tail, a last line without a newline, carries
// as many fields as the header at the top of head. A shorter tail is a row
// still being written.
func completeRow(head, tail []byte) bool {
	header, err := csv.NewReader(bytes.NewReader(head)).Read()
	if err != nil {
		return false
	}
	row, err := csv.NewReader(bytes.NewReader(tail)).Read()
	if err != nil {
		return false
	}
	return len(row) == len(header)
}

func (l *CSVLog) decode(data []byte) ([]attempt.Record, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	raw, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read log header: %w", err)
	}
	header := normalizeHeader(raw)
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[h] = i
	}

	var records []attempt.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			l.logger.Warn("skipping unparsable log row", "path", l.path, "line", perr.Line, "error", perr.Err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		if slices.Equal(normalizeHeader(row), header) {
			continue
		}
		if len(row) != len(header) {
			l.logger.Warn("skipping malformed log row", "path", l.path, "line", line, "fields", len(row), "want", len(header))
			continue
		}
		records = append(records, decodeRow(row, cols))
	}
	return records, nil
}

func decodeRow(row []string, cols map[string]int) attempt.Record {
	get := func(col string) string {
		if i, ok := cols[col]; ok {
			return row[i]
		}
		return ""
	}

	// Prefer the numeric column; fall back to the legacy boolean column,
	// and to Unknown when neither exists.
	correct := attempt.ParseCorrectness(get("correct_numeric"))
	if !correct.IsKnown() {
		if _, ok := cols[legacyCorrectColumn]; ok {
			correct = attempt.ParseCorrectness(get(legacyCorrectColumn))
		}
	}

	timeTaken, err := strconv.ParseFloat(strings.TrimSpace(get("time_taken")), 64)
	if err != nil {
		timeTaken = math.NaN()
	}

	return attempt.Record{
		User:       strings.TrimSpace(get("user")),
		QuestionID: strings.TrimSpace(get("question_id")),
		Topic:      get("topic"),
		Chapter:    get("chapter"),
		Difficulty: questionbank.Difficulty(strings.TrimSpace(get("difficulty"))),
		Correct:    correct,
		TimeTaken:  timeTaken,
		Timestamp:  get("timestamp"),
	}
}
