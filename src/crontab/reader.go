package crontab

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yashkumarverma/cronline/src/cronitem"
	"github.com/yashkumarverma/cronline/src/utils"
	"go.uber.org/multierr"
)

// maxLineLength bounds a single crontab line
const maxLineLength = 1024 * 1024

// Entry is a crontab line that parsed successfully
type Entry struct {
	Line int
	Raw  string
	Item cronitem.CronItem
}

// LineError ties a parse failure to the line it came from
type LineError struct {
	Line int
	Raw  string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Reader parses crontab streams line by line. Blank lines and lines starting
// with '#' are not entries.
type Reader struct {
	// FailFast stops at the first malformed line instead of collecting them all
	FailFast bool
}

// NewReader creates a new crontab reader
func NewReader(failFast bool) *Reader {
	return &Reader{FailFast: failFast}
}

// Read returns every entry that parsed. Malformed lines are reported together
// as one combined error of *LineError values; use multierr.Errors to split it.
func (r *Reader) Read(ctx context.Context, src io.Reader) ([]Entry, error) {
	logger := utils.LoggerFromCtx(ctx)

	var (
		entries []Entry
		invalid error
	)
	err := r.walk(ctx, src, func(number int, raw string) error {
		if isSkippable(raw) {
			return nil
		}

		entry, lineErr := parseLine(number, raw)
		if lineErr != nil {
			logger.Warnw("Malformed crontab line", "line", number, "error", lineErr.Err)
			invalid = multierr.Append(invalid, lineErr)
			if r.FailFast {
				return errStop
			}
			return nil
		}

		logger.Debugw("Parsed crontab line", "line", number, "schedule", entry.Item.Schedule())
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return entries, multierr.Append(invalid, err)
	}

	logger.Infow("Read crontab", "entries", len(entries), "invalid", len(multierr.Errors(invalid)))
	return entries, invalid
}

// Rewrite copies src to dst with every entry in canonical form. Comments,
// blank lines and malformed lines are copied unchanged; malformed lines are
// still reported in the returned error.
func (r *Reader) Rewrite(ctx context.Context, src io.Reader, dst io.Writer) error {
	logger := utils.LoggerFromCtx(ctx)
	out := bufio.NewWriter(dst)

	var (
		invalid   error
		rewritten int
	)
	err := r.walk(ctx, src, func(number int, raw string) error {
		text := raw
		if !isSkippable(raw) {
			entry, lineErr := parseLine(number, raw)
			if lineErr != nil {
				logger.Warnw("Leaving malformed crontab line as is", "line", number, "error", lineErr.Err)
				invalid = multierr.Append(invalid, lineErr)
				if r.FailFast {
					return errStop
				}
			} else {
				text = entry.Item.String()
				if text != raw {
					rewritten++
				}
			}
		}

		if _, err := out.WriteString(text); err != nil {
			return fmt.Errorf("failed to write crontab: %w", err)
		}
		if err := out.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write crontab: %w", err)
		}
		return nil
	})
	if flushErr := out.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("failed to write crontab: %w", flushErr)
	}
	if err != nil {
		return multierr.Append(invalid, err)
	}

	logger.Infow("Rewrote crontab", "rewritten", rewritten, "invalid", len(multierr.Errors(invalid)))
	return invalid
}

// errStop ends a walk early without being reported
var errStop = errors.New("stop walking crontab")

// walk calls visit with each line of src, numbered from 1 and without its
// line terminator.
func (r *Reader) walk(ctx context.Context, src io.Reader, visit func(number int, raw string) error) error {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	number := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		number++
		raw := strings.TrimSuffix(scanner.Text(), "\r")
		if err := visit(number, raw); err != nil {
			if errors.Is(err, errStop) {
				return nil
			}
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read crontab: %w", err)
	}
	return nil
}

func parseLine(number int, raw string) (Entry, *LineError) {
	item, err := cronitem.Parse(raw)
	if err != nil {
		return Entry{}, &LineError{Line: number, Raw: raw, Err: err}
	}
	return Entry{Line: number, Raw: raw, Item: item}, nil
}

func isSkippable(raw string) bool {
	trimmed := strings.TrimLeft(raw, " \t")
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}
