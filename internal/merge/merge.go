package merge

import (
	"bufio"
	"fmt"
	"os"
)

// maxLineSize bounds a single input line. Tool outputs are hostnames
// and URLs, but a malformed file must not fail the merge at the
// scanner's default 64 KiB cap.
const maxLineSize = 10 * 1024 * 1024

// Files writes the deduplicated union of all lines from the given
// inputs to out, in first-seen order. A line is identified by exact
// text equality with no trimming or normalization. Inputs that do not
// exist are skipped silently; out is created (and truncated) even when
// no input exists.
func Files(out string, inputs ...string) error {
	dst, err := os.Create(out) //nolint:gosec // Path is derived from the run's output directory
	if err != nil {
		return fmt.Errorf("failed to create merge output %s: %w", out, err)
	}
	defer dst.Close()

	w := bufio.NewWriter(dst)
	seen := make(map[string]struct{})

	for _, input := range inputs {
		if err := appendUnique(w, input, seen); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush merge output %s: %w", out, err)
	}
	return nil
}

// appendUnique copies not-yet-seen lines of path to w, recording each
// emitted line in seen. A missing file contributes zero lines.
func appendUnique(w *bufio.Writer, path string, seen map[string]struct{}) error {
	f, err := os.Open(path) //nolint:gosec // Path is derived from the run's output directory
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open merge input %s: %w", path, err)
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for s.Scan() {
		line := s.Text()
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write merged line: %w", err)
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("failed to read merge input %s: %w", path, err)
	}
	return nil
}
