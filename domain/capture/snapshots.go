package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"
)

// snapshotSeq disambiguates snapshots taken within the same clock tick.
var snapshotSeq atomic.Uint64

// SaveSnapshot persists a captured region as a timestamped PNG under dir,
// then prunes older snapshots with the same prefix beyond keep. Snapshots
// exist purely for debugging a misaligned capture region.
func SaveSnapshot(img image.Image, dir, prefix string, keep int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("capture: snapshot dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s_%06d.png", prefix, time.Now().Format("20060102_150405"), snapshotSeq.Add(1)%1000000)
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("capture: snapshot create: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("capture: snapshot encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if keep > 0 {
		pruneSnapshots(dir, prefix, keep)
	}
	return path, nil
}

// pruneSnapshots removes the oldest matching snapshots so at most keep
// remain. Best effort; removal errors are ignored.
func pruneSnapshots(dir, prefix string, keep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasPrefix(n, prefix+"_") && strings.HasSuffix(n, ".png") {
			names = append(names, n)
		}
	}
	if len(names) <= keep {
		return
	}
	sort.Strings(names) // timestamped names sort chronologically
	for _, n := range names[:len(names)-keep] {
		_ = os.Remove(filepath.Join(dir, n))
	}
}
