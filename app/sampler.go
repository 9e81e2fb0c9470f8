package app

import (
	"log/slog"

	"github.com/soocke/flame-bot-go/domain/capture"
	"github.com/soocke/flame-bot-go/domain/ocr"
	"github.com/soocke/flame-bot-go/domain/window"
)

// RegionSampler is the concrete capture+extract pipeline for one stat box:
// grab the window-relative region, keep a bounded trail of debug snapshots,
// and OCR the image. Snapshot failures never fail the sample.
type RegionSampler struct {
	Grabber capture.Grabber
	Region  capture.Region
	Extract ocr.Extractor
	Logger  *slog.Logger

	SnapshotDir    string
	SnapshotPrefix string
	SnapshotKeep   int
}

// Sample captures and extracts one raw text sample.
func (s *RegionSampler) Sample(b window.Bounds) (string, error) {
	img, err := s.Grabber.Grab(b, s.Region)
	if err != nil {
		return "", err
	}
	if s.SnapshotDir != "" {
		if _, serr := capture.SaveSnapshot(img, s.SnapshotDir, s.SnapshotPrefix, s.SnapshotKeep); serr != nil && s.Logger != nil {
			s.Logger.Warn("debug snapshot failed", "prefix", s.SnapshotPrefix, "error", serr)
		}
	}
	return s.Extract.Extract(img)
}
