package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/flame-bot-go/config"
	"github.com/soocke/flame-bot-go/domain/action"
	"github.com/soocke/flame-bot-go/domain/capture"
	"github.com/soocke/flame-bot-go/domain/ocr"
	"github.com/soocke/flame-bot-go/domain/roll"
	"github.com/soocke/flame-bot-go/domain/stats"
	"github.com/soocke/flame-bot-go/domain/window"
	"github.com/soocke/flame-bot-go/session"
)

// Mode selects the operating policy.
type Mode int

const (
	ModePrime Mode = iota
	ModeFlame
)

func (m Mode) String() string {
	switch m {
	case ModePrime:
		return "prime"
	case ModeFlame:
		return "flame"
	default:
		return "unknown"
	}
}

// Container assembles the collaborators and the decision loop.
type Container struct {
	Config    *config.Config
	Logger    *slog.Logger
	Locator   window.Locator
	Extractor *ocr.TesseractExtractor
	Log       *session.Log
	Loop      *roll.Loop
}

// BuildContainer constructs all components for the given mode. Side effects:
// clears the temp workspace and creates the tesseract client.
func BuildContainer(cfg *config.Config, logger *slog.Logger, mode Mode) (*Container, error) {
	sessionLog, err := session.Setup(cfg.TempDir)
	if err != nil {
		return nil, err
	}
	extractor, err := ocr.NewTesseractExtractor()
	if err != nil {
		return nil, err
	}

	locator := window.NewTitleLocator(cfg.WindowTitle)
	reroller := action.NewReroller(locator, action.OSCallbacks(), cfg.ClickOffsetX, cfg.ClickOffsetY, logger)
	stop := roll.StopFunc(action.StopKeyPressed)
	grabber := capture.ScreenGrabber{}

	var policy roll.Policy
	delay := time.Duration(cfg.RerollDelayMS) * time.Millisecond
	switch mode {
	case ModePrime:
		policy = &roll.PrimePolicy{
			Sampler: &RegionSampler{
				Grabber: grabber,
				Region: capture.Region{
					OffsetX: cfg.PrimeRegionX, OffsetY: cfg.PrimeRegionY,
					Width: cfg.PrimeRegionW, Height: cfg.PrimeRegionH,
				},
				Extract:        extractor,
				Logger:         logger,
				SnapshotDir:    cfg.TempDir,
				SnapshotPrefix: "stat_region",
				SnapshotKeep:   cfg.ScreenshotQueue,
			},
			Parser:    stats.NewPrimeParser(primeCategories(cfg)),
			Threshold: cfg.PrimeThreshold,
		}
	case ModeFlame:
		delay = time.Duration(cfg.FlameDelayMS) * time.Millisecond
		parser := stats.NewFlameParser(cfg.MainStat, cfg.SecondaryStat)
		box := func(offY int, prefix string) *RegionSampler {
			return &RegionSampler{
				Grabber: grabber,
				Region: capture.Region{
					OffsetX: cfg.FlameBoxX, OffsetY: offY,
					Width: cfg.FlameBoxW, Height: cfg.FlameBoxH,
				},
				Extract:        extractor,
				Logger:         logger,
				SnapshotDir:    cfg.TempDir,
				SnapshotPrefix: prefix,
				SnapshotKeep:   cfg.ScreenshotQueue,
			}
		}
		policy = &roll.FlamePolicy{
			Before:   box(cfg.FlameBeforeY, "before"),
			After:    box(cfg.FlameAfterY, "after"),
			Parser:   parser,
			UseMagic: cfg.WeaponType == "MATT",
		}
	default:
		extractor.Close()
		return nil, fmt.Errorf("app: unknown mode %d", mode)
	}

	loop := roll.New(logger, policy, locator, reroller, stop, sessionLog, roll.Options{
		Delay:       delay,
		Slices:      cfg.DelaySlices,
		MaxFailures: cfg.MaxCaptureFailures,
	})

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Locator:   locator,
		Extractor: extractor,
		Log:       sessionLog,
		Loop:      loop,
	}, nil
}

func primeCategories(cfg *config.Config) []stats.Category {
	cats := make([]stats.Category, 0, len(cfg.PrimeCategories))
	for _, c := range cfg.PrimeCategories {
		cats = append(cats, stats.Category{Label: c.Label, Keyword: c.Keyword})
	}
	return cats
}

// Close releases the OCR client.
func (c *Container) Close() error {
	if c.Extractor != nil {
		return c.Extractor.Close()
	}
	return nil
}
