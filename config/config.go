package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Config holds runtime configuration for the reroll loop and its collaborators.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Target window
	WindowTitle string `json:"window_title"`

	// Prime (keyword) mode: capture region relative to the window and the
	// tracked stat categories.
	PrimeRegionX    int             `json:"prime_region_x"`
	PrimeRegionY    int             `json:"prime_region_y"`
	PrimeRegionW    int             `json:"prime_region_w"`
	PrimeRegionH    int             `json:"prime_region_h"`
	PrimeCategories []PrimeCategory `json:"prime_categories"`
	PrimeThreshold  int             `json:"prime_threshold"`

	// Flame (comparative) mode: before/after stat box regions and the
	// configured attribute names.
	FlameBoxX      int    `json:"flame_box_x"`
	FlameBeforeY   int    `json:"flame_before_y"`
	FlameAfterY    int    `json:"flame_after_y"`
	FlameBoxW      int    `json:"flame_box_w"`
	FlameBoxH      int    `json:"flame_box_h"`
	MainStat       string `json:"main_stat"`
	SecondaryStat  string `json:"secondary_stat"`
	WeaponType     string `json:"weapon_type"` // ATT or MATT
	FlameDelayMS   int    `json:"flame_delay_ms"`

	// Reroll action click offset from the window origin.
	ClickOffsetX int `json:"click_offset_x"`
	ClickOffsetY int `json:"click_offset_y"`

	// Loop timing / failure handling.
	RerollDelayMS int `json:"reroll_delay_ms"`
	DelaySlices   int `json:"delay_slices"`
	// Consecutive capture/extraction failures before the loop gives up as
	// stuck. Zero disables the cap.
	MaxCaptureFailures int `json:"max_capture_failures"`

	// Debug artifact handling.
	TempDir         string `json:"temp_dir"`
	ScreenshotQueue int    `json:"screenshot_queue"`
}

// PrimeCategory is one tracked keyword stat line. Label drives value
// extraction; Keyword is the shorter presence probe tolerant of partial OCR
// reads (empty means same as label).
type PrimeCategory struct {
	Label   string `json:"label"`
	Keyword string `json:"keyword,omitempty"`
}

func defaultPrimeCategories() []PrimeCategory {
	return []PrimeCategory{
		{Label: "Item Drop Rate", Keyword: "item drop"},
		{Label: "Mesos Obtained", Keyword: "mesos"},
	}
}

// DefaultConfig returns a Config populated with the standard 1366x768
// client-layout defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:              false,
		WindowTitle:        "MapleStory",
		PrimeRegionX:       607,
		PrimeRegionY:       449,
		PrimeRegionW:       168,
		PrimeRegionH:       75,
		PrimeCategories:    defaultPrimeCategories(),
		PrimeThreshold:     1,
		FlameBoxX:          607,
		FlameBeforeY:       350,
		FlameAfterY:        495,
		FlameBoxW:          167,
		FlameBoxH:          104,
		MainStat:           "DEX",
		SecondaryStat:      "STR",
		WeaponType:         "ATT",
		FlameDelayMS:       100,
		ClickOffsetX:       700,
		ClickOffsetY:       630,
		RerollDelayMS:      1000,
		DelaySlices:        4,
		MaxCaptureFailures: 3,
		TempDir:            "temp",
		ScreenshotQueue:    7,
	}
}

var validStats = map[string]bool{"STR": true, "DEX": true, "INT": true, "LUK": true}

// Validate clamps/normalizes values to safe ranges and rejects attribute
// names the parser cannot track.
func (c *Config) Validate() error {
	if c.WindowTitle == "" {
		c.WindowTitle = "MapleStory"
	}
	if c.PrimeRegionW <= 0 || c.PrimeRegionH <= 0 {
		c.PrimeRegionW, c.PrimeRegionH = 168, 75
	}
	if len(c.PrimeCategories) == 0 {
		c.PrimeCategories = defaultPrimeCategories()
	}
	for i, cat := range c.PrimeCategories {
		if strings.TrimSpace(cat.Label) == "" {
			return fmt.Errorf("config: prime category %d has an empty label", i)
		}
	}
	if c.PrimeThreshold < 1 {
		c.PrimeThreshold = 1
	}
	if c.PrimeThreshold > len(c.PrimeCategories) {
		c.PrimeThreshold = len(c.PrimeCategories)
	}
	if c.FlameBoxW <= 0 || c.FlameBoxH <= 0 {
		c.FlameBoxW, c.FlameBoxH = 167, 104
	}
	c.MainStat = strings.ToUpper(strings.TrimSpace(c.MainStat))
	c.SecondaryStat = strings.ToUpper(strings.TrimSpace(c.SecondaryStat))
	if !validStats[c.MainStat] {
		return fmt.Errorf("config: invalid main stat %q (valid: STR, DEX, INT, LUK)", c.MainStat)
	}
	if !validStats[c.SecondaryStat] {
		return fmt.Errorf("config: invalid secondary stat %q (valid: STR, DEX, INT, LUK)", c.SecondaryStat)
	}
	c.WeaponType = strings.ToUpper(strings.TrimSpace(c.WeaponType))
	if c.WeaponType != "ATT" && c.WeaponType != "MATT" {
		return fmt.Errorf("config: invalid weapon type %q (valid: ATT, MATT)", c.WeaponType)
	}
	if c.RerollDelayMS <= 0 {
		c.RerollDelayMS = 1000
	}
	if c.FlameDelayMS <= 0 {
		c.FlameDelayMS = 100
	}
	if c.DelaySlices <= 0 {
		c.DelaySlices = 4
	}
	if c.MaxCaptureFailures < 0 {
		c.MaxCaptureFailures = 0
	}
	if c.TempDir == "" {
		c.TempDir = "temp"
	}
	if c.ScreenshotQueue <= 0 {
		c.ScreenshotQueue = 7
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns DefaultConfig(). On JSON error it returns
// defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
