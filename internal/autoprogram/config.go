// Package autoprogram builds percentage-based blocks from training maxes.
package autoprogram

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type SlotKind string

const (
	// SlotMain lifts follow the weekly wave against a training max.
	SlotMain SlotKind = "main"
	// SlotAccessory lifts use fixed sets and reps with no load.
	SlotAccessory SlotKind = "accessory"
)

// Config describes a generated block.
type Config struct {
	Name          string             `yaml:"name"`
	Weeks         int                `yaml:"weeks"`
	DeloadEvery   int                `yaml:"deload_every"`
	Increment     float64            `yaml:"increment"`
	Wave          []WaveStep         `yaml:"wave"`
	Deload        WaveStep           `yaml:"deload"`
	TrainingMaxes map[string]float64 `yaml:"training_maxes"`
	Days          []DayConfig        `yaml:"days"`
}

// WaveStep is one week of the main-lift wave. Percent is of the training
// max, 0-100.
type WaveStep struct {
	Percent float64 `yaml:"percent"`
	Sets    int     `yaml:"sets"`
	Reps    int     `yaml:"reps"`
}

type DayConfig struct {
	Name      string       `yaml:"name"`
	ShortCode string       `yaml:"short_code"`
	Slots     []SlotConfig `yaml:"slots"`
}

type SlotConfig struct {
	Lift string   `yaml:"lift"`
	Kind SlotKind `yaml:"kind"`
	Sets int      `yaml:"sets"`
	Reps int      `yaml:"reps"`
}

// DefaultWave is a three-week 65/75/85 wave.
func DefaultWave() []WaveStep {
	return []WaveStep{
		{Percent: 65, Sets: 3, Reps: 5},
		{Percent: 75, Sets: 3, Reps: 3},
		{Percent: 85, Sets: 3, Reps: 1},
	}
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "Auto Program"
	}
	if c.Increment <= 0 {
		c.Increment = 2.5
	}
	if len(c.Wave) == 0 {
		c.Wave = DefaultWave()
	}
	if c.Deload.Percent <= 0 {
		c.Deload = WaveStep{Percent: 50, Sets: 3, Reps: 5}
	}
	for d := range c.Days {
		for s := range c.Days[d].Slots {
			slot := &c.Days[d].Slots[s]
			slot.Kind = SlotKind(strings.ToLower(strings.TrimSpace(string(slot.Kind))))
			if slot.Kind == "" {
				slot.Kind = SlotMain
			}
		}
	}
}

// ParseConfig decodes a YAML config and fills defaults. Unknown keys are
// rejected.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing program config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading program config: %w", err)
	}
	return ParseConfig(data)
}
