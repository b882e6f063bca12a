// Package config holds the YAML settings shared by the commands. Flags stay
// usable on their own; any field set in the file overrides the flag.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Render struct {
	Composition string `yaml:"composition"`
	Program     string `yaml:"program,omitempty"` // YAML/JSON program file, overrides composition
	FPS         int    `yaml:"fps"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Format      string `yaml:"format"` // svg | png | none
	Out         string `yaml:"out"`
	Workers     int    `yaml:"workers"`
	From        int    `yaml:"from,omitempty"`
	To          int    `yaml:"to,omitempty"` // exclusive; 0 = end of program
}

type Server struct {
	Addr string `yaml:"addr"`
}

type PowerCfg struct {
	LimitAmps   float64 `yaml:"limit_amps"`
	WhiteCap    float64 `yaml:"white_cap"`
	SoftStartMs int     `yaml:"soft_start_ms"`
	ChanMA      float64 `yaml:"chan_ma"`
	Knee        float64 `yaml:"knee"`
}

type Dim struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

type LED struct {
	Driver     string  `yaml:"driver"` // "spi" | "sim"
	Port       string  `yaml:"port,omitempty"`
	ColorOrder string  `yaml:"color_order"`
	Brightness float64 `yaml:"brightness"`
	FPS        int     `yaml:"fps"`
	Pattern    string  `yaml:"pattern,omitempty"`

	Dim             Dim     `yaml:"dim"`
	PitchMM         float64 `yaml:"pitch_mm"`
	PanelGapMM      float64 `yaml:"panel_gap_mm"`
	XFlipEveryRow   bool    `yaml:"x_flip_every_row"`
	YFlipEveryPanel bool    `yaml:"y_flip_every_panel"`

	Power PowerCfg `yaml:"power"`
}

type Config struct {
	Render Render `yaml:"render"`
	Server Server `yaml:"server"`
	LED    LED    `yaml:"led"`
}

// Default mirrors the flag defaults of the commands.
func Default() *Config {
	return &Config{
		Render: Render{
			Composition: "FullDemo",
			FPS:         30,
			Width:       1920,
			Height:      1080,
			Format:      "svg",
			Out:         "frames",
			Workers:     4,
		},
		Server: Server{Addr: ":8080"},
		LED: LED{
			Driver:          "sim",
			ColorOrder:      "GRB",
			Brightness:      0.8,
			FPS:             60,
			Dim:             Dim{X: 8, Y: 8, Z: 8},
			PitchMM:         10,
			PanelGapMM:      50,
			XFlipEveryRow:   true,
			YFlipEveryPanel: true,
			Power:           PowerCfg{LimitAmps: 3, WhiteCap: 2.2, SoftStartMs: 800, ChanMA: 20, Knee: 0.9},
		},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// LimiterParams converts the power section into limiter uniforms.
func (p PowerCfg) LimiterParams() map[string]float64 {
	m := map[string]float64{}
	if p.LimitAmps > 0 {
		m["Budget_mA"] = p.LimitAmps * 1000
	}
	if p.WhiteCap > 0 {
		m["WhiteCap"] = p.WhiteCap
	}
	if p.ChanMA > 0 {
		m["LEDChan_mA"] = p.ChanMA
	}
	if p.Knee > 0 {
		m["LimiterKnee"] = p.Knee
	}
	return m
}

func FirstNonZero[T comparable](v, fallback T) T {
	var zero T
	if v != zero {
		return v
	}
	return fallback
}
