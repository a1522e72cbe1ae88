package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ggscale"
	"github.com/gogpu/ggscale/host"
)

// Session describes a scripted run.
type Session struct {
	Width  int            `yaml:"width"`
	Height int            `yaml:"height"`
	Scale  float64        `yaml:"scale"`
	Mode   string         `yaml:"mode"`
	Hover  bool           `yaml:"hover"`
	Theme  string         `yaml:"theme"`
	Watch  bool           `yaml:"watch"`
	Label  string         `yaml:"label"`
	Events []SessionEvent `yaml:"events"`
}

// SessionEvent is one scripted event.
//
//	- {type: scale, value: 3}
//	- {type: hover, inside: true}
//	- {type: mode, direct: true}
//	- {type: resize, width: 300, height: 150}
//	- {type: refresh}
//	- {type: paint}
type SessionEvent struct {
	Type   string  `yaml:"type"`
	Value  float64 `yaml:"value"`
	Inside bool    `yaml:"inside"`
	Direct bool    `yaml:"direct"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

func defaultSession() Session {
	return Session{
		Width:  200,
		Height: 100,
		Scale:  ggscale.DefaultScaleFactor,
		Mode:   "cached",
		Label:  ggscale.DefaultLabel,
	}
}

// loadSession reads a YAML session file over the defaults.
func loadSession(path string) (Session, error) {
	s := defaultSession()
	// #nosec G304 -- session path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read session: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("decode session %s: %w", path, err)
	}
	return s, nil
}

// State returns the initial rendering state.
func (s Session) State() (ggscale.State, error) {
	st := ggscale.State{ScaleFactor: s.Scale, HoverIndicatorVisible: s.Hover}
	switch strings.ToLower(s.Mode) {
	case "", "cached":
		st.UseCachedImage = true
	case "direct":
	default:
		return st, fmt.Errorf("unknown mode %q (want cached or direct)", s.Mode)
	}
	return st, nil
}

// HostEvents converts the scripted events.
func (s Session) HostEvents() ([]host.Event, error) {
	out := make([]host.Event, 0, len(s.Events))
	for i, e := range s.Events {
		ev, err := e.event()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

func (e SessionEvent) event() (host.Event, error) {
	switch strings.ToLower(e.Type) {
	case "scale":
		return host.ScaleFactorEvent{Value: e.Value}, nil
	case "refresh":
		return host.RefreshEvent{}, nil
	case "hover":
		return host.HoverEvent{Inside: e.Inside}, nil
	case "mode":
		return host.DrawModeEvent{Direct: e.Direct}, nil
	case "resize":
		return host.ResizeEvent{Width: e.Width, Height: e.Height}, nil
	case "paint":
		return host.PaintEvent{}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
}
