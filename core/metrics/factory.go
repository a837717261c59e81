package metrics

import (
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// SinkConfig names a sink type and carries its raw settings.
type SinkConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Factory constructs a MetricsSink from raw configuration.
type Factory func(map[string]any) (MetricsSink, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// RegisterSink adds a sink factory identified by name.
func RegisterSink(name string, f Factory) error {
	if f == nil {
		return fmt.Errorf("factory nil for %s", name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		return fmt.Errorf("factory already registered for %s", name)
	}
	registry[name] = f
	return nil
}

// NewSink creates a MetricsSink from the provided configurations. No
// configuration yields a NopSink; several are fanned out through a MultiSink.
func NewSink(cfgs []SinkConfig) (MetricsSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	sinks := make([]MetricsSink, len(cfgs))
	for i, c := range cfgs {
		registryMu.RLock()
		f, ok := registry[c.Type]
		registryMu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("unknown metrics sink type %s", c.Type)
		}
		s, err := f(c.Conf)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiSink(sinks...), nil
}

// Decode fills out the provided struct from raw settings using json tags.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: out})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
