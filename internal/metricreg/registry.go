// Package metricreg holds the metric definitions shown on the dashboard and
// decides whether a displayed value rests on too few observations.
//
// Every display surface asks the same Registry, so two widgets showing the
// same metric and sample size always agree on whether to warn.
package metricreg

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Registry is a read-only table of metric definitions. It is safe for
// concurrent use; nothing mutates it after New returns.
type Registry struct {
	defs   map[ID]Definition
	order  []ID
	strict bool
	logger *zerolog.Logger
}

// New builds a registry from defs. Ids must be unique and sample thresholds
// positive.
func New(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:   make(map[ID]Definition, len(defs)),
		order:  make([]ID, 0, len(defs)),
		logger: nopLogger(),
	}
	for _, d := range defs {
		if _, dup := r.defs[d.ID]; dup {
			return nil, fmt.Errorf("duplicate metric %s", d.ID)
		}
		if d.Sample != nil && d.Sample.MinSample <= 0 {
			return nil, fmt.Errorf("metric %s: min sample must be positive, got %d", d.ID, d.Sample.MinSample)
		}
		r.defs[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r, nil
}

// Default returns a registry over the built-in metric table.
func Default() *Registry {
	r, err := New(builtin()...)
	if err != nil {
		panic(fmt.Sprintf("metricreg: invalid built-in table: %v", err))
	}
	return r
}

// Option configures how a registry reports unknown metrics.
type Option func(*Registry)

// Strict makes Check surface unknown metrics as errors (development mode).
func Strict(on bool) Option {
	return func(r *Registry) { r.strict = on }
}

// WithLogger sets the logger used by Check.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// With returns a copy of r with opts applied. The definition table is shared.
func (r *Registry) With(opts ...Option) *Registry {
	c := *r
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Definition returns the definition for id.
func (r *Registry) Definition(id ID) (Definition, error) {
	d, ok := r.defs[id]
	if !ok {
		return Definition{}, &UnknownMetricError{Name: id.String()}
	}
	return d, nil
}

// Lookup resolves a metric by its wire name.
func (r *Registry) Lookup(name string) (Definition, error) {
	id, ok := ParseID(name)
	if !ok {
		return Definition{}, &UnknownMetricError{Name: name}
	}
	return r.Definition(id)
}

// Definitions returns all definitions in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}

// IsLowSample reports whether a value of metric id backed by sample is below
// the metric's reliability threshold. Metrics without a sample spec and
// unknown sample sizes never count as low.
func (r *Registry) IsLowSample(id ID, sample Sample) bool {
	d, ok := r.defs[id]
	if !ok || d.Sample == nil {
		return false
	}
	n, known := sample.Size()
	if !known {
		return false
	}
	return n < d.Sample.MinSample
}

// Verdict is what a display surface needs to decorate one metric value.
type Verdict struct {
	Metric  string
	Low     bool
	Label   string
	Tooltip string
	Err     error
}

// Check is the string-keyed entry point used by templates and handlers.
// An unknown metric is returned in Verdict.Err when the registry is strict;
// otherwise it is logged and the value is shown without a warning.
func (r *Registry) Check(name string, sample Sample) Verdict {
	v := Verdict{Metric: name}

	d, err := r.Lookup(name)
	if err != nil {
		UnknownMetricTotal.Inc()
		if r.strict {
			r.logger.Error().Err(err).Str("metric", name).Msg("Unknown metric referenced")
			v.Err = err
			return v
		}
		r.logger.Warn().Str("metric", name).Msg("Unknown metric referenced, showing value without sample warning")
		return v
	}

	if !r.IsLowSample(d.ID, sample) {
		return v
	}

	LowSampleTotal.WithLabelValues(name).Inc()
	v.Low = true
	v.Label = d.Sample.LowSampleLabel
	v.Tooltip = d.Sample.LowSampleTooltip
	return v
}

// IsUnknownMetric reports whether err is an UnknownMetricError.
func IsUnknownMetric(err error) bool {
	var target *UnknownMetricError
	return errors.As(err, &target)
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
