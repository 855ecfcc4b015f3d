package benchmark

import (
	"fmt"

	"sortbench/internal/dataset"
)

// Defaults of the open-ended sweep.
const (
	DefaultStart  = 100
	DefaultStep   = 10
	DefaultMax    = 5000
	DefaultTrials = 5
)

// Plan describes which configurations a sweep visits. When Sizes is set it
// is used as-is and Start, Step and Max are ignored; otherwise sizes run from
// Start to Max inclusive in increments of Step.
type Plan struct {
	Sizes  []int
	Start  int
	Step   int
	Max    int
	Shapes []dataset.Shape
	Trials int
}

// DefaultPlan is the sweep used when nothing is configured.
func DefaultPlan() Plan {
	return Plan{
		Start:  DefaultStart,
		Step:   DefaultStep,
		Max:    DefaultMax,
		Shapes: dataset.AllShapes(),
		Trials: DefaultTrials,
	}
}

// SizeList expands the plan into the ordered list of sizes.
func (p Plan) SizeList() ([]int, error) {
	if len(p.Sizes) > 0 {
		sizes := make([]int, 0, len(p.Sizes))
		for _, s := range p.Sizes {
			if s <= 0 {
				return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, s)
			}
			sizes = append(sizes, s)
		}
		return sizes, nil
	}

	if p.Start <= 0 {
		return nil, fmt.Errorf("%w: start must be positive, got %d", ErrInvalidConfig, p.Start)
	}
	if p.Step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidConfig, p.Step)
	}
	if p.Max < p.Start {
		return nil, fmt.Errorf("%w: max %d is below start %d", ErrInvalidConfig, p.Max, p.Start)
	}
	var sizes []int
	for s := p.Start; ; s += p.Step {
		sizes = append(sizes, s)
		if s > p.Max-p.Step {
			break
		}
	}
	return sizes, nil
}

// Configs returns one Config per (size, shape), sizes in the outer loop.
func (p Plan) Configs() ([]Config, error) {
	if p.Trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, p.Trials)
	}
	if len(p.Shapes) == 0 {
		return nil, fmt.Errorf("%w: no shapes selected", ErrInvalidConfig)
	}
	for _, s := range p.Shapes {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, dataset.ErrUnknownShape)
		}
	}

	sizes, err := p.SizeList()
	if err != nil {
		return nil, err
	}
	configs := make([]Config, 0, len(sizes)*len(p.Shapes))
	for _, size := range sizes {
		for _, shape := range p.Shapes {
			configs = append(configs, Config{Size: size, Shape: shape, Trials: p.Trials})
		}
	}
	return configs, nil
}
