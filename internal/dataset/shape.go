package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownShape is returned for distribution names or values outside the known set.
var ErrUnknownShape = errors.New("unknown distribution shape")

// Shape selects how a dataset is generated.
type Shape int

const (
	Random Shape = iota
	Sorted
	PartiallySorted
	ReverseSorted
)

var shapeNames = map[Shape]string{
	Random:          "random",
	Sorted:          "sorted",
	PartiallySorted: "partially_sorted",
	ReverseSorted:   "reverse_sorted",
}

// AllShapes returns every shape in the order the sweep visits them.
func AllShapes() []Shape {
	return []Shape{Random, Sorted, PartiallySorted, ReverseSorted}
}

// String returns the name written to result files.
func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Valid reports whether s is one of the four known shapes.
func (s Shape) Valid() bool {
	_, ok := shapeNames[s]
	return ok
}

// ParseShape maps a result-file name back to its Shape.
func ParseShape(name string) (Shape, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for shape, n := range shapeNames {
		if n == key {
			return shape, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// ParseShapes parses a list of names, failing on the first unknown one.
func ParseShapes(names []string) ([]Shape, error) {
	shapes := make([]Shape, 0, len(names))
	for _, n := range names {
		s, err := ParseShape(n)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// MarshalText encodes the shape by name.
func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a shape name.
func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
