// Package input supplies the raw field values of input objects to the model
// factories.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// I/O status codes reported with every object read.
const (
	IOStatusOK    = 1
	IOStatusError = -1
)

// ErrObjectNotFound is returned when reading an object instance that does not
// exist.
var ErrObjectNotFound = errors.New("object not found")

// ErrNonFiniteNumeric is returned by the parsers for NaN or infinite numbers.
var ErrNonFiniteNumeric = errors.New("numeric field is not finite")

// ObjectFields are the fields of one object instance, split into alpha and
// numeric fields.
type ObjectFields struct {
	Alphas      []string
	Numerics    []float64
	NumAlphas   int
	NumNumerics int
	IOStatus    int
}

// A Reader gives access to the objects of an input file. Object names are
// matched case-insensitively and instance indices start at 1.
type Reader interface {
	ObjectCount(name string) int
	ReadObjectFields(name string, index int) (ObjectFields, error)
}

// An Object is one parsed input object.
type Object struct {
	Class    string
	Alphas   []string
	Numerics []float64
}

// MemoryReader is a Reader over objects held in memory.
type MemoryReader struct {
	objects []Object
}

// NewMemoryReader creates a MemoryReader holding the given objects.
func NewMemoryReader(objects ...Object) *MemoryReader {
	r := &MemoryReader{}
	for _, o := range objects {
		r.Add(o)
	}

	return r
}

// Add appends an object.
func (r *MemoryReader) Add(o Object) {
	r.objects = append(r.objects, o)
}

// Objects returns all objects in input order.
func (r *MemoryReader) Objects() []Object {
	return append([]Object(nil), r.objects...)
}

// ObjectCount returns how many objects of the class exist.
func (r *MemoryReader) ObjectCount(name string) int {
	count := 0
	for _, o := range r.objects {
		if strings.EqualFold(o.Class, name) {
			count++
		}
	}

	return count
}

// ReadObjectFields returns the fields of the index-th object of the class.
func (r *MemoryReader) ReadObjectFields(
	name string,
	index int,
) (ObjectFields, error) {
	seen := 0
	for _, o := range r.objects {
		if !strings.EqualFold(o.Class, name) {
			continue
		}

		seen++
		if seen == index {
			return ObjectFields{
				Alphas:      append([]string(nil), o.Alphas...),
				Numerics:    append([]float64(nil), o.Numerics...),
				NumAlphas:   len(o.Alphas),
				NumNumerics: len(o.Numerics),
				IOStatus:    IOStatusOK,
			}, nil
		}
	}

	return ObjectFields{IOStatus: IOStatusError},
		fmt.Errorf("%s #%d: %w", name, index, ErrObjectNotFound)
}
