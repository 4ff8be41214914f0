package groundtemp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sarchlab/groundtemp/diag"
	"github.com/sarchlab/groundtemp/input"
)

// ErrUnknownObject is returned by Factory.Build for names that are not a
// ground temperature variant.
var ErrUnknownObject = errors.New("not a ground temperature object")

// Result is the outcome of building one variant.
type Result struct {
	// Model is nil when construction failed.
	Model Model

	// Handle addresses Model in the registry. It is InvalidHandle when
	// construction failed.
	Handle Handle

	// UserInput is true when the input held exactly one object of the
	// variant, whether or not the object was valid.
	UserInput bool
}

// OK tells if the model was built and registered.
func (r Result) OK() bool {
	return r.Model != nil
}

// Factory builds ground temperature models from input and registers the ones
// that pass validation.
type Factory struct {
	reader   input.Reader
	sink     diag.Sink
	registry *Registry
}

// NewFactory creates a Factory.
func NewFactory(
	reader input.Reader,
	sink diag.Sink,
	registry *Registry,
) *Factory {
	return &Factory{
		reader:   reader,
		sink:     sink,
		registry: registry,
	}
}

// BuildingSurface builds the Site:GroundTemperature:BuildingSurface model.
func (f *Factory) BuildingSurface() Result {
	return f.build(newBuildingSurfaceModel(f.sink), BuildingSurfaceDefault)
}

// Deep builds the Site:GroundTemperature:Deep model.
func (f *Factory) Deep() Result {
	return f.build(newDeepModel(f.sink), DeepDefault)
}

// Shallow builds the Site:GroundTemperature:Shallow model.
func (f *Factory) Shallow() Result {
	return f.build(newShallowModel(f.sink), ShallowDefault)
}

// Build builds the variant with the given object name. Names match without
// regard to case.
func (f *Factory) Build(objectName string) (Result, error) {
	switch {
	case strings.EqualFold(objectName, BuildingSurfaceObject):
		return f.BuildingSurface(), nil
	case strings.EqualFold(objectName, DeepObject):
		return f.Deep(), nil
	case strings.EqualFold(objectName, ShallowObject):
		return f.Shallow(), nil
	default:
		return Result{Handle: InvalidHandle},
			fmt.Errorf("%q: %w", objectName, ErrUnknownObject)
	}
}

type buildable interface {
	Model
	base() *monthlyModel
}

func (f *Factory) build(m buildable, defaultTemperature float64) Result {
	b := m.base()
	count := f.reader.ObjectCount(b.name)
	userInput := count == 1

	switch {
	case !checkCardinality(f.sink, b.name, count):
		b.errorsFound = true
	case count == 1:
		f.readValues(m)
	default:
		b.fill(defaultTemperature)
	}

	writeAudit(f.sink, b.name, b.temperatures)

	if b.errorsFound {
		return f.fail(b.name, userInput)
	}

	h, err := f.registry.Append(m)
	if err != nil {
		f.sink.Severe(fmt.Sprintf("%s: %v", b.name, err))
		return f.fail(b.name, userInput)
	}

	return Result{Model: m, Handle: h, UserInput: userInput}
}

func (f *Factory) readValues(m buildable) {
	b := m.base()

	fields, err := f.reader.ReadObjectFields(b.name, 1)
	if err != nil {
		f.sink.Severe(fmt.Sprintf("%s: %v", b.name, err))
		b.errorsFound = true

		return
	}

	if !checkFieldCount(f.sink, b.name, fields.NumNumerics) {
		b.errorsFound = true
	}

	for i := range b.temperatures {
		if i < len(fields.Numerics) && i < fields.NumNumerics {
			b.temperatures[i] = fields.Numerics[i]
		}
	}

	if r, ok := m.(advisoryRanger); ok {
		lo, hi := r.advisoryRange()
		checkAdvisoryRange(f.sink, b.name, b.temperatures, lo, hi)
	}
}

func (f *Factory) fail(name string, userInput bool) Result {
	f.sink.Continue(name + "--Errors getting input for ground temperature model")
	return Result{Handle: InvalidHandle, UserInput: userInput}
}
