package groundtemp

import "github.com/sarchlab/groundtemp/diag"

// Input object names of the model variants.
const (
	BuildingSurfaceObject = "Site:GroundTemperature:BuildingSurface"
	DeepObject            = "Site:GroundTemperature:Deep"
	ShallowObject         = "Site:GroundTemperature:Shallow"
)

// Temperatures, in Celsius, used for all months when the input has no object
// of the variant.
const (
	BuildingSurfaceDefault = 18.0
	DeepDefault            = 16.0
	ShallowDefault         = 13.0
)

// Bounds of the BuildingSurface plausibility advisory, in Celsius.
const (
	BuildingSurfaceAdvisoryMin = 15.0
	BuildingSurfaceAdvisoryMax = 25.0
)

// ObjectNames lists the variants in the order they are processed.
func ObjectNames() []string {
	return []string{BuildingSurfaceObject, DeepObject, ShallowObject}
}

// BuildingSurfaceModel provides the temperature under the building, used by
// surfaces with ground outside boundary conditions.
type BuildingSurfaceModel struct {
	monthlyModel
}

func newBuildingSurfaceModel(sink diag.Sink) *BuildingSurfaceModel {
	m := &BuildingSurfaceModel{
		monthlyModel: newMonthlyModel(
			BuildingSurfaceObject, "Site Ground Temperature", sink),
	}
	m.self = m

	return m
}

func (m *BuildingSurfaceModel) advisoryRange() (lo, hi float64) {
	return BuildingSurfaceAdvisoryMin, BuildingSurfaceAdvisoryMax
}

// DeepModel provides the temperature of deep ground, used by ground heat
// exchangers and similar deep boundaries. It has no plausibility advisory.
type DeepModel struct {
	monthlyModel
}

func newDeepModel(sink diag.Sink) *DeepModel {
	m := &DeepModel{
		monthlyModel: newMonthlyModel(
			DeepObject, "Site Deep Ground Temperature", sink),
	}
	m.self = m

	return m
}

// ShallowModel provides the temperature of near-surface ground.
type ShallowModel struct {
	monthlyModel
}

func newShallowModel(sink diag.Sink) *ShallowModel {
	m := &ShallowModel{
		monthlyModel: newMonthlyModel(
			ShallowObject, "Site Shallow Ground Temperature", sink),
	}
	m.self = m

	return m
}
