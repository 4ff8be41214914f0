package simulation

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RunConfig sets the period and resolution of a run.
type RunConfig struct {
	Days             int `validate:"min=1,max=3650"`
	TimestepsPerHour int `validate:"oneof=1 2 3 4 5 6 10 12 15 20 30 60"`
	StartDayOfYear   int `validate:"min=1,max=365"`
}

// DefaultRunConfig runs one year from January 1st with 15-minute timesteps.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Days:             365,
		TimestepsPerHour: 4,
		StartDayOfYear:   1,
	}
}

// Validate checks the ranges of all fields.
func (c RunConfig) Validate() error {
	return validate.Struct(c)
}

// Timesteps returns how many timesteps the run has.
func (c RunConfig) Timesteps() int {
	return c.Days * 24 * c.TimestepsPerHour
}
