package input

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Objects []yamlObject `yaml:"objects" validate:"dive"`
}

type yamlObject struct {
	Type     string    `yaml:"type" validate:"required"`
	Alphas   []string  `yaml:"alphas"`
	Numerics []float64 `yaml:"numerics" validate:"dive,finite"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	if err != nil {
		panic(err)
	}

	return v
}

// ParseYAML reads objects from a YAML document of the form
//
//	objects:
//	  - type: Site:GroundTemperature:BuildingSurface
//	    numerics: [18.2, 18.1, ...]
func ParseYAML(r io.Reader) (*MemoryReader, error) {
	doc := yamlDocument{}

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding yaml input: %w", err)
	}

	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Tag() == "finite" {
			return nil, fmt.Errorf("validating yaml input: %s: %w",
				verrs[0].Namespace(), ErrNonFiniteNumeric)
		}

		return nil, fmt.Errorf("validating yaml input: %w", err)
	}

	reader := NewMemoryReader()
	for _, o := range doc.Objects {
		reader.Add(Object{
			Class:    o.Type,
			Alphas:   o.Alphas,
			Numerics: o.Numerics,
		})
	}

	return reader, nil
}

// Open parses an input file, choosing the syntax by its extension.
func Open(path string) (*MemoryReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".idf":
		return ParseIDF(f)
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return nil, fmt.Errorf("unknown input format %q", filepath.Ext(path))
	}
}
