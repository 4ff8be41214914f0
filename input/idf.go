package input

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseIDF reads objects written in IDF syntax:
//
//	Site:GroundTemperature:Deep,
//	  16.1, 16.0, 16.2, ...;   ! comment
//
// Fields that parse as numbers become numerics, other non-blank fields become
// alphas. NaN and infinite numbers are rejected. Blank fields are numeric zeros, except trailing blanks which are
// dropped.
func ParseIDF(r io.Reader) (*MemoryReader, error) {
	reader := NewMemoryReader()
	scanner := bufio.NewScanner(r)

	var (
		pending   strings.Builder
		startLine int
		lineNo    int
	)

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '!'); i >= 0 {
			line = line[:i]
		}

		for {
			end := strings.IndexByte(line, ';')
			if end < 0 {
				break
			}

			if pending.Len() == 0 {
				startLine = lineNo
			}
			pending.WriteString(line[:end])

			obj, err := parseIDFObject(pending.String())
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", startLine, err)
			}
			reader.Add(obj)

			pending.Reset()
			line = line[end+1:]
		}

		if strings.TrimSpace(line) != "" {
			if pending.Len() == 0 {
				startLine = lineNo
			}
			pending.WriteString(line)
			pending.WriteByte(' ')
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(pending.String()) != "" {
		return nil, fmt.Errorf("line %d: object is not terminated by ';'",
			startLine)
	}

	return reader, nil
}

func parseIDFObject(text string) (Object, error) {
	fields := strings.Split(text, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	obj := Object{Class: fields[0]}
	if obj.Class == "" {
		return obj, fmt.Errorf("object has no class name")
	}

	last := len(fields) - 1
	for last > 0 && fields[last] == "" {
		last--
	}

	for i, f := range fields[1 : last+1] {
		if f == "" {
			obj.Numerics = append(obj.Numerics, 0)
			continue
		}

		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			obj.Alphas = append(obj.Alphas, f)
			continue
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return obj, fmt.Errorf("%s field %d %q: %w",
				obj.Class, i+1, f, ErrNonFiniteNumeric)
		}

		obj.Numerics = append(obj.Numerics, v)
	}

	return obj, nil
}
