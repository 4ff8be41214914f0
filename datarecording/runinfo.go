package datarecording

import (
	"os"
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04:05.000000000"

// RunInfoRecorder records when and how the program ran.
type RunInfoRecorder struct {
	recorder DataRecorder
	entries  []RunInfoEntry
}

// NewRunInfoRecorder creates the run info table.
func NewRunInfoRecorder(recorder DataRecorder) *RunInfoRecorder {
	recorder.CreateTable(RunInfoTable, RunInfoEntry{})

	return &RunInfoRecorder{recorder: recorder}
}

// Set adds a property, such as the input file.
func (r *RunInfoRecorder) Set(property, value string) {
	r.entries = append(r.entries, RunInfoEntry{property, value})
}

// Start records the start time, command line, and working directory.
func (r *RunInfoRecorder) Start() {
	r.Set("Start Time", time.Now().Format(timeLayout))
	r.Set("Command", strings.Join(os.Args, " "))

	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	r.Set("Working Directory", wd)
}

// End writes all properties along with the end time.
func (r *RunInfoRecorder) End() {
	r.Set("End Time", time.Now().Format(timeLayout))

	for _, e := range r.entries {
		r.recorder.InsertData(RunInfoTable, e)
	}

	r.entries = nil

	r.recorder.Flush()
}
