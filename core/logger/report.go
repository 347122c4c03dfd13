package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *structpb.Struct)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var rawEntry json.RawMessage
		if err := decoder.Decode(&rawEntry); err != nil {
			return err
		}

		var logEntry structpb.Struct
		if err := protojson.Unmarshal(rawEntry, &logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		Events:          make(map[string]int),
		Programs:        make(map[string]int),
		UnknownCommands: make(map[string]int),
		Failures:        make(map[string]int),
		sessions:        make(map[string]bool),
	}
}

// Report summarizes an event log.
type Report struct {
	LogEntries int `json:"log_entries"`

	// Events counts entries by event type.
	Events map[string]int `json:"events"`
	// Programs counts spawned programs by resolved path.
	Programs map[string]int `json:"programs"`
	// UnknownCommands counts commands that failed to resolve.
	UnknownCommands map[string]int `json:"unknown_commands"`
	// Failures counts spawn failures and invalid builtin invocations by
	// command name.
	Failures map[string]int `json:"failures"`

	sessions map[string]bool
}

// Sessions returns the number of distinct sessions seen.
func (r *Report) Sessions() int {
	return len(r.sessions)
}

// Update adds an entry to the report.
func (r *Report) Update(le *structpb.Struct) {
	r.LogEntries++

	fields := le.GetFields()
	event := fields[FieldEvent].GetStringValue()
	r.Events[event]++
	r.sessions[fields[FieldSessionID].GetStringValue()] = true

	command := ""
	if args := fields[FieldCommand].GetListValue().GetValues(); len(args) > 0 {
		command = args[0].GetStringValue()
	}

	switch event {
	case EventSpawn:
		r.Programs[fields[FieldPath].GetStringValue()]++
	case EventUnknownCommand:
		r.UnknownCommands[command]++
	case EventSpawnFailure, EventInvalidInvocation:
		r.Failures[command]++
	}
}

// WriteTable renders the report as tables.
func (r *Report) WriteTable(w io.Writer) {
	fmt.Fprintf(w, "%d entries from %d sessions\n", r.LogEntries, r.Sessions())

	for _, section := range []struct {
		title  string
		header string
		counts map[string]int
	}{
		{"Events", "event", r.Events},
		{"Programs", "path", r.Programs},
		{"Unknown commands", "command", r.UnknownCommands},
		{"Failures", "command", r.Failures},
	} {
		if len(section.counts) == 0 {
			continue
		}

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.SetTitle(section.title)
		t.AppendHeader(table.Row{section.header, "count"})
		for _, key := range sortedKeys(section.counts) {
			t.AppendRow(table.Row{key, section.counts[key]})
		}
		t.Render()
	}
}

func sortedKeys(m map[string]int) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
