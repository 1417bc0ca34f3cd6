package progress

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Markers pacman prints before it starts downloading
var InfoMarkers = []string{
	"Total Download Size:",
	"Total Installed Size:",
}

var stepRe = regexp.MustCompile(`\[(\d+)/(\d+)\]`)

// Tracker turns a stdout stream into events. It keeps the trailing partial
// line between chunks so every line is classified exactly once.
// A Tracker belongs to a single operation and is not safe for concurrent use.
type Tracker struct {
	label   string
	pending string
}

// NewTracker creates a tracker whose events carry label
func NewTracker(label string) *Tracker {
	return &Tracker{label: label}
}

// Feed consumes one stdout chunk. The first event is always the raw Output
// chunk, followed by one event per classified complete line.
func (t *Tracker) Feed(chunk string) []Event {
	events := []Event{Output(t.label, chunk, false)}

	lines := strings.Split(t.pending+chunk, "\n")
	t.pending = lines[len(lines)-1]

	for _, line := range lines[:len(lines)-1] {
		if e, ok := Classify(t.label, line); ok {
			events = append(events, e)
		}
	}
	return events
}

// Flush classifies whatever remains once the stream has ended
func (t *Tracker) Flush() []Event {
	line := t.pending
	t.pending = ""
	if line == "" {
		return nil
	}
	if e, ok := Classify(t.label, line); ok {
		return []Event{e}
	}
	return nil
}

// Pending returns the buffered partial line
func (t *Tracker) Pending() string {
	return t.pending
}

// Classify maps a complete line to a Percentage or Info event.
// Step counters take precedence over info markers.
func Classify(label, line string) (Event, bool) {
	line = strings.TrimRight(line, "\r")

	if m := stepRe.FindStringSubmatch(line); m != nil {
		current, err1 := strconv.Atoi(m[1])
		total, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil && total > 0 {
			return Percentage(label, int(math.Round(100*float64(current)/float64(total)))), true
		}
	}

	for _, marker := range InfoMarkers {
		if strings.Contains(line, marker) {
			return Info(label, line), true
		}
	}

	return Event{}, false
}
