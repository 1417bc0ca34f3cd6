package progress

// Kind identifies the variant carried by an Event
type Kind int

const (
	KindStarted    Kind = iota // Operation accepted, process about to spawn
	KindOutput                 // Raw chunk of stdout or stderr
	KindPercentage             // Parsed [n/m] step counter
	KindInfo                   // Informational line such as download size
	KindCompleted              // Terminal: exit code 0
	KindFailed                 // Terminal: spawn failure or non-zero exit
)

func (k Kind) String() string {
	switch k {
	case KindStarted:
		return "started"
	case KindOutput:
		return "output"
	case KindPercentage:
		return "percentage"
	case KindInfo:
		return "info"
	case KindCompleted:
		return "completed"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the kind ends an operation's stream
func (k Kind) Terminal() bool {
	return k == KindCompleted || k == KindFailed
}

// MarshalText renders the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is one unit of a privileged operation's status stream.
// Which fields are set depends on Kind.
type Event struct {
	Kind    Kind   `json:"type"`
	Package string `json:"packageName"`
	Command string `json:"command,omitempty"` // KindStarted
	Text    string `json:"text,omitempty"`    // Output chunk, info line, summary or failure reason
	IsError bool   `json:"isError,omitempty"` // KindOutput from stderr
	Percent int    `json:"percentage,omitempty"`
}

// Started reports that an operation has been accepted
func Started(pkg, command string) Event {
	return Event{Kind: KindStarted, Package: pkg, Command: command}
}

// Output carries a raw output chunk
func Output(pkg, text string, isError bool) Event {
	return Event{Kind: KindOutput, Package: pkg, Text: text, IsError: isError}
}

// Percentage carries a parsed step counter
func Percentage(pkg string, value int) Event {
	return Event{Kind: KindPercentage, Package: pkg, Percent: value}
}

// Info carries an informational line
func Info(pkg, line string) Event {
	return Event{Kind: KindInfo, Package: pkg, Text: line}
}

// Completed ends a successful operation
func Completed(pkg, summary string) Event {
	return Event{Kind: KindCompleted, Package: pkg, Text: summary}
}

// Failed ends an unsuccessful operation
func Failed(pkg, reason string) Event {
	return Event{Kind: KindFailed, Package: pkg, Text: reason}
}
