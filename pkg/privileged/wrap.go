package privileged

import "strings"

// Wrap builds the command line actually spawned for a privileged command:
//
//	<terminal> '<escalate> <command> <confirm>; echo '<prompt>'; read _'
//
// Without a terminal the escalated command is returned as is, since there is
// no window to keep open.
func (e *Executor) Wrap(command string) string {
	inner := joinNonEmpty(e.config.Escalate, command, e.config.ConfirmFlag)
	if e.config.Terminal == "" {
		return inner
	}

	script := inner + "; echo " + shellQuote(e.config.PausePrompt) + "; read _"
	return e.config.Terminal + " " + shellQuote(script)
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// shellQuote wraps s in single quotes for /bin/sh
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
