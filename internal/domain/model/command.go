package model

// Command is one inbound chat command flowing through the queue to the
// single command worker.
type Command struct {
	ID        string // request id for tracing
	DiscordID int64  // acting user
	Text      string // raw command text, e.g. "select A,2"

	// Reply receives the rendered response. Buffered with capacity 1 by
	// the dispatcher so the worker never blocks on a gone caller.
	Reply chan Reply
}

// Reply is the rendered outcome of a command. Every outcome is user-facing
// text; there is no silent failure mode.
type Reply struct {
	Text string
}
