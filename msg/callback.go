package msg

// CallbackAction is a receive handler's verdict on message ownership.
type CallbackAction uint8

const (
	// ActionRelease returns ownership to the dispatcher, which frees the
	// message after the handler returns.
	ActionRelease CallbackAction = iota
	// ActionTake transfers ownership to the handler, which must free the
	// message itself when done.
	ActionTake
)

func (a CallbackAction) String() string {
	switch a {
	case ActionRelease:
		return "Release"
	case ActionTake:
		return "Take"
	default:
		return "Unknown"
	}
}

// Handler processes one received message and decides who owns it
// afterwards.
type Handler func(m *Message) CallbackAction

// Dispatch hands the message to a receive handler and enforces the
// ownership contract: unless the handler takes the message, it is freed
// when the handler returns. A handler that takes the message keeps it
// alive past the dispatch and frees it on its own schedule.
func Dispatch(m *Message, h Handler) error {
	if err := m.check(); err != nil {
		return err
	}

	if h(m) == ActionTake {
		return nil
	}

	return m.Free()
}
