package assistant

import "squire/internal/status"

// Workers never touch assistant state directly; they post one of these
// messages and the run loop applies it. Processing order is arrival order.
type message interface {
	isMessage()
}

// utteranceMessage carries recognized or typed input text.
type utteranceMessage struct {
	text string
}

// captureFailedMessage carries a terminal capture failure.
type captureFailedMessage struct {
	err error
}

// statusMessage carries one poll result from the status worker.
type statusMessage struct {
	update status.Update
}

// credentialsMessage carries a Steam credential update.
type credentialsMessage struct {
	apiKey  string
	steamID string
}

func (utteranceMessage) isMessage()     {}
func (captureFailedMessage) isMessage() {}
func (statusMessage) isMessage()        {}
func (credentialsMessage) isMessage()   {}
