package websocket

import (
	"github.com/rocketscienceinc/tictactoe-pad/internal/render"
)

const actionFrame = "frame"

// Message is the envelope of everything sent over the feed.
type Message struct {
	Action  string        `json:"action"`
	Payload *render.Frame `json:"payload,omitempty"`
}

func frameMessage(frame render.Frame) Message {
	return Message{Action: actionFrame, Payload: &frame}
}
