package handlers

import (
	"PogBot/core/dispatch"
)

type ping struct {
	dispatch.NoOpMessageHandler
}

func init() {
	dispatch.Register(&ping{},
		[]dispatch.MessageCommand{
			{Command: "ping", Help: "Responds with latency."},
			{Command: "latency", Help: "Responds with latency."},
		},
		nil, false)
}

func (*ping) HandleCommand(m *dispatch.Message) bool {
	switch m.Command {
	case "ping", "latency":
		m.ReplyToChannel("Pong! **%dms**", m.HeartbeatLatency().Milliseconds())
		return true
	}
	return false
}
