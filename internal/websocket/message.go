package websocket

type OutgoingMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
