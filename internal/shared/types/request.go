package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params"`
	AppID  *string                `json:"app_id,omitempty"`
}

// KeyMessage represents an inbound WebSocket key event
type KeyMessage struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	Value  string `json:"value,omitempty"`
}

// WSFrame represents an outbound WebSocket frame
type WSFrame struct {
	Type  string                 `json:"type"`
	Data  map[string]interface{} `json:"data,omitempty"`
	Error string                 `json:"error,omitempty"`
}
