package models

// -----------------------------------------------------------------------------
// Stream message pushed to websocket clients
// -----------------------------------------------------------------------------

type MLatestData struct {
	Type     string            `json:"type"` // "INITIAL" or "UPDATE"
	Snapshot MSnapshotResponse `json:"snapshot"`
}

// -----------------------------------------------------------------------------
// SubscribeCommand for client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command    string   `json:"command"`
	Categories []string `json:"categories"`
}
