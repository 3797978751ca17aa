package interfaces

import "market-pulse/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the interface for pushing snapshots to external listeners.
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Broadcast pushes a snapshot to every connected listener and keeps it as
	// the initial state for new ones.
	Broadcast(snapshot models.MSnapshotResponse)

	// -----------------------------------------------------------------------------
	// Connections returns the number of connected listeners.
	Connections() int
}
