// SPDX-License-Identifier: MPL-2.0

package merge

type (
	// Event is a pipeline lifecycle notification. The concrete types are
	// EventDiscoveryComplete, EventFileProcessed, EventSortComplete and
	// EventWriteComplete.
	Event interface {
		isEvent()
	}

	// EventDiscoveryComplete is emitted once the input file list is known.
	EventDiscoveryComplete struct {
		RunID string
		Root  string
		Files []string
	}

	// EventFileProcessed is emitted after each discovered file is extracted or skipped.
	EventFileProcessed struct {
		// Index is the zero-based position of the file in discovery order.
		Index   int
		Total   int
		Path    string
		Records int
		// Diagnostic is set when the file was skipped or had no boards.
		Diagnostic *Diagnostic
	}

	// EventSortComplete is emitted after validation and sorting succeed.
	EventSortComplete struct {
		Boards  int
		Vendors int
	}

	// EventWriteComplete is emitted after the document was persisted.
	EventWriteComplete struct {
		Path string
	}

	// Observer receives pipeline events synchronously, in order.
	Observer interface {
		Observe(Event)
	}

	// ObserverFunc adapts a function to the Observer interface.
	ObserverFunc func(Event)
)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

func (EventDiscoveryComplete) isEvent() {}
func (EventFileProcessed) isEvent()     {}
func (EventSortComplete) isEvent()      {}
func (EventWriteComplete) isEvent()     {}
