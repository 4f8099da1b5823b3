package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the outbox_events table.
// Rows are written in the commit transaction of the product changes they describe.
type Data struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     spanner.NullJSON
	Status      string
	CreatedAt   time.Time
}
