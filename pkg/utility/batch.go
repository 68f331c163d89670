package utility

import (
	"time"

	"github.com/google/uuid"
)

type BatchID = uuid.UUID

// NewBatchID returns a time ordered identifier for one ingestion run.
func NewBatchID() BatchID {
	return uuid.Must(uuid.NewV7())
}

func BatchTime(id BatchID) time.Time {
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec)
}
