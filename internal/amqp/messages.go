package amqp

import (
	"encoding/json"
	"time"
)

// ReportRequest asks the report worker to render an expense report for one
// owner. It carries only the parameters of the export; the worker reads the
// actual records itself so the message stays small and replayable.
type ReportRequest struct {
	OwnerID     int64     `json:"owner_id"`
	Kind        string    `json:"kind"` // see export.Kind*
	Filename    string    `json:"filename"`
	RequestedAt time.Time `json:"requested_at"`
}

func NewReportRequest(ownerID int64, kind, filename string) *ReportRequest {
	return &ReportRequest{
		OwnerID:     ownerID,
		Kind:        kind,
		Filename:    filename,
		RequestedAt: time.Now(),
	}
}

func (m *ReportRequest) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportRequestFromJSON(data []byte) (*ReportRequest, error) {
	var msg ReportRequest
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
