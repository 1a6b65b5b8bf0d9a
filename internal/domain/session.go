package domain

import "time"

// SchedulingSession is the wizard's cross-step draft. It is saved as an
// explicit snapshot per step and expires server-side; the storage medium is
// an implementation detail of the handler layer.
type SchedulingSession struct {
	ID                         string         `json:"id"`
	UserID                     int64          `json:"userID"`
	Step                       int32          `json:"step"`
	StartDate                  time.Time      `json:"startDate"`
	EndDate                    time.Time      `json:"endDate"`
	SelectedTemplateIDs        []int64        `json:"selectedTemplateIDs"`
	SelectedLiturgicalEventIDs []int64        `json:"selectedLiturgicalEventIDs"`
	Batch                      *ProposedBatch `json:"batch,omitempty"`
	UpdatedAt                  time.Time      `json:"updatedAt"`
}
