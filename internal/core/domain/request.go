package domain

import "time"

// Known request statuses. The create flow always starts a request at
// StatusNew; edits accept free text so records written by older tooling
// (or directly in the database) keep round-tripping unchanged.
const (
	StatusNew        = "Новое"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
)

// TitleMaxLen is the upper bound on Request.Title in characters (not bytes),
// mirroring the column limit.
const TitleMaxLen = 255

// Request is a customer support request, the core aggregate of the system.
//
// ID is assigned by storage on creation and never changes. CreatedAt is set
// once at creation time (UTC); no operation mutates it afterwards.
// ResponsibleEmployee is free text, not a reference to a user account.
type Request struct {
	ID                  int       `json:"id" bson:"_id"`
	CreatedAt           time.Time `json:"created_at" bson:"created_at"`
	Title               string    `json:"title" bson:"title"`
	Description         string    `json:"description" bson:"description"`
	Status              string    `json:"status" bson:"status"`
	ResponsibleEmployee string    `json:"responsible_employee,omitempty" bson:"responsible_employee,omitempty"`
}
