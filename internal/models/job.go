package models

// Job is a row projection of a submitted job. Read-only from the
// dashboard's perspective; lifecycle is owned by the scheduler.
type Job struct {
	ID                  int    `json:"id" db:"id"`
	Status              string `json:"status" db:"status"`
	ClusterName         string `json:"clustername" db:"clustername"` // references Cluster.Name
	Author              int    `json:"author" db:"author"`           // references User.ID
	PlatformDependentID string `json:"platformdependentid" db:"platformdependentid"`
	ExecutablePath      string `json:"executablepath" db:"executablepath"`
}
