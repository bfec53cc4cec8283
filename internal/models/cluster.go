package models

import "time"

// Cluster is a row projection of a provisioned cluster. Clusters are
// created and destroyed by the provisioning controller; the dashboard
// only reads them. JSON keys mirror the column names the UI consumes.
type Cluster struct {
	Name              string    `json:"name" db:"name"`
	Status            string    `json:"status" db:"status"` // pending, running, stopped, failed
	CreationTimestamp time.Time `json:"creationtimestamp" db:"creationtimestamp"`
	Cost              float64   `json:"cost" db:"cost"`
}
