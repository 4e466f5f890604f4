package models

import "time"

// MoverStatus is the lifecycle state of a mover.
type MoverStatus string

const (
	StatusResting   MoverStatus = "Resting"
	StatusLoading   MoverStatus = "Loading"
	StatusOnMission MoverStatus = "On-Mission"
)

// transitions is the lifecycle state machine: the sole legal successor of
// each state. Resting loads into Loading, Loading departs On-Mission, and
// On-Mission returns to Resting.
var transitions = map[MoverStatus]MoverStatus{
	StatusResting:   StatusLoading,
	StatusLoading:   StatusOnMission,
	StatusOnMission: StatusResting,
}

// NextStatus returns the sole legal successor of a lifecycle state.
func NextStatus(from MoverStatus) MoverStatus {
	return transitions[from]
}

// Mover is a transport unit with a fixed weight capacity and a mutable
// lifecycle status. Status is the only field that changes after creation.
type Mover struct {
	ID        string      `db:"id" json:"id"`
	MaxWeight int         `db:"max_weight" json:"max_weight"`
	Status    MoverStatus `db:"status" json:"status"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}

// MoverMissionCount is one leaderboard row: a mover joined with its
// completed-mission count.
type MoverMissionCount struct {
	MoverID      string `db:"mover_id" json:"mover_id"`
	MissionCount int    `db:"mission_count" json:"mission_count"`
	Mover        Mover  `json:"mover"`
}
