// Package scenario defines the external JSON shapes a simulation run is
// configured and reported through, and loads/writes them against the
// domain package's network model. Grounded on utils/input/input.go's
// validation style.
package scenario

// File is the top-level shape of a scenario input document.
type File struct {
	Junctions []JunctionDef `json:"junctions"`
	Roads     []RoadDef     `json:"roads"`
	Vehicles  []VehicleDef  `json:"vehicles"`
}

// JunctionDef describes one junction: its position (used at load time to
// infer each incident road's cardinal direction and length) and its signal
// program.
type JunctionDef struct {
	ID      int         `json:"id"`
	X       int         `json:"x"`
	Y       int         `json:"y"`
	Signals []SignalDef `json:"signals"`
}

// SignalDef is one phase of a junction's signal program.
type SignalDef struct {
	Direction string `json:"direction"` // "N", "E", "S", "W"
	Duration  int    `json:"duration"`
}

// RoadDef is a bidirectional road between two junctions; the loader
// materializes it as two opposing one-way streets.
type RoadDef struct {
	ID            int     `json:"id"`
	Lanes         int     `json:"lanes"`
	SpeedLimitKMH float64 `json:"speedLimitKmh"`
	JunctionA     int     `json:"junctionA"`
	JunctionB     int     `json:"junctionB"`
}

// VehicleDef describes one vehicle's IDM/MOBIL parameters, fixed turn
// sequence, and starting position.
type VehicleDef struct {
	ID                 int      `json:"id"`
	TargetVelocityKMH  float64  `json:"targetVelocityKmh"`
	MaxAcceleration    float64  `json:"maxAcceleration"`
	TargetDeceleration float64  `json:"targetDeceleration"`
	MinDistance        float64  `json:"minDistance"`
	TargetHeadway      float64  `json:"targetHeadway"`
	Politeness         float64  `json:"politeness"`
	Route              []string `json:"route"` // "UTURN", "LEFT", "STRAIGHT", "RIGHT"

	StartRoad      int     `json:"startRoad"`
	StartDirection string  `json:"startDirection"` // "AtoB" or "BtoA"
	StartLane      int     `json:"startLane"`
	StartDistance  float64 `json:"startDistance"`
}

// Result is the top-level shape of a simulation run's output document.
type Result struct {
	Steps    int                `json:"steps"`
	Vehicles []VehicleResult    `json:"vehicles"`
	Streets  []StreetResult     `json:"streets,omitempty"`
}

// VehicleResult is one vehicle's final reported position and cumulative
// travel distance.
type VehicleResult struct {
	ID             int     `json:"id"`
	FinalRoad      int     `json:"finalRoad"`
	FinalDirection string  `json:"finalDirection"`
	FinalLane      int     `json:"finalLane"`
	FinalDistance  float64 `json:"finalDistance"`
	TravelDistance float64 `json:"travelDistance"`
}

// StreetResult reports one street's throughput over the run, keyed by
// the internal (road, direction) pair it was materialized from.
type StreetResult struct {
	Road          int `json:"road"`
	Direction     string `json:"direction"`
	VehicleCrossings int `json:"vehicleCrossings"`
}
