// internal/status/snapshot.go
package status

// Snapshot represents exactly what the status writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health           uint16
	FailureCount     uint16
	SecondsInError   uint16
	LabelsConfigured uint16
	LabelsValid      uint16
}

// Health derives the health code of a bus from its failure state and the
// number of valid labels.
func Health(failed bool, configured, valid int) uint16 {
	switch {
	case failed:
		return HealthError
	case valid < configured:
		return HealthStale
	default:
		return HealthOK
	}
}

// Clamp16 saturates v into a register.
func Clamp16(v uint32) uint16 {
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
