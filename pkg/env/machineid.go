package env

import "github.com/denisbrodbeck/machineid"

// MachineID retrieves the unique ID representing current machine,
// or "unknown" when the host has no readable ID.
func MachineID() string {
	id, err := machineid.ID()
	if err != nil {
		return "unknown"
	}
	return id
}
