package domain

// Stamp is the record of a target's last successful invocation.
type Stamp struct {
	Name         string   `json:"name"`
	Dependencies []string `json:"dependencies"`
	// Inputs are the resolved absolute input paths, sorted.
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
	// Hashes maps every entry of Inputs to its content hash at the time of the build.
	Hashes      map[string]string `json:"hashes"`
	Fingerprint string            `json:"fingerprint"`
}

// InputHashes returns the hash of every recorded input.
// Inputs without a recorded hash are reported with an empty hash, so they count as modified.
func (s *Stamp) InputHashes() map[string]string {
	hashes := make(map[string]string, len(s.Inputs))
	for _, p := range s.Inputs {
		hashes[p] = s.Hashes[p]
	}
	return hashes
}
