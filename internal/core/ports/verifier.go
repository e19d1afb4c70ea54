package ports

// OutputVerifier defines the interface for verifying file existence.
//
//go:generate mockgen -destination=mocks/verifier_mock.go -package=mocks -source=verifier.go
type OutputVerifier interface {
	// MissingOutputs returns the given paths that do not exist.
	MissingOutputs(paths []string) ([]string, error)
}
