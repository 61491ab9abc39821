package driven

// SecretStore is the OS secret vault, exposed as named get/set/delete.
// Implementations must return domain.ErrNotFound (wrapped) for a missing
// name and domain.ErrState (wrapped) when the vault itself is
// unavailable.
type SecretStore interface {
	// Get returns the secret stored under name.
	Get(name string) (string, error)

	// Set stores value under name, replacing any previous value.
	Set(name, value string) error

	// Delete removes the secret stored under name.
	// Deleting a missing name is not an error.
	Delete(name string) error
}
