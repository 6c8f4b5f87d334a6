package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/passop/internal/domain/model"
)

// Sentinel errors returned by CredentialStore implementations.
var (
	// ErrNotFound indicates no record matched the given key.
	ErrNotFound = errors.New("credential not found")

	// ErrNotUpdated indicates an update matched nothing or left the stored
	// value unchanged.
	ErrNotUpdated = errors.New("credential not found or not updated")
)

// CredentialStore defines the driven port for credential persistence.
// Implementations own the connection to the backing store and release it
// in Close.
type CredentialStore interface {
	// List returns every stored record in insertion order.
	List(ctx context.Context) ([]model.Credential, error)

	// Insert stores cred as given. A missing ID is generated by the store.
	Insert(ctx context.Context, cred model.Credential) (model.InsertResult, error)

	// UpdatePassword overwrites the password of the first record matching key.
	// It reports update counts and never returns ErrNotUpdated itself.
	UpdatePassword(ctx context.Context, key model.CredentialKey, password string) (model.UpdateResult, error)

	// Delete removes the first record matching key and returns how many
	// records were removed (0 or 1).
	Delete(ctx context.Context, key model.CredentialKey) (int64, error)

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection to the backing store.
	Close(ctx context.Context) error
}
