package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/passop/internal/domain/model"
	"github.com/ericfisherdev/passop/internal/domain/port/driven"
)

// ErrInvalidData is returned when a required field of an update or delete
// request is missing.
var ErrInvalidData = errors.New("invalid data")

// CredentialService implements the list/create/update/delete operations of
// the store service. It depends only on the CredentialStore port.
type CredentialService struct {
	store  driven.CredentialStore
	logger *slog.Logger
}

// NewCredentialService creates a CredentialService backed by store.
func NewCredentialService(store driven.CredentialStore, logger *slog.Logger) *CredentialService {
	return &CredentialService{
		store:  store,
		logger: logger,
	}
}

// List returns every stored record. A nil slice is normalized to empty so
// callers always render a JSON array.
func (s *CredentialService) List(ctx context.Context) ([]model.Credential, error) {
	creds, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	if creds == nil {
		creds = []model.Credential{}
	}
	return creds, nil
}

// Create stores cred as given. Field presence is validated by clients only;
// the service accepts incomplete records.
func (s *CredentialService) Create(ctx context.Context, cred model.Credential) (model.InsertResult, error) {
	// IDs are always service-generated.
	cred.ID = ""

	result, err := s.store.Insert(ctx, cred)
	if err != nil {
		return model.InsertResult{}, fmt.Errorf("create credential for %q: %w", cred.Site, err)
	}
	return result, nil
}

// Update overwrites the password of the record selected by key. All of
// site, username and password must be present. A write that modifies
// nothing, because no record matched or the password was already equal,
// returns driven.ErrNotUpdated.
func (s *CredentialService) Update(ctx context.Context, key model.CredentialKey, password string) error {
	if !key.HasSiteAndUsername() || password == "" {
		return ErrInvalidData
	}

	result, err := s.store.UpdatePassword(ctx, key, password)
	if err != nil {
		return fmt.Errorf("update credential for %q: %w", key.Site, err)
	}

	s.logger.Debug("update result",
		"site", key.Site,
		"username", key.Username,
		"matched", result.Matched,
		"modified", result.Modified,
	)

	if result.Modified == 0 {
		return driven.ErrNotUpdated
	}
	return nil
}

// Delete removes the record selected by key. Site and username are
// required; driven.ErrNotFound is returned when nothing was removed.
func (s *CredentialService) Delete(ctx context.Context, key model.CredentialKey) error {
	if !key.HasSiteAndUsername() {
		return ErrInvalidData
	}

	deleted, err := s.store.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("delete credential for %q: %w", key.Site, err)
	}
	if deleted == 0 {
		return driven.ErrNotFound
	}
	return nil
}

// Ping reports whether the backing store is reachable.
func (s *CredentialService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
