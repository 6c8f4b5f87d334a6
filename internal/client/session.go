package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ericfisherdev/passop/internal/domain/model"
)

// Notification texts shown by front ends.
const (
	msgSaved        = "Password saved successfully!"
	msgDeleted      = "Password deleted!"
	msgCopied       = "Copied to the clipboard!"
	msgCopyFailed   = "Failed to copy!"
	msgLoadFailed   = "Failed to load passwords."
	msgSaveFailed   = "Error saving password."
	msgUpdateFailed = "Error updating password."
	msgDeleteFailed = "Failed to delete password."
	msgFillAll      = "Please fill all fields"
)

var (
	// ErrIncompleteForm is returned by Save when a new record is missing a field.
	ErrIncompleteForm = errors.New("site, username and password are required")

	// ErrNoSuchRecord is returned for a list position outside the current list.
	ErrNoSuchRecord = errors.New("no record at that position")
)

// Column names a copyable field of a record.
type Column string

// Copyable columns.
const (
	ColumnSite     Column = "site"
	ColumnUsername Column = "username"
	ColumnPassword Column = "password"
)

// ParseColumn maps a column name to a Column, ignoring case.
func ParseColumn(s string) (Column, error) {
	switch c := Column(strings.ToLower(strings.TrimSpace(s))); c {
	case ColumnSite, ColumnUsername, ColumnPassword:
		return c, nil
	default:
		return "", fmt.Errorf("unknown column %q (want site, username or password)", s)
	}
}

// Form holds the values being entered for a new or edited record.
type Form struct {
	Site     string
	Username string
	Password string
}

func (f Form) credential() model.Credential {
	return model.Credential{Site: f.Site, Username: f.Username, Password: f.Password}
}

// Store is the subset of Client a Session drives.
type Store interface {
	List(ctx context.Context) ([]model.Credential, error)
	Create(ctx context.Context, cred model.Credential) (model.InsertResult, error)
	UpdatePassword(ctx context.Context, key model.CredentialKey, password string) (string, error)
	Delete(ctx context.Context, key model.CredentialKey) error
}

// Session is the state of one front end: the form, the last fetched list
// and which record, if any, is being edited. The list is only ever replaced
// wholesale from the service after a mutation has been confirmed.
type Session struct {
	store     Store
	clipboard Clipboard
	notifier  Notifier

	Form         Form
	ShowPassword bool
	Records      []model.Credential

	editing bool
	editID  string
}

// NewSession creates a Session. A nil notifier discards messages.
func NewSession(store Store, clip Clipboard, notifier Notifier) *Session {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &Session{
		store:     store,
		clipboard: clip,
		notifier:  notifier,
		Records:   []model.Credential{},
	}
}

// Editing reports whether the next Save updates an existing record.
func (s *Session) Editing() bool {
	return s.editing
}

// EditID returns the ID of the record being edited.
func (s *Session) EditID() string {
	return s.editID
}

// TogglePassword flips password visibility and returns the new state.
func (s *Session) TogglePassword() bool {
	s.ShowPassword = !s.ShowPassword
	return s.ShowPassword
}

// Refresh replaces Records with the service's current list. On failure
// Records is left as it was.
func (s *Session) Refresh(ctx context.Context) error {
	creds, err := s.store.List(ctx)
	if err != nil {
		s.notifier.Error(msgLoadFailed)
		return err
	}
	s.Records = creds
	return nil
}

// Record returns the record at position i of the current list.
func (s *Session) Record(i int) (model.Credential, error) {
	if i < 0 || i >= len(s.Records) {
		return model.Credential{}, fmt.Errorf("%w: %d", ErrNoSuchRecord, i)
	}
	return s.Records[i], nil
}

// Edit loads record i into the form and marks it as the edit target.
func (s *Session) Edit(i int) error {
	rec, err := s.Record(i)
	if err != nil {
		return err
	}
	s.Form = Form{Site: rec.Site, Username: rec.Username, Password: rec.Password}
	s.editing = true
	s.editID = rec.ID
	return nil
}

// ClearForm empties the form and drops the edit target.
func (s *Session) ClearForm() {
	s.Form = Form{}
	s.editing = false
	s.editID = ""
}

// Save sends the form to the service: an update of the edit target when
// editing, a create otherwise. The form is cleared afterwards whatever the
// outcome, and the list is re-fetched after a confirmed write.
func (s *Session) Save(ctx context.Context) error {
	defer s.ClearForm()

	if s.editing {
		return s.saveEdit(ctx)
	}
	return s.saveNew(ctx)
}

func (s *Session) saveEdit(ctx context.Context) error {
	key := model.CredentialKey{ID: s.editID, Site: s.Form.Site, Username: s.Form.Username}

	msg, err := s.store.UpdatePassword(ctx, key, s.Form.Password)
	if err != nil {
		s.notifier.Error(apiMessage(err, msgUpdateFailed))
		return err
	}

	s.notifier.Success(msg)
	return s.Refresh(ctx)
}

func (s *Session) saveNew(ctx context.Context) error {
	cred := s.Form.credential()
	if !cred.IsComplete() {
		s.notifier.Error(msgFillAll)
		return ErrIncompleteForm
	}

	if _, err := s.store.Create(ctx, cred); err != nil {
		s.notifier.Error(apiMessage(err, msgSaveFailed))
		return err
	}

	s.notifier.Success(msgSaved)
	return s.Refresh(ctx)
}

// Delete removes record i on the service and re-fetches the list. A record
// already gone on the service is reported as a failure.
func (s *Session) Delete(ctx context.Context, i int) error {
	rec, err := s.Record(i)
	if err != nil {
		return err
	}

	delErr := s.store.Delete(ctx, rec.Key())
	if delErr != nil {
		s.notifier.Error(apiMessage(delErr, msgDeleteFailed))
	} else {
		s.notifier.Success(msgDeleted)
	}

	if err := s.Refresh(ctx); err != nil && delErr == nil {
		return err
	}
	return delErr
}

// Copy writes the given field of record i to the clipboard.
func (s *Session) Copy(i int, col Column) error {
	rec, err := s.Record(i)
	if err != nil {
		return err
	}

	var text string
	switch col {
	case ColumnSite:
		text = rec.Site
	case ColumnUsername:
		text = rec.Username
	case ColumnPassword:
		text = rec.Password
	default:
		return fmt.Errorf("unknown column %q", col)
	}

	if err := s.clipboard.WriteAll(text); err != nil {
		s.notifier.Error(msgCopyFailed)
		return fmt.Errorf("copy %s: %w", col, err)
	}

	s.notifier.Success(msgCopied)
	return nil
}

// apiMessage returns the service's message carried by err, or fallback.
func apiMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type discardNotifier struct{}

func (discardNotifier) Success(string) {}
func (discardNotifier) Error(string)   {}
