package model

import "strings"

// Credential is a stored (site, username, password) record. ID is generated
// by the service on insert and is the only stable way to address a single
// record, since (Site, Username) pairs may repeat.
type Credential struct {
	ID       string `json:"_id" bson:"_id"`
	Site     string `json:"site" bson:"site"`
	Username string `json:"username" bson:"username"`
	Password string `json:"password" bson:"password"`
}

// Key returns the matching key for this record, including its ID.
func (c Credential) Key() CredentialKey {
	return CredentialKey{ID: c.ID, Site: c.Site, Username: c.Username}
}

// IsComplete reports whether site, username and password are all non-empty.
func (c Credential) IsComplete() bool {
	return strings.TrimSpace(c.Site) != "" &&
		strings.TrimSpace(c.Username) != "" &&
		c.Password != ""
}

// CredentialKey selects the record an update or delete acts on. Site and
// Username always take part in the match; a non-empty ID narrows it to that
// one record. Without ID the first match in storage order is used.
type CredentialKey struct {
	ID       string
	Site     string
	Username string
}

// HasSiteAndUsername reports whether both matching fields are present.
func (k CredentialKey) HasSiteAndUsername() bool {
	return k.Site != "" && k.Username != ""
}
