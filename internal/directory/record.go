package directory

// UserRecord is the typed view of one directory entry, validated once at the
// LDAP boundary. Only the fields the expiration pipeline reads are carried;
// everything else stays in the directory.
type UserRecord struct {
	// Username is the sAMAccountName.
	Username string

	// DisplayName is the displayName attribute, or a name derived from the
	// mail address when the attribute is unset.
	DisplayName string

	// Mail is the primary mail address. Empty means the account cannot be
	// notified individually and is skipped by the evaluator.
	Mail string

	// PwdLastSet is the raw FILETIME counter of the last password change.
	// Zero means the password was never explicitly set.
	PwdLastSet uint64

	// AccountControl carries the raw userAccountControl flags. The search
	// filter already excludes disabled accounts; the value is kept for
	// logging and diagnostics only.
	AccountControl uint32
}
