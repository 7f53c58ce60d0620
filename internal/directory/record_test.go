package directory

import (
	"testing"

	"github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
)

func TestRecordFromEntry(t *testing.T) {
	entry := ldap.NewEntry("CN=Jane Doe,OU=Staff,DC=corp,DC=example", map[string][]string{
		"sAMAccountName":     {"jdoe"},
		"displayName":        {"Jane Doe"},
		"mail":               {"jane.doe@corp.example"},
		"pwdLastSet":         {"133500000000000000"},
		"userAccountControl": {"512"},
	})

	rec := recordFromEntry(entry)
	assert.Equal(t, "jdoe", rec.Username)
	assert.Equal(t, "Jane Doe", rec.DisplayName)
	assert.Equal(t, "jane.doe@corp.example", rec.Mail)
	assert.Equal(t, uint64(133500000000000000), rec.PwdLastSet)
	assert.Equal(t, uint32(512), rec.AccountControl)
}

func TestRecordFromEntryDerivesDisplayName(t *testing.T) {
	entry := ldap.NewEntry("CN=svc,DC=corp,DC=example", map[string][]string{
		"sAMAccountName": {"jdoe"},
		"mail":           {"jane.doe@corp.example"},
		"pwdLastSet":     {"133500000000000000"},
	})

	rec := recordFromEntry(entry)
	assert.Equal(t, "Jane Doe", rec.DisplayName)
}

func TestRecordFromEntryGarbledPwdLastSet(t *testing.T) {
	// A non-numeric pwdLastSet must parse to the never-set sentinel rather
	// than fail the whole run.
	entry := ldap.NewEntry("CN=x,DC=corp,DC=example", map[string][]string{
		"sAMAccountName": {"broken"},
		"mail":           {"broken@corp.example"},
		"pwdLastSet":     {"not-a-number"},
	})

	rec := recordFromEntry(entry)
	assert.Equal(t, uint64(0), rec.PwdLastSet)
}
