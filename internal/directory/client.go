package directory

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-ldap/ldap/v3"

	"passwatch/internal/platform/config"
	"passwatch/pkg/email"
)

// Accounts only: persons, user class, not disabled (bit 2 of
// userAccountControl, matched with the LDAP_MATCHING_RULE_BIT_AND OID).
const searchFilter = "(&(objectCategory=person)(objectClass=user)(!(userAccountControl:1.2.840.113556.1.4.803:=2)))"

// AD caps result sets; page through rather than relying on the server limit.
const pageSize = 500

var searchAttributes = []string{
	"sAMAccountName",
	"displayName",
	"mail",
	"pwdLastSet",
	"userAccountControl",
}

// Client queries Active Directory for user records. Each call opens a fresh
// connection for the duration of one search; nothing is cached between runs.
type Client struct {
	cfg    config.ActiveDirectory
	logger *slog.Logger
}

type ClientOption func(*Client)

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(cfg config.ActiveDirectory, opts ...ClientOption) *Client {
	c := &Client{cfg: cfg, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Users binds to the directory and returns every matching account as a typed
// record. Any connection or search failure abandons the whole query; the
// caller treats that as "run abandoned, retry on next schedule".
func (c *Client) Users(ctx context.Context) ([]UserRecord, error) {
	conn, err := ldap.DialURL(c.cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("connect to directory: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.Bind(c.cfg.BindUser, c.cfg.BindPassword); err != nil {
		return nil, fmt.Errorf("bind to directory: %w", err)
	}
	c.logger.DebugContext(ctx, "connected to directory", "server", c.cfg.Server)

	req := ldap.NewSearchRequest(
		c.cfg.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		searchFilter,
		searchAttributes,
		nil,
	)
	res, err := conn.SearchWithPaging(req, pageSize)
	if err != nil {
		return nil, fmt.Errorf("search directory: %w", err)
	}

	records := make([]UserRecord, 0, len(res.Entries))
	for _, entry := range res.Entries {
		records = append(records, recordFromEntry(entry))
	}
	c.logger.DebugContext(ctx, "directory search complete", "entries", len(records))
	return records, nil
}

// recordFromEntry is the single place raw attributes become a typed record.
// A missing or garbled pwdLastSet parses to 0, which the evaluator treats as
// "never set" and skips.
func recordFromEntry(entry *ldap.Entry) UserRecord {
	rec := UserRecord{
		Username:    entry.GetAttributeValue("sAMAccountName"),
		DisplayName: entry.GetAttributeValue("displayName"),
		Mail:        entry.GetAttributeValue("mail"),
	}
	if v := entry.GetAttributeValue("pwdLastSet"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			rec.PwdLastSet = n
		}
	}
	if v := entry.GetAttributeValue("userAccountControl"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			rec.AccountControl = uint32(n)
		}
	}
	if rec.DisplayName == "" && rec.Mail != "" {
		rec.DisplayName = email.DisplayNameFromAddress(rec.Mail)
	}
	return rec
}
