// Package export provides functions to export contacts to interchange formats.
package export

import (
	"strings"

	"github.com/matsen/contacts/internal/contact"
)

// ToVCard converts a contact to a vCard 4.0 entry (RFC 6350).
// Lines end in CRLF as the format requires.
func ToVCard(c contact.Contact) string {
	var b strings.Builder

	b.WriteString("BEGIN:VCARD\r\n")
	b.WriteString("VERSION:4.0\r\n")
	b.WriteString("UID:" + escapeVCard(c.ID.String()) + "\r\n")
	b.WriteString("FN:" + escapeVCard(c.Name) + "\r\n")

	// Email and phone are optional in hand-edited files
	if c.Email != "" {
		b.WriteString("EMAIL:" + escapeVCard(c.Email) + "\r\n")
	}
	if c.Phone != "" {
		b.WriteString("TEL;VALUE=text:" + escapeVCard(c.Phone) + "\r\n")
	}

	b.WriteString("END:VCARD\r\n")

	return b.String()
}

// ToVCardList converts multiple contacts to a single vCard stream.
func ToVCardList(contacts []contact.Contact) string {
	var b strings.Builder
	for _, c := range contacts {
		b.WriteString(ToVCard(c))
	}
	return b.String()
}

// escapeVCard escapes text property values: backslash, comma, semicolon and newlines.
func escapeVCard(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		",", `\,`,
		";", `\;`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return replacer.Replace(s)
}
