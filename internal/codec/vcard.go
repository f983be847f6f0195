// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pim-sync/models"
)

const (
	VCardContentType = "text/x-vcard"

	vcardVersion = "3.0"
	crlf         = "\r\n"
	// lines longer than this are folded on encode
	maxLineLength = 75
)

// VCard is a [Codec] for the subset of vCard 2.1/3.0 the address book keeps:
// N, FN, ORG, TEL, EMAIL and NOTE. Other properties are ignored on decode.
type VCard struct{}

// NewVCard returns a vCard codec.
func NewVCard() *VCard {
	return &VCard{}
}

func (v *VCard) ContentType() string {
	return VCardContentType
}

// Encode renders contact as a vCard 3.0 object.
func (v *VCard) Encode(contact models.Contact) ([]byte, error) {
	var buf bytes.Buffer

	writeLine(&buf, "BEGIN:VCARD")
	writeLine(&buf, "VERSION:"+vcardVersion)
	writeLine(&buf, "N:"+escape(contact.FamilyName)+";"+escape(contact.GivenName)+";;;")

	displayName := contact.DisplayName
	if displayName == "" {
		displayName = strings.TrimSpace(contact.GivenName + " " + contact.FamilyName)
	}
	writeLine(&buf, "FN:"+escape(displayName))

	if contact.Organization != "" {
		writeLine(&buf, "ORG:"+escape(contact.Organization))
	}
	for _, phone := range contact.Phones {
		writeLine(&buf, "TEL;TYPE=VOICE:"+escape(phone))
	}
	for _, email := range contact.Emails {
		writeLine(&buf, "EMAIL;TYPE=INTERNET:"+escape(email))
	}
	if contact.Note != "" {
		writeLine(&buf, "NOTE:"+escape(contact.Note))
	}
	writeLine(&buf, "END:VCARD")

	return buf.Bytes(), nil
}

// Decode parses a single vCard object. Folded lines are joined and escaped
// characters are restored.
func (v *VCard) Decode(data []byte) (models.Contact, error) {
	lines := unfold(string(data))

	var (
		contact models.Contact
		begun   bool
		ended   bool
	)
	for _, line := range lines {
		if line == "" {
			continue
		}

		name, value, ok := splitProperty(line)
		if !ok {
			return models.Contact{}, fmt.Errorf("%w: malformed line %q", ErrInvalidVCard, line)
		}

		switch name {
		case "BEGIN":
			if !strings.EqualFold(value, "VCARD") {
				return models.Contact{}, fmt.Errorf("%w: unexpected BEGIN:%s", ErrInvalidVCard, value)
			}
			begun = true
		case "END":
			ended = true
		case "N":
			parts := splitStructured(value)
			contact.FamilyName = parts[0]
			if len(parts) > 1 {
				contact.GivenName = parts[1]
			}
		case "FN":
			contact.DisplayName = unescape(value)
		case "ORG":
			contact.Organization = splitStructured(value)[0]
		case "TEL":
			contact.Phones = append(contact.Phones, unescape(value))
		case "EMAIL":
			contact.Emails = append(contact.Emails, unescape(value))
		case "NOTE":
			contact.Note = unescape(value)
		}

		if ended {
			break
		}
	}

	if !begun || !ended {
		return models.Contact{}, fmt.Errorf("%w: missing BEGIN or END", ErrInvalidVCard)
	}

	return contact, nil
}

func writeLine(buf *bytes.Buffer, line string) {
	for len(line) > maxLineLength {
		cut := maxLineLength
		// do not split a multi-byte rune
		for cut > 0 && !isRuneStart(line[cut]) {
			cut--
		}
		buf.WriteString(line[:cut])
		buf.WriteString(crlf + " ")
		line = line[cut:]
	}
	buf.WriteString(line)
	buf.WriteString(crlf)
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// unfold splits data into logical lines. A line starting with a space or tab
// continues the previous one.
func unfold(data string) []string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	raw := strings.Split(data, "\n")

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}

	return lines
}

// splitProperty returns the upper-cased property name without parameters or
// group prefix, and the raw value.
func splitProperty(line string) (string, string, bool) {
	head, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}

	name, _, _ := strings.Cut(head, ";")
	if _, after, grouped := strings.Cut(name, "."); grouped {
		name = after
	}

	return strings.ToUpper(strings.TrimSpace(name)), value, true
}

// splitStructured splits a structured value on unescaped semicolons. The
// result always has at least one element.
func splitStructured(value string) []string {
	var (
		parts   []string
		current strings.Builder
	)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\\' && i+1 < len(value) {
			current.WriteByte(c)
			current.WriteByte(value[i+1])
			i++
			continue
		}
		if c == ';' {
			parts = append(parts, unescape(current.String()))
			current.Reset()
			continue
		}
		current.WriteByte(c)
	}

	return append(parts, unescape(current.String()))
}

var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`, ";", `\;`, ",", `\,`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\N`, "\n", `\;`, ";", `\,`, ",")
)

func escape(s string) string {
	return escaper.Replace(strings.ReplaceAll(s, "\r\n", "\n"))
}

func unescape(s string) string {
	return unescaper.Replace(s)
}
