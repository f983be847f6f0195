// Package codec converts address book contacts to and from the record
// payloads exchanged with the sync server.
package codec

import (
	"errors"

	"github.com/MKhiriev/go-pim-sync/models"
)

// ErrInvalidVCard is returned when a payload is not a vCard object.
var ErrInvalidVCard = errors.New("invalid vcard")

// Codec encodes contacts into one content type.
type Codec interface {
	ContentType() string
	Encode(contact models.Contact) ([]byte, error)
	Decode(data []byte) (models.Contact, error)
}
