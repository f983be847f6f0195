// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package alert

import (
	"encoding/binary"
	"fmt"

	"github.com/MKhiriev/go-pim-sync/models"
)

const (
	prefixLength = 6
	digestLength = 16
	digestEnd    = prefixLength + digestLength
	headerLength = 5
	// fixed part: prefix, digest, header, session id
	fixedLength = digestEnd + headerLength + 2

	entryFixedLength = 1 + 3 + 1
)

// reader walks the message and refuses to read past its end.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) take(n int, what string) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, fmt.Errorf("%w: %s at offset %d needs %d bytes, %d left",
			ErrMalformedAlert, what, r.pos, n, len(r.buf)-r.pos)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readByte(what string) (byte, error) {
	b, err := r.take(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Parse decodes a server alert. It never returns a partially filled message:
// any structural problem yields an error wrapping [ErrMalformedAlert].
func Parse(data []byte) (models.AlertMessage, error) {
	if len(data) < fixedLength {
		return models.AlertMessage{}, fmt.Errorf("%w: %d bytes is shorter than the fixed part (%d)",
			ErrMalformedAlert, len(data), fixedLength)
	}

	r := &reader{buf: data, pos: prefixLength}
	var msg models.AlertMessage

	digest, _ := r.take(digestLength, "digest")
	copy(msg.Digest[:], digest)

	header, _ := r.take(headerLength, "header")
	msg.Version = int(header[0])<<2 | int(header[1]>>6)
	msg.UIMode = int(header[1]>>4) & 0x03
	msg.Initiator = header[1]&0x08 != 0

	sessionID, _ := r.take(2, "session id")
	msg.SessionID = binary.BigEndian.Uint16(sessionID)

	serverIDLength, err := r.readByte("server id length")
	if err != nil {
		return models.AlertMessage{}, err
	}
	serverID, err := r.take(int(serverIDLength), "server id")
	if err != nil {
		return models.AlertMessage{}, err
	}
	msg.ServerID = string(serverID)

	countByte, err := r.readByte("entry count")
	if err != nil {
		return models.AlertMessage{}, err
	}
	count := int(countByte >> 4)

	msg.Syncs = make([]models.AlertSync, 0, count)
	for i := range count {
		entry, err := r.take(entryFixedLength-1, fmt.Sprintf("entry %d", i))
		if err != nil {
			return models.AlertMessage{}, err
		}
		uriLength, err := r.readByte(fmt.Sprintf("entry %d uri length", i))
		if err != nil {
			return models.AlertMessage{}, err
		}
		uri, err := r.take(int(uriLength), fmt.Sprintf("entry %d uri", i))
		if err != nil {
			return models.AlertMessage{}, err
		}

		msg.Syncs = append(msg.Syncs, models.AlertSync{
			SyncType:    int(entry[0] >> 4),
			ContentType: uint32(entry[1])<<16 | uint32(entry[2])<<8 | uint32(entry[3]),
			StoreURI:    string(uri),
		})
	}

	if rest := data[r.pos:]; len(rest) > 0 {
		msg.VendorData = append([]byte(nil), rest...)
	}
	msg.Raw = append([]byte(nil), data...)

	return msg, nil
}
