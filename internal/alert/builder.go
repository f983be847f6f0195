package alert

import (
	"encoding/binary"
	"fmt"

	"github.com/MKhiriev/go-pim-sync/models"
)

// Marshal encodes msg and signs it with the given credentials. msg.Digest
// and msg.Raw are ignored. The transport prefix is left zeroed.
func Marshal(msg models.AlertMessage, serverID, password, nonce string) ([]byte, error) {
	if msg.Version < 0 || msg.Version > 0x3FF {
		return nil, fmt.Errorf("version %d does not fit in 10 bits", msg.Version)
	}
	if msg.UIMode < 0 || msg.UIMode > 3 {
		return nil, fmt.Errorf("ui mode %d does not fit in 2 bits", msg.UIMode)
	}
	if len(msg.ServerID) > 0xFF {
		return nil, fmt.Errorf("server id is %d bytes long, at most 255 allowed", len(msg.ServerID))
	}
	if len(msg.Syncs) > 0x0F {
		return nil, fmt.Errorf("%d sync entries, at most 15 allowed", len(msg.Syncs))
	}

	out := make([]byte, digestEnd, fixedLength+64)

	var header [headerLength]byte
	header[0] = byte(msg.Version >> 2)
	header[1] = byte(msg.Version&0x03)<<6 | byte(msg.UIMode)<<4
	if msg.Initiator {
		header[1] |= 0x08
	}
	out = append(out, header[:]...)
	out = binary.BigEndian.AppendUint16(out, msg.SessionID)

	out = append(out, byte(len(msg.ServerID)))
	out = append(out, msg.ServerID...)
	out = append(out, byte(len(msg.Syncs))<<4)

	for i, s := range msg.Syncs {
		if s.SyncType < 0 || s.SyncType > 0x0F {
			return nil, fmt.Errorf("entry %d: sync type %d does not fit in 4 bits", i, s.SyncType)
		}
		if len(s.StoreURI) > 0xFF {
			return nil, fmt.Errorf("entry %d: uri is %d bytes long, at most 255 allowed", i, len(s.StoreURI))
		}
		out = append(out,
			byte(s.SyncType)<<4,
			byte(s.ContentType>>16), byte(s.ContentType>>8), byte(s.ContentType),
			byte(len(s.StoreURI)),
		)
		out = append(out, s.StoreURI...)
	}
	out = append(out, msg.VendorData...)

	digest := ComputeDigest(serverID, password, nonce, out[digestEnd:])
	copy(out[prefixLength:digestEnd], digest[:])

	return out, nil
}
