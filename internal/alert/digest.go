package alert

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/base64"

	"github.com/MKhiriev/go-pim-sync/models"
)

// ComputeDigest returns the digest of body, which holds every message byte
// following the digest field.
func ComputeDigest(serverID, password, nonce string, body []byte) [digestLength]byte {
	credentials := md5.Sum([]byte(serverID + ":" + password))
	bodyDigest := md5.Sum(body)

	var buf []byte
	buf = append(buf, base64.StdEncoding.EncodeToString(credentials[:])...)
	buf = append(buf, ':')
	buf = append(buf, nonce...)
	buf = append(buf, ':')
	buf = append(buf, base64.StdEncoding.EncodeToString(bodyDigest[:])...)

	return md5.Sum(buf)
}

// IsValid reports whether msg carries the digest expected for the given
// credentials. Missing credentials never validate.
func IsValid(msg models.AlertMessage, serverID, password, nonce string) bool {
	if serverID == "" || password == "" || nonce == "" || len(msg.Raw) < digestEnd {
		return false
	}

	want := ComputeDigest(serverID, password, nonce, msg.Raw[digestEnd:])
	return subtle.ConstantTimeCompare(want[:], msg.Digest[:]) == 1
}
