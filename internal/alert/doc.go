// Package alert reads and authenticates server-alert notifications.
//
// A server alert is a fixed binary message pushed by the sync server to ask
// the client to start a session. The layout, by byte offset:
//
//	0..6    transport prefix, ignored
//	6..22   digest (16 bytes)
//	22..27  header: version (10 bits), UI mode (2 bits), initiator (1 bit),
//	        27 reserved bits
//	27..29  session id, big endian
//	29      server id length N, followed by N bytes
//	        1 byte whose high nibble is the entry count K
//	        K entries of: 1 byte (high nibble = sync type),
//	        3 bytes content type, 1 byte URI length M, M bytes URI
//	        any remaining bytes are vendor data
//
// The digest is
//
//	MD5( B64(MD5(serverID ":" password)) ":" nonce ":" B64(MD5(bytes[22:])) )
//
// and therefore covers every byte after the digest field.
package alert
