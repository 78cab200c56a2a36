// Package codec converts shared secrets between their human-facing text form
// and raw key bytes.
//
// Secrets are exchanged as unpadded upper case Base32 (RFC 4648, alphabet
// A-Z and 2-7). Input is normalized before decoding: all whitespace is
// removed and letters are upper cased, so "jbsw y3dp ehpk 3pxp" and
// "JBSWY3DPEHPK3PXP" decode to the same bytes. Hexadecimal helpers follow
// the same normalization and failure contract.
//
// Every decode failure wraps ErrDecode:
//
//	key, err := codec.DecodeBase32(secret)
//	if errors.Is(err, codec.ErrDecode) {
//	    // reject the secret, never fall back to a zero key
//	}
package codec
