package ast

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainDocument is the domain prefix for document content identity. The
// version suffix enables future algorithm migration.
const DomainDocument = "smithyast/document/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DocumentHash computes the content-addressed identity of a validated
// document. The hash is stable across re-encoding: it is taken over the
// canonical serialization of the encoded value tree.
func DocumentHash(d *Document) (string, error) {
	data, err := MarshalCanonical(d.Encode())
	if err != nil {
		return "", err
	}
	return hashWithDomain(DomainDocument, data), nil
}
