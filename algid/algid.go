// Package algid enumerates the algorithm identifiers understood by the
// strategy registry, together with their category, family and parameter
// sizes. Identifiers are stable serializable values used as registry keys
// and in configuration files.
package algid

import (
	"github.com/pkg/errors"
)

// ID is a stable algorithm identifier.
type ID string

// Category classifies what a strategy for the algorithm does.
type Category string

// Family groups related identifiers, e.g. all AES key sizes.
type Family string

// Supported categories.
const (
	CategoryCipher    Category = "cipher"
	CategoryAEAD      Category = "aead"
	CategoryKEM       Category = "kem"
	CategorySignature Category = "signature"
)

// Supported families.
const (
	FamilyAES    Family = "AES"
	FamilyChaCha Family = "ChaCha"
	FamilyMLKEM  Family = "ML-KEM"
	FamilyCurve  Family = "Curve25519"
	FamilyHybrid Family = "Hybrid"
	FamilyMLDSA  Family = "ML-DSA"
	FamilySLHDSA Family = "SLH-DSA"
	FamilyEdDSA  Family = "EdDSA"
)

// Cipher identifiers. The block cipher ids use CBC with PKCS#7 padding;
// CTR and GCM variants are separate ids so that each registry entry maps
// to exactly one transform.
const (
	AES128    ID = "AES-128"
	AES192    ID = "AES-192"
	AES256    ID = "AES-256"
	AES128CTR ID = "AES-128-CTR"
	AES192CTR ID = "AES-192-CTR"
	AES256CTR ID = "AES-256-CTR"
	AES128GCM ID = "AES-128-GCM"
	AES192GCM ID = "AES-192-GCM"
	AES256GCM ID = "AES-256-GCM"

	ChaCha20         ID = "CHACHA20"
	ChaCha20Poly1305 ID = "CHACHA20-POLY1305"
)

// KEM identifiers.
const (
	MLKEM512  ID = "ML-KEM-512"
	MLKEM768  ID = "ML-KEM-768"
	MLKEM1024 ID = "ML-KEM-1024"
	X25519    ID = "X25519"

	// X25519MLKEM768 is the hybrid of X25519 and ML-KEM-768, with all
	// concatenated values in X25519 || ML-KEM-768 order.
	X25519MLKEM768 ID = "X25519MLKEM768"
)

// Signature identifiers.
const (
	Ed25519        ID = "ED25519"
	MLDSA44        ID = "ML-DSA-44"
	MLDSA65        ID = "ML-DSA-65"
	MLDSA87        ID = "ML-DSA-87"
	SLHDSA128Small ID = "SLH-DSA-SHA2-128s"
)

// String returns the serialized identifier value.
func (id ID) String() string {
	return string(id)
}

// Category returns the identifier's category.
func (id ID) Category() Category {
	return infos[id].category
}

// Family returns the identifier's algorithm family.
func (id ID) Family() Family {
	return infos[id].family
}

// PQC reports whether the algorithm is post-quantum (hybrids included).
func (id ID) PQC() bool {
	return infos[id].pqc
}

// Params returns the identifier's parameter sizes.
func (id ID) Params() ParamSizes {
	return infos[id].params
}

// Known reports whether the identifier is declared in this package.
func (id ID) Known() bool {
	_, ok := infos[id]
	return ok
}

// Parse validates a serialized identifier.
func Parse(s string) (ID, error) {
	id := ID(s)
	if !id.Known() {
		return "", errors.Errorf("algid: unknown identifier: %q", s)
	}
	return id, nil
}

// All returns every declared identifier in declaration order.
func All() []ID {
	list := make([]ID, len(order))
	copy(list, order)
	return list
}

// List returns all declared identifiers of the given category, in
// declaration order.
func List(c Category) []ID {
	list := make([]ID, 0, len(order))
	for _, id := range order {
		if infos[id].category == c {
			list = append(list, id)
		}
	}
	return list
}
