// Package config loads algorithm profiles from YAML or JSON files. A
// profile pins the default algorithm per capability and can restrict the
// identifiers an application is allowed to use.
package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/qu4nt/entlib-go/algid"
)

// Profile describes the algorithm selection policy.
type Profile struct {
	// DefaultCipher is used when no symmetric algorithm is specified.
	DefaultCipher algid.ID `json:"default_cipher" yaml:"default_cipher"`
	// DefaultAEAD is used when no authenticated cipher is specified.
	DefaultAEAD algid.ID `json:"default_aead" yaml:"default_aead"`
	// DefaultKEM is used when no encapsulation algorithm is specified.
	DefaultKEM algid.ID `json:"default_kem" yaml:"default_kem"`
	// DefaultSigner is used when no signature algorithm is specified.
	DefaultSigner algid.ID `json:"default_signer" yaml:"default_signer"`

	// Allowed restricts usable identifiers. Empty means all known
	// identifiers are allowed.
	Allowed []algid.ID `json:"allowed,omitempty" yaml:"allowed,omitempty"`

	// RequirePQC rejects purely classical KEM and signature algorithms.
	RequirePQC bool `json:"require_pqc" yaml:"require_pqc"`
}

// DefaultProfile returns the policy used when no file is provided.
func DefaultProfile() *Profile {
	return &Profile{
		DefaultCipher: algid.AES256,
		DefaultAEAD:   algid.AES256GCM,
		DefaultKEM:    algid.X25519MLKEM768,
		DefaultSigner: algid.MLDSA65,
	}
}

// Load reads and validates a profile from a YAML or JSON file.
func Load(file string) (*Profile, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var p Profile
	if strings.HasSuffix(file, ".json") {
		if err = json.Unmarshal(raw, &p); err != nil {
			return nil, errors.WithMessagef(err, "unable to unmarshal JSON: %q", file)
		}
	} else {
		if err = yaml.Unmarshal(raw, &p); err != nil {
			return nil, errors.WithMessagef(err, "unable to unmarshal YAML: %q", file)
		}
	}

	if err = p.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "invalid profile: %q", file)
	}
	return &p, nil
}

// Validate checks that every referenced identifier is known and that the
// defaults have the right category.
func (p *Profile) Validate() error {
	checks := []struct {
		id       algid.ID
		category algid.Category
		name     string
	}{
		{p.DefaultCipher, algid.CategoryCipher, "default_cipher"},
		{p.DefaultAEAD, algid.CategoryAEAD, "default_aead"},
		{p.DefaultKEM, algid.CategoryKEM, "default_kem"},
		{p.DefaultSigner, algid.CategorySignature, "default_signer"},
	}
	for _, c := range checks {
		if c.id == "" {
			continue
		}
		if !c.id.Known() {
			return errors.Errorf("%s: unknown algorithm: %q", c.name, c.id)
		}
		if c.id.Category() != c.category {
			return errors.Errorf("%s: %q is not a %s algorithm", c.name, c.id, c.category)
		}
		if !p.Permitted(c.id) {
			return errors.Errorf("%s: %q is not permitted by this profile", c.name, c.id)
		}
	}
	for _, id := range p.Allowed {
		if !id.Known() {
			return errors.Errorf("allowed: unknown algorithm: %q", id)
		}
	}
	return nil
}

// Permitted reports whether the profile allows id.
func (p *Profile) Permitted(id algid.ID) bool {
	if !id.Known() {
		return false
	}
	if p.RequirePQC && !id.PQC() &&
		(id.Category() == algid.CategoryKEM || id.Category() == algid.CategorySignature) {
		return false
	}
	if len(p.Allowed) == 0 {
		return true
	}
	for _, a := range p.Allowed {
		if a == id {
			return true
		}
	}
	return false
}
