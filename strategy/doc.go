// Package strategy defines the capability contracts that pluggable
// algorithm implementations satisfy: key generation, symmetric and
// asymmetric transforms, AEAD, key encapsulation and digital signatures.
//
// Every operation consumes and produces secmem containers rather than raw
// secret byte slices, so ownership and wiping stay under the container's
// control. Strategies are stateless with respect to external state except
// for the containers they allocate; they never log or persist secrets.
//
// Concrete strategies are grouped into bundles, which contribute their
// identifier-to-strategy pairs to a Registrar during registry population.
package strategy
