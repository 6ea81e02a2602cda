// Package digest computes content-addressed identities for instruction
// streams and filter settings.
//
// All digests are SHA-256 with domain separation:
//
//	SHA256(domain + 0x00 + payload)
//
// A stream's payload is its raw block bytes, each preceded by its length as
// a big-endian uint64, so two streams share a digest only when every block
// matches byte for byte. A settings payload is canonical JSON.
package digest

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/roach88/layerpause/internal/gcode"
	"github.com/roach88/layerpause/internal/pause"
)

// Domain prefixes. The version suffix allows a future algorithm change.
const (
	DomainStream   = "layerpause/stream/v1"
	DomainSettings = "layerpause/settings/v1"
)

func hashWithDomain(domain string, data []byte) string {
	h := newHash(domain)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

func newHash(domain string) hash.Hash {
	h := sha256.New()
	io.WriteString(h, domain)
	h.Write([]byte{0x00})
	return h
}

// Stream returns the digest of an instruction stream. Block boundaries are
// part of the identity: the same text split differently hashes differently.
// Block text is hashed as is, without any Unicode normalization, so files
// that differ only in encoding or composition never collide.
func Stream(s gcode.Stream) string {
	h := newHash(DomainStream)
	var n [8]byte
	for _, b := range s {
		binary.BigEndian.PutUint64(n[:], uint64(len(b)))
		h.Write(n[:])
		io.WriteString(h, string(b))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// SettingsObject converts settings to the map form used for canonical JSON.
func SettingsObject(s pause.Settings) map[string]any {
	return map[string]any{
		pause.KeyPauseLayer: s.PauseLayer,
		pause.KeyMessage:    s.Message,
		pause.KeyShouldBeep: s.ShouldBeep,
	}
}

// CanonicalSettings returns the canonical JSON encoding of s.
func CanonicalSettings(s pause.Settings) ([]byte, error) {
	return MarshalCanonical(SettingsObject(s))
}

// Settings returns the digest of filter settings.
func Settings(s pause.Settings) (string, error) {
	canonical, err := CanonicalSettings(s)
	if err != nil {
		return "", fmt.Errorf("settings digest: %w", err)
	}
	return hashWithDomain(DomainSettings, canonical), nil
}
