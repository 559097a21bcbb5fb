package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	DefaultMemoryKiB   uint32 = 64 * 1024
	DefaultIterations  uint32 = 3
	DefaultParallelism uint8  = 2
	DefaultSaltLen            = 16
	DefaultKeyLen      uint32 = 32

	MinMemoryKiB uint32 = 8 * 1024

	legacyDigestLen = sha256.Size * 2
	argon2Prefix    = "$argon2id$"
)

var (
	ErrInvalidParams = errors.New("invalid argon2 parameters")
	ErrInvalidRecord = errors.New("malformed password record")
)

// Params are the Argon2id cost settings.
type Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLen     int
	KeyLen      uint32
}

func DefaultParams() Params {
	return Params{
		Memory:      DefaultMemoryKiB,
		Iterations:  DefaultIterations,
		Parallelism: DefaultParallelism,
		SaltLen:     DefaultSaltLen,
		KeyLen:      DefaultKeyLen,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Memory < MinMemoryKiB:
		return fmt.Errorf("%w: memory must be >= %d KiB", ErrInvalidParams, MinMemoryKiB)
	case p.Iterations == 0:
		return fmt.Errorf("%w: iterations must be > 0", ErrInvalidParams)
	case p.Parallelism == 0:
		return fmt.Errorf("%w: parallelism must be > 0", ErrInvalidParams)
	case p.SaltLen < 16:
		return fmt.Errorf("%w: salt length must be >= 16", ErrInvalidParams)
	case p.KeyLen < 16:
		return fmt.Errorf("%w: key length must be >= 16", ErrInvalidParams)
	default:
		return nil
	}
}

// LegacyDigest is the unsalted SHA-256 hex digest used by old account records.
func LegacyDigest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Hasher produces and verifies password records.
type Hasher struct {
	params Params
}

// NewHasher returns a Hasher using p. Invalid parameters are rejected.
func NewHasher(p Params) (*Hasher, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Hasher{params: p}, nil
}

// Hash returns an encoded Argon2id record for plaintext with a fresh random salt.
func (h *Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(plaintext), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLen)

	enc := base64.RawStdEncoding
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix, argon2.Version,
		h.params.Memory, h.params.Iterations, h.params.Parallelism,
		enc.EncodeToString(salt), enc.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext matches the stored record. Both Argon2id
// records and legacy digests are accepted; anything else never matches.
func (h *Hasher) Verify(plaintext, stored string) bool {
	if isLegacyDigest(stored) {
		return subtle.ConstantTimeCompare([]byte(LegacyDigest(plaintext)), []byte(strings.ToLower(stored))) == 1
	}

	rec, err := decodeRecord(stored)
	if err != nil {
		return false
	}
	key := argon2.IDKey([]byte(plaintext), rec.salt, rec.params.Iterations, rec.params.Memory, rec.params.Parallelism, uint32(len(rec.key)))
	return subtle.ConstantTimeCompare(key, rec.key) == 1
}

// NeedsRehash is true for legacy digests and for records weaker than the
// configured parameters.
func (h *Hasher) NeedsRehash(stored string) bool {
	if isLegacyDigest(stored) {
		return true
	}
	rec, err := decodeRecord(stored)
	if err != nil {
		return true
	}
	return rec.params.Memory < h.params.Memory ||
		rec.params.Iterations < h.params.Iterations ||
		uint32(len(rec.key)) < h.params.KeyLen
}

type record struct {
	params Params
	salt   []byte
	key    []byte
}

func decodeRecord(stored string) (*record, error) {
	if !strings.HasPrefix(stored, argon2Prefix) {
		return nil, ErrInvalidRecord
	}
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return nil, ErrInvalidRecord
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, ErrInvalidRecord
	}

	var rec record
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &rec.params.Memory, &rec.params.Iterations, &rec.params.Parallelism); err != nil {
		return nil, ErrInvalidRecord
	}
	if rec.params.Iterations == 0 || rec.params.Parallelism == 0 || rec.params.Memory == 0 {
		return nil, ErrInvalidRecord
	}

	var err error
	enc := base64.RawStdEncoding
	if rec.salt, err = enc.DecodeString(parts[4]); err != nil || len(rec.salt) == 0 {
		return nil, ErrInvalidRecord
	}
	if rec.key, err = enc.DecodeString(parts[5]); err != nil || len(rec.key) == 0 {
		return nil, ErrInvalidRecord
	}
	rec.params.SaltLen = len(rec.salt)
	rec.params.KeyLen = uint32(len(rec.key))
	return &rec, nil
}

func isLegacyDigest(stored string) bool {
	if len(stored) != legacyDigestLen {
		return false
	}
	_, err := hex.DecodeString(stored)
	return err == nil
}
