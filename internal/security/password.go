package security

import (
	"github.com/matthewhartstonge/argon2"

	"github.com/speaktime/speaktime-api/internal/config"
)

// Hasher hashes and verifies passwords using argon2id. Each hash embeds a
// random salt and the work factor it was produced with, so parameters can be
// tuned without invalidating stored hashes.
type Hasher struct {
	cfg argon2.Config
}

// NewHasher creates a Hasher with the configured work factor.
func NewHasher(cfg config.HasherConfig) Hasher {
	argonCfg := argon2.DefaultConfig()
	if cfg.Time > 0 {
		argonCfg.TimeCost = cfg.Time
	}
	if cfg.MemoryKiB > 0 {
		argonCfg.MemoryCost = cfg.MemoryKiB
	}
	if cfg.Parallelism > 0 {
		argonCfg.Parallelism = cfg.Parallelism
	}

	return Hasher{cfg: argonCfg}
}

// Hash produces an encoded argon2id digest of the given password.
func (h Hasher) Hash(password string) (string, error) {
	encoded, err := h.cfg.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// Verify reports whether the password matches the encoded digest. The
// comparison is constant time.
func (h Hasher) Verify(password, encoded string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encoded))
}
