// Package config owns the persisted agent configuration: the listening
// port and the credential hash generated on first run.
package config

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/absmach/warden/pkg/auth"
	pkgerrors "github.com/absmach/warden/pkg/errors"
)

const (
	DefPath = "/etc/warden/config.json"

	passwordLength = 8
	passwordChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	portAttempts    = 100
	portRangeLow    = 10000
	portRangeHigh   = 65535
	fallbackLow     = 50000
	fallbackHigh    = 60000
	dirPermissions  = 0o700
	filePermissions = 0o600
)

// Port intervals that collide with common service defaults and are never
// auto-selected.
var reservedRanges = [][2]int{
	{1, 1023},
	{3000, 3010},
	{5000, 5010},
	{8000, 8010},
	{8080, 8090},
	{9000, 9010},
}

type Config struct {
	Port         int       `json:"port"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", pkgerrors.ErrConfigCorrupt, c.Port)
	}
	if c.PasswordHash == "" {
		return fmt.Errorf("%w: empty password hash", pkgerrors.ErrConfigCorrupt)
	}

	return nil
}

// LoadOrCreate returns the config stored at path, or generates and persists
// a fresh one if the file is missing or corrupt. Loading an existing file
// never rotates the port or the credential.
//
// On generation the plaintext password is returned for one-time display.
// The caller must zero it after use; it is never persisted or logged.
func LoadOrCreate(path string) (Config, []byte, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil, nil
	}
	if !os.IsNotExist(err) && !errors.Is(err, pkgerrors.ErrConfigCorrupt) {
		return Config{}, nil, err
	}

	password, err := generatePassword()
	if err != nil {
		return Config{}, nil, err
	}
	hash, err := auth.Hash(password)
	if err != nil {
		return Config{}, nil, err
	}

	cfg = Config{
		Port:         FindAvailablePort(),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := Save(cfg, path); err != nil {
		return Config{}, nil, err
	}

	return cfg, password, nil
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s", pkgerrors.ErrConfigCorrupt, err.Error())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes cfg to path with owner-only permissions. The write goes to a
// temp file in the same directory followed by a rename, so a crash leaves
// either the previous file or the complete new one, never a partial write.
func Save(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error creating temp config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return err
	}
	if err := tmp.Chmod(filePermissions); err != nil {
		tmp.Close()

		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// FindAvailablePort samples random ports in [10000,65535], skipping the
// reserved ranges, until one proves bindable. After 100 failed attempts it
// falls back to a random port in [50000,60000] without a bind test.
func FindAvailablePort() int {
	for i := 0; i < portAttempts; i++ {
		port := portRangeLow + randInt(portRangeHigh-portRangeLow+1)
		if IsReservedPort(port) {
			continue
		}

		ln, err := net.Listen("tcp", net.JoinHostPort("localhost", strconv.Itoa(port)))
		if err != nil {
			continue
		}
		ln.Close()

		return port
	}

	return fallbackLow + randInt(fallbackHigh-fallbackLow+1)
}

func IsReservedPort(port int) bool {
	for _, r := range reservedRanges {
		if port >= r[0] && port <= r[1] {
			return true
		}
	}

	return false
}

func generatePassword() ([]byte, error) {
	password := make([]byte, passwordLength)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordChars))))
		if err != nil {
			return nil, err
		}
		password[i] = passwordChars[n.Int64()]
	}

	return password, nil
}

func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}

	return int(v.Int64())
}
