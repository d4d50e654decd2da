package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/filex"
	"github.com/google/uuid"
)

// EnsureNamespace fills an empty Namespace from the file at path. On first
// use a fresh id is generated and written there, so later runs keep seeing
// the same visitor state.
func (c *Config) EnsureNamespace(path string) error {
	if c.Namespace != "" {
		return nil
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if ns := strings.TrimSpace(string(b)); ns != "" {
			c.Namespace = ns
			return nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("read namespace: %w", err)
	}

	ns := uuid.NewString()
	if _, err := filex.EnsureParentDir(path); err != nil {
		return fmt.Errorf("create namespace dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(ns+"\n"), 0o600); err != nil {
		return fmt.Errorf("write namespace: %w", err)
	}
	c.Namespace = ns
	return nil
}
