package domain

import (
	"fmt"
	"strings"
)

type Backend string

const (
	BackendKubernetes Backend = "kubernetes"
	BackendFile       Backend = "file"
)

// Context describes where restore modifiers are stored.
type Context struct {
	Name        string  `yaml:"name" json:"name"`
	Backend     Backend `yaml:"backend" json:"backend"`
	Kubeconfig  string  `yaml:"kubeconfig,omitempty" json:"kubeconfig,omitempty"`
	KubeContext string  `yaml:"kubeContext,omitempty" json:"kubeContext,omitempty"`
	Server      string  `yaml:"server,omitempty" json:"server,omitempty"` // token auth against this API server
	Insecure    bool    `yaml:"insecure,omitempty" json:"insecure,omitempty"`
	Namespace   string  `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	StorePath   string  `yaml:"storePath,omitempty" json:"storePath,omitempty"`
}

// EffectiveNamespace falls back to the namespace restore modifiers live in.
func (c *Context) EffectiveNamespace() string {
	if c.Namespace == "" {
		return RestoreModifierNamespace
	}
	return c.Namespace
}

func (c *Context) EffectiveBackend() Backend {
	if c.Backend == "" {
		return BackendKubernetes
	}
	return c.Backend
}

type Config struct {
	Contexts []Context `yaml:"contexts"`
}

func CreateDefaultConfig() Config {
	return Config{
		Contexts: []Context{
			{
				Name:       "default",
				Backend:    BackendKubernetes,
				Kubeconfig: "~/.kube/config",
				Namespace:  RestoreModifierNamespace,
			},
			{
				Name:    "local",
				Backend: BackendFile,
			},
		},
	}
}

func (c *Config) ContextExists(name string) bool {
	for _, context := range c.Contexts {
		if context.Name == name {
			return true
		}
	}
	return false
}

func (c *Config) GetContext(name string) (*Context, error) {
	for _, context := range c.Contexts {
		if context.Name == name {
			return &context, nil
		}
	}
	return nil, fmt.Errorf("context '%s' not found", name)
}

func (c *Config) Validate() error {
	if len(c.Contexts) == 0 {
		return fmt.Errorf("no contexts defined in configuration")
	}

	seen := make(map[string]bool, len(c.Contexts))
	for i, ctx := range c.Contexts {
		if err := ValidateContextName(ctx.Name); err != nil {
			return fmt.Errorf("context at index %d: %w", i, err)
		}
		if seen[ctx.Name] {
			return fmt.Errorf("context '%s' is defined more than once", ctx.Name)
		}
		seen[ctx.Name] = true

		switch ctx.EffectiveBackend() {
		case BackendKubernetes:
			if ctx.StorePath != "" {
				return fmt.Errorf("context '%s' sets storePath but uses the kubernetes backend", ctx.Name)
			}
		case BackendFile:
			if ctx.Server != "" || ctx.KubeContext != "" {
				return fmt.Errorf("context '%s' sets cluster options but uses the file backend", ctx.Name)
			}
		default:
			return fmt.Errorf("context '%s' has unknown backend '%s'", ctx.Name, ctx.Backend)
		}
	}
	return nil
}

// ValidateContextName rejects names that could escape the config directory.
func ValidateContextName(name string) error {
	if name == "" {
		return fmt.Errorf("context name cannot be empty")
	}
	if strings.Contains(name, "..") ||
		strings.Contains(name, "/") ||
		strings.Contains(name, "\\") ||
		strings.Contains(name, "\x00") {
		return fmt.Errorf("context name contains invalid characters")
	}
	return nil
}
