package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"rmod/internal/core/domain"
	"rmod/internal/ports"

	"gopkg.in/yaml.v3"
)

var configFilePath = filepath.Join("~", ".rmod-config.yaml")
var currentContextPath = filepath.Join("~", ".rmod", "current-context")

type ConfigRepository interface {
	LoadConfig() (*domain.Config, error)
	SaveConfig(*domain.Config) error
	ConfigExists() (bool, error)
	LoadCurrentContext() (*domain.Context, error)
	LoadCurrentContextName() (string, error)
	SaveCurrentContextName(string) error
	LoadToken(contextName string) (string, error)
	SaveToken(contextName string, token string) error
}

// ContextOverride names a context to use instead of the saved current
// context. Empty means no override.
type ContextOverride string

type FileSystemConfigRepository struct {
	fileService ports.FileSystem
	keyring     ports.Keyring
	override    ContextOverride
	config      *domain.Config
}

var _ ConfigRepository = (*FileSystemConfigRepository)(nil)

func ProvideFileSystemConfigRepository(
	fileService ports.FileSystem,
	keyring ports.Keyring,
	override ContextOverride,
) *FileSystemConfigRepository {
	return &FileSystemConfigRepository{
		fileService: fileService,
		keyring:     keyring,
		override:    override,
	}
}

func (c *FileSystemConfigRepository) LoadConfig() (*domain.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	data, err := c.fileService.ReadFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file, see operation 'initialize': %w", err)
	}

	var config domain.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	for i := range config.Contexts {
		context := &config.Contexts[i]
		if context.EffectiveBackend() == domain.BackendFile && context.StorePath == "" {
			context.StorePath = defaultStorePath(context.Name)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c.config = &config
	return &config, nil
}

func defaultStorePath(contextName string) string {
	return filepath.Join("~", ".rmod", contextName, "modifiers.yaml")
}

func (c *FileSystemConfigRepository) SaveConfig(config *domain.Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := c.fileService.WriteFile(configFilePath, data, ports.ReadWrite); err != nil {
		return err
	}
	c.config = nil
	return nil
}

func (c *FileSystemConfigRepository) ConfigExists() (bool, error) {
	return c.fileService.FileExists(configFilePath)
}

// LoadCurrentContextName prefers the override over the saved context.
func (c *FileSystemConfigRepository) LoadCurrentContextName() (string, error) {
	if c.override != "" {
		name := string(c.override)
		if err := domain.ValidateContextName(name); err != nil {
			return "", fmt.Errorf("invalid context override: %w", err)
		}
		return name, nil
	}

	data, err := c.fileService.ReadFile(currentContextPath)
	if err != nil {
		return "", fmt.Errorf("failed to read current context file, see operation 'context set': %w", err)
	}
	contextName := strings.TrimSpace(string(data))
	if err := domain.ValidateContextName(contextName); err != nil {
		return "", fmt.Errorf("invalid context name in current-context file: %w", err)
	}
	return contextName, nil
}

func (c *FileSystemConfigRepository) SaveCurrentContextName(currentContextName string) error {
	if err := domain.ValidateContextName(currentContextName); err != nil {
		return fmt.Errorf("invalid context name: %w", err)
	}
	return c.fileService.WriteFile(currentContextPath, []byte(currentContextName), ports.ReadWrite)
}

func (c *FileSystemConfigRepository) LoadCurrentContext() (*domain.Context, error) {
	currentContextName, err := c.LoadCurrentContextName()
	if err != nil {
		return nil, err
	}

	config, err := c.LoadConfig()
	if err != nil {
		return nil, err
	}

	for _, context := range config.Contexts {
		if context.Name == currentContextName {
			return &context, nil
		}
	}

	return nil, fmt.Errorf("current context '%s' not found in config", currentContextName)
}

func tokenKey(contextName string) string {
	return contextName + "-token"
}

// LoadToken returns the stored service-account token, or "" when none is
// stored for the context.
func (c *FileSystemConfigRepository) LoadToken(contextName string) (string, error) {
	has, err := c.keyring.HasKey(tokenKey(contextName))
	if err != nil {
		return "", fmt.Errorf("failed to query keyring: %w", err)
	}
	if !has {
		return "", nil
	}
	token, err := c.keyring.GetKey(tokenKey(contextName))
	if err != nil {
		return "", fmt.Errorf("failed to read token from keyring: %w", err)
	}
	return token, nil
}

func (c *FileSystemConfigRepository) SaveToken(contextName string, token string) error {
	if err := domain.ValidateContextName(contextName); err != nil {
		return fmt.Errorf("invalid context name: %w", err)
	}
	if err := c.keyring.SetKey(tokenKey(contextName), token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}
