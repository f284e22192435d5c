package restore_modifier_repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rmod/internal/core"
	"rmod/internal/core/domain"
	"rmod/internal/ports"

	"github.com/charmbracelet/log"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// ProvideRepository picks the backend configured for the current context.
func ProvideRepository(
	configRepository core.ConfigRepository,
	fileSystem ports.FileSystem,
) (ports.RestoreModifierRepository, error) {
	currentContext, err := configRepository.LoadCurrentContext()
	if err != nil {
		return nil, err
	}

	switch currentContext.EffectiveBackend() {
	case domain.BackendFile:
		log.Debug("using file backend", "context", currentContext.Name, "path", currentContext.StorePath)
		return NewFileRepository(fileSystem, currentContext.StorePath), nil
	case domain.BackendKubernetes:
		token := ""
		if currentContext.Server != "" {
			token, err = configRepository.LoadToken(currentContext.Name)
			if err != nil {
				return nil, err
			}
		}
		restConfig, err := RestConfig(currentContext, token)
		if err != nil {
			return nil, err
		}
		client, err := dynamic.NewForConfig(restConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
		}
		log.Debug("using kubernetes backend", "context", currentContext.Name, "host", restConfig.Host)
		return NewKubernetesRepository(client), nil
	}
	return nil, fmt.Errorf("context '%s' has unknown backend '%s'", currentContext.Name, currentContext.Backend)
}

// RestConfig builds client configuration for a context. A context with a
// server authenticates with the service-account token; any other context
// goes through kubeconfig loading.
func RestConfig(c *domain.Context, token string) (*rest.Config, error) {
	if c.Server != "" {
		if token == "" {
			return nil, fmt.Errorf("context '%s' sets a server but no token is stored, see operation 'context add'", c.Name)
		}
		return &rest.Config{
			Host:        c.Server,
			BearerToken: token,
			TLSClientConfig: rest.TLSClientConfig{
				Insecure: c.Insecure,
			},
		}, nil
	}

	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if c.Kubeconfig != "" {
		path, err := expandHome(c.Kubeconfig)
		if err != nil {
			return nil, err
		}
		rules.ExplicitPath = path
	}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: c.KubeContext}
	if c.Insecure {
		overrides.ClusterInfo.InsecureSkipTLSVerify = true
	}

	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes config: %w", err)
	}
	return restConfig, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
