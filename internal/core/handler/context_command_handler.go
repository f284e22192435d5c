package handler

import (
	"encoding/json"
	"fmt"

	"rmod/internal/cli/output"
	"rmod/internal/core"
	"rmod/internal/core/domain"
	"rmod/internal/ports"
)

type ContextCommandHandler struct {
	configRepository core.ConfigRepository
	terminalInput    ports.TerminalInput
	printer          *output.Printer
}

func ProvideContextCommandHandler(
	configRepository core.ConfigRepository,
	terminalInput ports.TerminalInput,
	printer *output.Printer,
) ContextCommandHandler {
	return ContextCommandHandler{
		configRepository: configRepository,
		terminalInput:    terminalInput,
		printer:          printer,
	}
}

func (h *ContextCommandHandler) HandleSet(contextName string) error {
	config, err := h.configRepository.LoadConfig()
	if err != nil {
		return err
	}
	if !config.ContextExists(contextName) {
		return fmt.Errorf("context not found: %s", contextName)
	}
	if err := h.configRepository.SaveCurrentContextName(contextName); err != nil {
		return err
	}
	h.printer.PrintSuccess(fmt.Sprintf("Switched to context '%s'", contextName))
	return nil
}

// HandleList prints every context and marks the current one. A missing
// current-context file is not an error here.
func (h *ContextCommandHandler) HandleList() error {
	config, err := h.configRepository.LoadConfig()
	if err != nil {
		return err
	}
	current, _ := h.configRepository.LoadCurrentContextName()

	rows := make([][]string, 0, len(config.Contexts))
	for _, c := range config.Contexts {
		marker := ""
		if c.Name == current {
			marker = output.SymbolInfo
		}
		rows = append(rows, []string{marker, c.Name, string(c.EffectiveBackend()), c.EffectiveNamespace(), location(c)})
	}
	h.printer.PrintTable([]string{"", "NAME", "BACKEND", "NAMESPACE", "LOCATION"}, rows, "no contexts configured")
	return nil
}

func location(c domain.Context) string {
	switch {
	case c.EffectiveBackend() == domain.BackendFile:
		return c.StorePath
	case c.Server != "":
		return c.Server
	case c.KubeContext != "":
		return c.Kubeconfig + " (" + c.KubeContext + ")"
	}
	return c.Kubeconfig
}

func (h *ContextCommandHandler) HandlePrint() error {
	configContext, err := h.configRepository.LoadCurrentContext()
	if err != nil {
		return err
	}
	return h.prettyPrint(configContext)
}

type AddContextRequest struct {
	Context domain.Context
	// Token authenticates against Context.Server. When empty and stdin is a
	// terminal, the token is prompted for.
	Token string
	// Activate switches to the new context after it is saved.
	Activate bool
}

func (h *ContextCommandHandler) HandleAdd(request AddContextRequest) error {
	config, err := h.configRepository.LoadConfig()
	if err != nil {
		return err
	}
	newContext := request.Context
	if err := domain.ValidateContextName(newContext.Name); err != nil {
		return err
	}
	if config.ContextExists(newContext.Name) {
		return fmt.Errorf("context already exists: %s", newContext.Name)
	}

	token := request.Token
	if newContext.Server != "" && token == "" {
		if !h.terminalInput.IsTerminal() {
			return fmt.Errorf("context '%s' sets a server, pass --token when stdin is not a terminal", newContext.Name)
		}
		token, err = h.terminalInput.ReadPassword(fmt.Sprintf("Service account token for %s: ", newContext.Server))
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("a token is required for context '%s'", newContext.Name)
		}
	}
	if token != "" && newContext.Server == "" {
		return fmt.Errorf("a token is only used together with --server")
	}

	updated := *config
	updated.Contexts = append(append([]domain.Context{}, config.Contexts...), newContext)
	if err := h.configRepository.SaveConfig(&updated); err != nil {
		return err
	}
	if token != "" {
		if err := h.configRepository.SaveToken(newContext.Name, token); err != nil {
			return err
		}
	}
	h.printer.PrintSuccess(fmt.Sprintf("Added context '%s'", newContext.Name))

	if request.Activate {
		return h.HandleSet(newContext.Name)
	}
	return nil
}

func (h *ContextCommandHandler) prettyPrint(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	h.printer.Println(string(data))
	return nil
}
