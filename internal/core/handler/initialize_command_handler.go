package handler

import (
	"fmt"

	"rmod/internal/cli/output"
	"rmod/internal/core"
	"rmod/internal/core/domain"
)

type InitializeCommandHandler struct {
	configRepository core.ConfigRepository
	printer          *output.Printer
}

func ProvideInitializeCommandHandler(
	configRepository core.ConfigRepository,
	printer *output.Printer,
) InitializeCommandHandler {
	return InitializeCommandHandler{
		configRepository: configRepository,
		printer:          printer,
	}
}

// Handle writes the sample configuration and selects its first context.
func (h *InitializeCommandHandler) Handle() error {
	configExists, err := h.configRepository.ConfigExists()
	if err != nil {
		return err
	}
	if configExists {
		return fmt.Errorf("configuration already exists")
	}
	config := domain.CreateDefaultConfig()
	err = h.configRepository.SaveConfig(&config)
	if err != nil {
		return err
	}
	if err := h.configRepository.SaveCurrentContextName(config.Contexts[0].Name); err != nil {
		return err
	}

	h.printer.PrintSuccess("Configuration written")
	for _, c := range config.Contexts {
		h.printer.PrintStep(fmt.Sprintf("%s (%s)", c.Name, c.EffectiveBackend()))
	}
	return nil
}
