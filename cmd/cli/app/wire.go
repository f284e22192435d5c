//go:build wireinject
// +build wireinject

package app

import (
	"rmod/internal/adapters/filesystem"
	"rmod/internal/adapters/keyring"
	"rmod/internal/adapters/manifest"
	"rmod/internal/adapters/restore_modifier_repository"
	"rmod/internal/adapters/terminal"
	"rmod/internal/cli/output"
	"rmod/internal/core"
	"rmod/internal/core/handler"
	"rmod/internal/ports"

	"github.com/google/wire"
)

var Adapter = wire.NewSet(
	filesystem.ProvideOsFileSystem,
	wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
	keyring.ProvideZalandoKeyring,
	terminal.ProvideTerminalInput,
	wire.Bind(new(ports.TerminalInput), new(*terminal.TerminalInput)),
	manifest.ProvideKubernetesCodec,
	wire.Bind(new(ports.ManifestCodec), new(*manifest.KubernetesCodec)),
	restore_modifier_repository.ProvideRepository,
	output.ProvidePrinter,
)

// CoreSet provides domain/core dependencies
var CoreSet = wire.NewSet(
	core.ProvideFileSystemConfigRepository,
	wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
	core.ProvideSelectorEvaluator,
	core.ProvideActionApplicator,
	core.ProvideTransformer,
	core.ProvideModifierStore,
)

// CommandHandlerSet combines all sets needed for command handlers
var CommandHandlerSet = wire.NewSet(
	Adapter,
	CoreSet,
)

func InjectConfigRepo(override core.ContextOverride) (core.ConfigRepository, error) {
	wire.Build(
		CommandHandlerSet,
	)
	return &core.FileSystemConfigRepository{}, nil
}

func InjectModifierStore(override core.ContextOverride) (*core.ModifierStore, error) {
	wire.Build(
		CommandHandlerSet,
	)
	return &core.ModifierStore{}, nil
}

func InjectContextCommandHandler(override core.ContextOverride) (handler.ContextCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideContextCommandHandler,
	)
	return handler.ContextCommandHandler{}, nil
}

func InjectInitializeCommandHandler(override core.ContextOverride) (handler.InitializeCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideInitializeCommandHandler,
	)
	return handler.InitializeCommandHandler{}, nil
}

func InjectModifierCommandHandler(override core.ContextOverride) (handler.ModifierCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideModifierCommandHandler,
	)
	return handler.ModifierCommandHandler{}, nil
}

func InjectSelectorCommandHandler(override core.ContextOverride) (handler.SelectorCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideSelectorCommandHandler,
	)
	return handler.SelectorCommandHandler{}, nil
}

func InjectActionCommandHandler(override core.ContextOverride) (handler.ActionCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideActionCommandHandler,
	)
	return handler.ActionCommandHandler{}, nil
}

func InjectTestCommandHandler(override core.ContextOverride) (handler.TestCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideTestCommandHandler,
	)
	return handler.TestCommandHandler{}, nil
}
