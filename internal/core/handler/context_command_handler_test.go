package handler

import (
	"errors"
	"testing"

	"rmod/internal/core/domain"
	"rmod/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleConfig() *domain.Config {
	return &domain.Config{
		Contexts: []domain.Context{
			{Name: "default", Backend: domain.BackendKubernetes, Kubeconfig: "~/.kube/config"},
			{Name: "lab", Backend: domain.BackendKubernetes, Server: "https://10.0.0.1:6443"},
			{Name: "offline", Backend: domain.BackendFile, StorePath: "~/.rmod/offline/modifiers.yaml"},
		},
	}
}

func TestContextCommandHandler_HandleSet_Success(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	printer, out, _ := newPrinter()
	configRepository.On("LoadConfig").Return(sampleConfig(), nil)
	configRepository.On("SaveCurrentContextName", "lab").Return(nil)

	sut := ProvideContextCommandHandler(configRepository, new(testutil.MockTerminalInput), printer)

	err := sut.HandleSet("lab")

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Switched to context 'lab'")
	configRepository.AssertExpectations(t)
}

func TestContextCommandHandler_HandleSet_LoadConfigError(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	printer, _, _ := newPrinter()
	expectedErr := errors.New("load config error")
	configRepository.On("LoadConfig").Return(nil, expectedErr)

	sut := ProvideContextCommandHandler(configRepository, new(testutil.MockTerminalInput), printer)

	err := sut.HandleSet("lab")

	assert.Equal(t, expectedErr, err)
}

func TestContextCommandHandler_HandleSet_ContextNotFound(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	printer, _, _ := newPrinter()
	configRepository.On("LoadConfig").Return(sampleConfig(), nil)

	sut := ProvideContextCommandHandler(configRepository, new(testutil.MockTerminalInput), printer)

	err := sut.HandleSet("non-existent")

	assert.ErrorContains(t, err, "context not found: non-existent")
	configRepository.AssertNotCalled(t, "SaveCurrentContextName", mock.Anything)
}

func TestContextCommandHandler_HandleSet_SaveError(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	printer, out, _ := newPrinter()
	expectedErr := errors.New("save error")
	configRepository.On("LoadConfig").Return(sampleConfig(), nil)
	configRepository.On("SaveCurrentContextName", "lab").Return(expectedErr)

	sut := ProvideContextCommandHandler(configRepository, new(testutil.MockTerminalInput), printer)

	err := sut.HandleSet("lab")

	assert.Equal(t, expectedErr, err)
	assert.Empty(t, out.String())
}

func TestContextCommandHandler_HandleList(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	printer, out, _ := newPrinter()
	configRepository.On("LoadConfig").Return(sampleConfig(), nil)
	configRepository.On("LoadCurrentContextName").Return("lab", nil)

	sut := ProvideContextCommandHandler(configRepository, new(testutil.MockTerminalInput), printer)

	err := sut.HandleList()

	require.NoError(t, err)
	rendered := out.String()
	for _, expected := range []string{"default", "lab", "offline", "https://10.0.0.1:6443", "~/.rmod/offline/modifiers.yaml", "file", "cv-config", "*"} {
		assert.Contains(t, rendered, expected)
	}
}

func TestContextCommandHandler_HandleList_WithoutCurrentContext(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	printer, out, _ := newPrinter()
	configRepository.On("LoadConfig").Return(sampleConfig(), nil)
	configRepository.On("LoadCurrentContextName").Return("", errors.New("no current context"))

	sut := ProvideContextCommandHandler(configRepository, new(testutil.MockTerminalInput), printer)

	err := sut.HandleList()

	require.NoError(t, err)
	assert.NotContains(t, out.String(), "*")
}

func TestContextCommandHandler_HandlePrint(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	printer, out, _ := newPrinter()
	configRepository.On("LoadCurrentContext").Return(&sampleConfig().Contexts[2], nil)

	sut := ProvideContextCommandHandler(configRepository, new(testutil.MockTerminalInput), printer)

	err := sut.HandlePrint()

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"offline","backend":"file","storePath":"~/.rmod/offline/modifiers.yaml"}`, out.String())
}

func TestContextCommandHandler_HandleAdd(t *testing.T) {
	tests := []struct {
		name          string
		request       AddContextRequest
		isTerminal    bool
		prompted      string
		expectedToken string
		expectedErr   string
	}{
		{
			name:    "file backend",
			request: AddContextRequest{Context: domain.Context{Name: "scratch", Backend: domain.BackendFile}},
		},
		{
			name:          "server with token flag",
			request:       AddContextRequest{Context: domain.Context{Name: "qa", Server: "https://qa:6443"}, Token: "flag-token"},
			expectedToken: "flag-token",
		},
		{
			name:          "server with prompted token",
			request:       AddContextRequest{Context: domain.Context{Name: "qa", Server: "https://qa:6443"}},
			isTerminal:    true,
			prompted:      "typed-token",
			expectedToken: "typed-token",
		},
		{
			name:        "server without token and no terminal",
			request:     AddContextRequest{Context: domain.Context{Name: "qa", Server: "https://qa:6443"}},
			expectedErr: "pass --token",
		},
		{
			name:        "server with empty prompted token",
			request:     AddContextRequest{Context: domain.Context{Name: "qa", Server: "https://qa:6443"}},
			isTerminal:  true,
			expectedErr: "a token is required",
		},
		{
			name:        "token without server",
			request:     AddContextRequest{Context: domain.Context{Name: "qa"}, Token: "stray"},
			expectedErr: "only used together with --server",
		},
		{
			name:        "duplicate name",
			request:     AddContextRequest{Context: domain.Context{Name: "lab"}},
			expectedErr: "context already exists: lab",
		},
		{
			name:        "path traversal",
			request:     AddContextRequest{Context: domain.Context{Name: "../evil"}},
			expectedErr: "context name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configRepository := new(testutil.MockConfigRepository)
			terminalInput := new(testutil.MockTerminalInput)
			printer, out, _ := newPrinter()
			configRepository.On("LoadConfig").Return(sampleConfig(), nil)
			configRepository.On("SaveConfig", mock.Anything).Return(nil)
			configRepository.On("SaveToken", mock.Anything, mock.Anything).Return(nil)
			terminalInput.On("IsTerminal").Return(tt.isTerminal)
			terminalInput.On("ReadPassword", mock.Anything).Return(tt.prompted, nil)

			sut := ProvideContextCommandHandler(configRepository, terminalInput, printer)

			err := sut.HandleAdd(tt.request)

			if tt.expectedErr != "" {
				assert.ErrorContains(t, err, tt.expectedErr)
				configRepository.AssertNotCalled(t, "SaveConfig", mock.Anything)
				return
			}
			require.NoError(t, err)
			configRepository.AssertCalled(t, "SaveConfig", mock.MatchedBy(func(c *domain.Config) bool {
				return len(c.Contexts) == 4 && c.Contexts[3].Name == tt.request.Context.Name
			}))
			if tt.expectedToken != "" {
				configRepository.AssertCalled(t, "SaveToken", tt.request.Context.Name, tt.expectedToken)
			} else {
				configRepository.AssertNotCalled(t, "SaveToken", mock.Anything, mock.Anything)
			}
			assert.Contains(t, out.String(), "Added context '"+tt.request.Context.Name+"'")
		})
	}
}

func TestContextCommandHandler_HandleAdd_DoesNotMutateLoadedConfig(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	printer, _, _ := newPrinter()
	config := sampleConfig()
	configRepository.On("LoadConfig").Return(config, nil)
	configRepository.On("SaveConfig", mock.Anything).Return(errors.New("disk full"))

	sut := ProvideContextCommandHandler(configRepository, new(testutil.MockTerminalInput), printer)

	err := sut.HandleAdd(AddContextRequest{Context: domain.Context{Name: "scratch", Backend: domain.BackendFile}})

	assert.ErrorContains(t, err, "disk full")
	assert.Len(t, config.Contexts, 3)
}

func TestContextCommandHandler_HandleAdd_Activate(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	printer, _, _ := newPrinter()
	saved := sampleConfig()
	saved.Contexts = append(saved.Contexts, domain.Context{Name: "scratch", Backend: domain.BackendFile})
	configRepository.On("LoadConfig").Return(sampleConfig(), nil).Once()
	configRepository.On("SaveConfig", mock.Anything).Return(nil)
	configRepository.On("LoadConfig").Return(saved, nil).Once()
	configRepository.On("SaveCurrentContextName", "scratch").Return(nil)

	sut := ProvideContextCommandHandler(configRepository, new(testutil.MockTerminalInput), printer)

	err := sut.HandleAdd(AddContextRequest{Context: domain.Context{Name: "scratch", Backend: domain.BackendFile}, Activate: true})

	require.NoError(t, err)
	configRepository.AssertExpectations(t)
}
