package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"rmod/internal/cli/output"
	"rmod/internal/core"
	"rmod/internal/core/domain"
	"rmod/internal/ports"
)

type TestCommandHandler struct {
	store       *core.ModifierStore
	transformer *core.Transformer
	fileSystem  ports.FileSystem
	codec       ports.ManifestCodec
	printer     *output.Printer
}

func ProvideTestCommandHandler(
	store *core.ModifierStore,
	transformer *core.Transformer,
	fileSystem ports.FileSystem,
	codec ports.ManifestCodec,
	printer *output.Printer,
) TestCommandHandler {
	return TestCommandHandler{
		store:       store,
		transformer: transformer,
		fileSystem:  fileSystem,
		codec:       codec,
		printer:     printer,
	}
}

type TestRequest struct {
	ManifestFile string
	// Modifiers are loaded from the store, ModifierFiles from disk. Stored
	// modifiers run first, each group in the order given.
	Modifiers     []string
	ModifierFiles []string
	Format        ports.ManifestFormat
}

// Handle prints the transformed manifests on stdout and a summary of what
// matched on stderr. Nothing is written to the store.
func (h *TestCommandHandler) Handle(ctx context.Context, request TestRequest) error {
	modifiers, err := h.loadModifiers(ctx, request)
	if err != nil {
		return err
	}

	data, err := h.fileSystem.ReadFile(request.ManifestFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", request.ManifestFile, err)
	}
	manifests, err := h.codec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", request.ManifestFile, err)
	}
	if len(manifests) == 0 {
		return fmt.Errorf("%s contains no manifests", request.ManifestFile)
	}

	results, transformErr := h.transformer.TransformAll(manifests, modifiers)

	transformed := make([]map[string]interface{}, 0, len(results))
	for _, result := range results {
		transformed = append(transformed, result.Manifest)
	}
	encoded, err := h.codec.Encode(transformed, request.Format)
	if err != nil {
		return err
	}
	if _, err := h.printer.Write(encoded); err != nil {
		return err
	}

	h.printSummary(results)
	return transformErr
}

func (h *TestCommandHandler) loadModifiers(ctx context.Context, request TestRequest) ([]domain.Modifier, error) {
	if len(request.Modifiers) == 0 && len(request.ModifierFiles) == 0 {
		return nil, fmt.Errorf("at least one stored modifier or modifier file is required")
	}
	modifiers := make([]domain.Modifier, 0, len(request.Modifiers)+len(request.ModifierFiles))
	for _, name := range request.Modifiers {
		modifier, err := h.store.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		modifiers = append(modifiers, modifier)
	}
	for _, file := range request.ModifierFiles {
		fromFile, err := readModifierDocuments(h.fileSystem, h.codec, file)
		if err != nil {
			return nil, err
		}
		for _, modifier := range fromFile {
			if err := modifier.Validate(); err != nil {
				return nil, fmt.Errorf("modifier %s in %s: %w", modifier.Name, file, err)
			}
		}
		modifiers = append(modifiers, fromFile...)
	}
	return modifiers, nil
}

func (h *TestCommandHandler) printSummary(results []core.TransformResult) {
	diagnostics := h.printer.Diagnostics()
	rows := make([][]string, 0, len(results))
	changed := 0
	for _, result := range results {
		if len(result.AppliedActions) > 0 {
			changed++
		}
		selectors := make([]string, 0, len(result.MatchedSelectors))
		for _, s := range result.MatchedSelectors {
			selectors = append(selectors, s.Modifier+"/"+s.SelectorID)
		}
		actions := make([]string, 0, len(result.AppliedActions))
		for _, a := range result.AppliedActions {
			actions = append(actions, fmt.Sprintf("%s/%d %s %s", a.Modifier, a.Index, a.Type, a.Path))
		}
		rows = append(rows, []string{
			manifestName(result.Manifest),
			strings.Join(selectors, "\n"),
			strings.Join(actions, "\n"),
			strconv.Itoa(len(result.Errors)),
		})
	}
	diagnostics.PrintTable([]string{"MANIFEST", "MATCHED", "APPLIED", "ERRORS"}, rows, "no manifests")
	diagnostics.PrintInfo(fmt.Sprintf(
		"%d of %d %s changed",
		changed, len(results), output.Plural(len(results), "manifest", "manifests"),
	))
}

func manifestName(manifest map[string]interface{}) string {
	kind, _ := manifest["kind"].(string)
	var name, namespace string
	if metadata, ok := manifest["metadata"].(map[string]interface{}); ok {
		name, _ = metadata["name"].(string)
		namespace, _ = metadata["namespace"].(string)
	}
	if namespace != "" {
		name = namespace + "/" + name
	}
	return kind + " " + name
}
