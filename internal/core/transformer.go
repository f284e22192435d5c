package core

import (
	"errors"
	"fmt"

	"rmod/internal/core/domain"

	"github.com/charmbracelet/log"
	"k8s.io/apimachinery/pkg/runtime"
)

type MatchedSelector struct {
	Modifier   string
	SelectorID string
}

type AppliedAction struct {
	Modifier string
	Index    int
	Type     domain.ActionType
	Path     string
}

type TransformResult struct {
	Manifest         map[string]interface{}
	MatchedSelectors []MatchedSelector
	AppliedActions   []AppliedAction
	Errors           []error
}

func (r *TransformResult) Matched() bool {
	return len(r.MatchedSelectors) > 0
}

// Transformer runs modifiers over copies of manifests.
type Transformer struct {
	evaluator  SelectorEvaluator
	applicator ActionApplicator
}

func ProvideTransformer(evaluator SelectorEvaluator, applicator ActionApplicator) *Transformer {
	return &Transformer{
		evaluator:  evaluator,
		applicator: applicator,
	}
}

func NewTransformer() *Transformer {
	return ProvideTransformer(ProvideSelectorEvaluator(), ProvideActionApplicator())
}

// Transform applies modifier to a deep copy of manifest. Every action whose
// selector matched is attempted in declared order; failures are collected
// and joined into the returned error.
func (t *Transformer) Transform(manifest map[string]interface{}, modifier domain.Modifier) (TransformResult, error) {
	result := TransformResult{Manifest: deepCopyManifest(manifest)}
	t.apply(&result, modifier)
	return result, errors.Join(result.Errors...)
}

// TransformAll runs the modifiers in order over each manifest. Each manifest
// sees the output of the previous modifier.
func (t *Transformer) TransformAll(manifests []map[string]interface{}, modifiers []domain.Modifier) ([]TransformResult, error) {
	results := make([]TransformResult, 0, len(manifests))
	var errs []error
	for _, manifest := range manifests {
		result := TransformResult{Manifest: deepCopyManifest(manifest)}
		for _, modifier := range modifiers {
			t.apply(&result, modifier)
		}
		errs = append(errs, result.Errors...)
		results = append(results, result)
	}
	return results, errors.Join(errs...)
}

func (t *Transformer) apply(result *TransformResult, modifier domain.Modifier) {
	matched := make(map[string]bool, len(modifier.Selectors))
	for _, selector := range modifier.Selectors {
		if t.evaluator.Matches(result.Manifest, selector) {
			matched[selector.ID] = true
			result.MatchedSelectors = append(result.MatchedSelectors, MatchedSelector{
				Modifier:   modifier.Name,
				SelectorID: selector.ID,
			})
		}
	}

	for i, action := range modifier.Actions {
		if !matched[action.SelectorID()] {
			continue
		}
		if err := t.applicator.Apply(result.Manifest, action); err != nil {
			log.Warn("action failed",
				"modifier", modifier.Name,
				"index", i,
				"action", action.Type(),
				"path", action.TargetPath(),
				"err", err,
			)
			result.Errors = append(result.Errors, fmt.Errorf(
				"modifier %s action %d (%s %s): %w",
				modifier.Name, i, action.Type(), action.TargetPath(), err,
			))
			continue
		}
		result.AppliedActions = append(result.AppliedActions, AppliedAction{
			Modifier: modifier.Name,
			Index:    i,
			Type:     action.Type(),
			Path:     action.TargetPath(),
		})
	}
}

func deepCopyManifest(manifest map[string]interface{}) map[string]interface{} {
	if manifest == nil {
		return map[string]interface{}{}
	}
	return runtime.DeepCopyJSON(normalizeManifest(manifest))
}

// normalizeManifest rewrites values DeepCopyJSON would panic on, such as a
// plain int, into their JSON-compatible forms.
func normalizeManifest(manifest map[string]interface{}) map[string]interface{} {
	return domain.CopyValue(manifest).(map[string]interface{})
}
