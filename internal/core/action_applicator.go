package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"rmod/internal/core/domain"
	"rmod/internal/core/fieldpath"

	"github.com/charmbracelet/log"
	utiljson "k8s.io/apimachinery/pkg/util/json"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// ActionApplicator mutates manifests that matched an action's selector.
type ActionApplicator struct{}

func ProvideActionApplicator() ActionApplicator {
	return ActionApplicator{}
}

// Apply mutates manifest in place. Add and Delete never fail on missing
// fields; Modify fails with domain.ErrPathNotFound when the path does not
// resolve and leaves the manifest untouched.
func (a ActionApplicator) Apply(manifest map[string]interface{}, action domain.Action) error {
	path, err := fieldpath.Parse(action.TargetPath())
	if err != nil {
		return domain.NewValidationError(nil, field.Invalid(field.NewPath("path"), action.TargetPath(), err.Error()))
	}

	switch act := action.(type) {
	case domain.AddAction:
		if err := path.Set(manifest, domain.CopyValue(act.Value)); err != nil {
			return fmt.Errorf("failed to add %s: %w", path, err)
		}
		log.Debug("field added", "path", path)
		return nil

	case domain.DeleteAction:
		removed := path.Remove(manifest)
		log.Debug("field deleted", "path", path, "removed", removed)
		return nil

	case domain.ModifyAction:
		return a.modify(manifest, path, act)
	}
	return fmt.Errorf("unsupported action type %s", action.Type())
}

func (a ActionApplicator) modify(manifest map[string]interface{}, path fieldpath.Path, act domain.ModifyAction) error {
	current, found := path.Get(manifest)
	if !found {
		return domain.NewValidationError(
			domain.ErrPathNotFound,
			field.NotFound(field.NewPath("path"), path.String()),
		)
	}

	var updated interface{}
	switch act.Parameters {
	case "", domain.ModifyExact:
		if !domain.IsEmptyValue(act.Value) && domain.Stringify(current) != domain.Stringify(act.Value) {
			log.Debug("modify skipped, current value differs", "path", path, "current", domain.Stringify(current))
			return nil
		}
		updated = domain.CopyValue(act.NewValue)
		if s, ok := updated.(string); ok {
			updated = restoreKind(current, s)
		}

	case domain.ModifyContains:
		find := domain.Stringify(act.Value)
		replaced := strings.ReplaceAll(domain.Stringify(current), find, domain.Stringify(act.NewValue))
		updated = restoreKind(current, replaced)

	default:
		return domain.NewValidationError(nil, field.NotSupported(
			field.NewPath("parameters"),
			act.Parameters,
			[]string{string(domain.ModifyExact), string(domain.ModifyContains)},
		))
	}

	if err := path.Set(manifest, updated); err != nil {
		return fmt.Errorf("failed to modify %s: %w", path, err)
	}
	log.Debug("field modified", "path", path, "parameters", act.Parameters)
	return nil
}

// restoreKind converts s back to the kind of original when it parses as
// that kind. Anything else becomes a string.
func restoreKind(original interface{}, s string) interface{} {
	switch original.(type) {
	case int64, int, int32:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	case float64:
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
				return int64(f)
			}
			return f
		}
	case bool:
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	case map[string]interface{}, []interface{}:
		var decoded interface{}
		if err := utiljson.Unmarshal([]byte(s), &decoded); err == nil {
			return decoded
		}
	}
	return s
}
