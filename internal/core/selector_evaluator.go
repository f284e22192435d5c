package core

import (
	"strings"

	"rmod/internal/core/domain"
	"rmod/internal/core/fieldpath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

var (
	kindPath      = fieldpath.MustParse("kind")
	namePath      = fieldpath.MustParse("metadata.name")
	namespacePath = fieldpath.MustParse("metadata.namespace")
	labelsPath    = fieldpath.MustParse("metadata.labels")
)

// SelectorEvaluator decides whether a manifest is targeted by a selector.
type SelectorEvaluator struct{}

func ProvideSelectorEvaluator() SelectorEvaluator {
	return SelectorEvaluator{}
}

// Matches reports whether every criterion of the selector holds for the
// manifest. A selector without criteria matches nothing.
func (e SelectorEvaluator) Matches(manifest map[string]interface{}, selector domain.Selector) bool {
	if len(selector.Criteria) == 0 {
		return false
	}
	for _, criterion := range selector.Criteria {
		matched := e.matchCriterion(manifest, criterion)
		log.Debug("selector criterion evaluated",
			"selector", selector.ID,
			"criterion", criterion.Type(),
			"matched", matched,
		)
		if !matched {
			return false
		}
	}
	return true
}

func (e SelectorEvaluator) matchCriterion(manifest map[string]interface{}, criterion domain.Criterion) bool {
	switch c := criterion.(type) {
	case domain.KindCriterion:
		return matchStringField(manifest, kindPath, c.Pattern)
	case domain.NameCriterion:
		return matchStringField(manifest, namePath, c.Pattern)
	case domain.NamespaceCriterion:
		return matchStringField(manifest, namespacePath, c.Pattern)
	case domain.LabelsCriterion:
		return matchLabels(manifest, c.Labels)
	case domain.FieldCriterion:
		return matchField(manifest, c)
	}
	return false
}

func matchStringField(manifest map[string]interface{}, path fieldpath.Path, pattern string) bool {
	raw, found := path.Get(manifest)
	if !found {
		return false
	}
	value, ok := raw.(string)
	if !ok {
		return false
	}
	return MatchPattern(pattern, value)
}

// MatchPattern compares exactly unless the pattern carries wildcard syntax.
func MatchPattern(pattern, value string) bool {
	if !strings.ContainsAny(pattern, "*?[{") {
		return pattern == value
	}
	matched, err := doublestar.Match(pattern, value)
	if err != nil {
		log.Debug("malformed wildcard pattern", "pattern", pattern, "err", err)
		return false
	}
	return matched
}

func matchLabels(manifest map[string]interface{}, want map[string]string) bool {
	if len(want) == 0 {
		return false
	}
	raw, found := labelsPath.Get(manifest)
	if !found {
		return false
	}
	labels, ok := raw.(map[string]interface{})
	if !ok {
		return false
	}
	for key, value := range want {
		actual, ok := labels[key]
		if !ok {
			return false
		}
		if s, ok := actual.(string); !ok || s != value {
			return false
		}
	}
	return true
}

func matchField(manifest map[string]interface{}, c domain.FieldCriterion) bool {
	path, err := fieldpath.Parse(c.Path)
	if err != nil {
		log.Debug("field selector path does not parse", "path", c.Path, "err", err)
		return false
	}
	raw, found := path.Get(manifest)
	if !found {
		return false
	}

	actual := domain.Stringify(raw)
	var hit bool
	if c.Exact {
		hit = actual == c.Value
	} else {
		hit = strings.Contains(actual, c.Value)
	}

	if c.Criteria == domain.DoesNotContain {
		return !hit
	}
	return hit
}
