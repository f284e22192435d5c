package fieldpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Segment
	}{
		{
			name:  "json pointer",
			input: "/metadata/labels/app",
			expected: []Segment{
				{Type: KeySegment, Key: "metadata"},
				{Type: KeySegment, Key: "labels"},
				{Type: KeySegment, Key: "app"},
			},
		},
		{
			name:  "json pointer with escapes",
			input: "/metadata/annotations/example.com~1owner~0x",
			expected: []Segment{
				{Type: KeySegment, Key: "metadata"},
				{Type: KeySegment, Key: "annotations"},
				{Type: KeySegment, Key: "example.com/owner~x"},
			},
		},
		{
			name:  "json pointer with numeric segment",
			input: "/spec/ports/0/port",
			expected: []Segment{
				{Type: KeySegment, Key: "spec"},
				{Type: KeySegment, Key: "ports"},
				{Type: AutoSegment, Key: "0", Index: 0},
				{Type: KeySegment, Key: "port"},
			},
		},
		{
			name:  "dotted with index",
			input: "spec.ports[1].port",
			expected: []Segment{
				{Type: KeySegment, Key: "spec"},
				{Type: KeySegment, Key: "ports"},
				{Type: IndexSegment, Key: "1", Index: 1},
				{Type: KeySegment, Key: "port"},
			},
		},
		{
			name:  "dotted with leading dot",
			input: ".spec.replicas",
			expected: []Segment{
				{Type: KeySegment, Key: "spec"},
				{Type: KeySegment, Key: "replicas"},
			},
		},
		{
			name:  "dotted with quoted key",
			input: `metadata.labels["app.kubernetes.io/name"]`,
			expected: []Segment{
				{Type: KeySegment, Key: "metadata"},
				{Type: KeySegment, Key: "labels"},
				{Type: KeySegment, Key: "app.kubernetes.io/name"},
			},
		},
		{
			name:  "leading zero stays a key",
			input: "data.007",
			expected: []Segment{
				{Type: KeySegment, Key: "data"},
				{Type: KeySegment, Key: "007"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Segments())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"/",
		"/spec//replicas",
		"/spec/",
		"spec..replicas",
		"spec.",
		"spec.ports[",
		"spec.ports[x]",
		"spec.ports[-1]",
		"spec]",
		`metadata.labels["app]`,
		"spec.ports[0]port",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)

			assert.Error(t, err)
		})
	}
}

func TestParse_EmptyPathError(t *testing.T) {
	_, err := Parse("")

	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustParse("a..b") })
	assert.NotPanics(t, func() { MustParse("a.b") })
}

func newDeployment() map[string]interface{} {
	return map[string]interface{}{
		"apiVersion": "apps/v1",
		"kind":       "Deployment",
		"metadata": map[string]interface{}{
			"name": "nginx-deploy",
			"labels": map[string]interface{}{
				"app":  "nginx",
				"temp": "true",
			},
		},
		"spec": map[string]interface{}{
			"replicas": int64(3),
			"ports": []interface{}{
				map[string]interface{}{"port": int64(80)},
				map[string]interface{}{"port": int64(443)},
			},
		},
	}
}

func TestPath_Get(t *testing.T) {
	tests := []struct {
		path     string
		expected interface{}
		found    bool
	}{
		{path: "spec.replicas", expected: int64(3), found: true},
		{path: "/spec/replicas", expected: int64(3), found: true},
		{path: "spec.ports[1].port", expected: int64(443), found: true},
		{path: "/spec/ports/0/port", expected: int64(80), found: true},
		{path: "spec.ports.0.port", expected: int64(80), found: true},
		{path: "metadata.labels.app", expected: "nginx", found: true},
		{path: "spec.ports[2].port", found: false},
		{path: "spec.replicas.value", found: false},
		{path: "metadata.annotations", found: false},
		{path: "metadata[0]", found: false},
		{path: "spec.ports.name", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			sut := MustParse(tt.path)

			value, found := sut.Get(newDeployment())

			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestPath_Set_ReplacesExistingValue(t *testing.T) {
	obj := newDeployment()

	err := MustParse("spec.replicas").Set(obj, int64(5))

	require.NoError(t, err)
	assert.Equal(t, int64(5), obj["spec"].(map[string]interface{})["replicas"])
}

func TestPath_Set_CreatesIntermediateMaps(t *testing.T) {
	obj := newDeployment()

	err := MustParse("/metadata/annotations/backup.cv.io~1restored").Set(obj, "yes")

	require.NoError(t, err)
	value, found := MustParse(`metadata.annotations["backup.cv.io/restored"]`).Get(obj)
	assert.True(t, found)
	assert.Equal(t, "yes", value)
}

func TestPath_Set_AppendsAtListLength(t *testing.T) {
	obj := newDeployment()

	err := MustParse("spec.ports[2]").Set(obj, map[string]interface{}{"port": int64(8080)})

	require.NoError(t, err)
	ports := obj["spec"].(map[string]interface{})["ports"].([]interface{})
	assert.Len(t, ports, 3)
	assert.Equal(t, int64(8080), ports[2].(map[string]interface{})["port"])
}

func TestPath_Set_CreatesListForExplicitIndexZero(t *testing.T) {
	obj := map[string]interface{}{}

	err := MustParse("spec.containers[0].name").Set(obj, "app")

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"spec": map[string]interface{}{
			"containers": []interface{}{
				map[string]interface{}{"name": "app"},
			},
		},
	}, obj)
}

func TestPath_Set_AutoSegmentCreatesMapKey(t *testing.T) {
	obj := map[string]interface{}{}

	err := MustParse("/data/1").Set(obj, "one")

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"data": map[string]interface{}{"1": "one"}}, obj)
}

func TestPath_Set_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "index out of range", path: "spec.ports[5].port"},
		{name: "index into map", path: "metadata[0]"},
		{name: "key into list", path: "spec.ports.name"},
		{name: "through scalar", path: "spec.replicas.value"},
		{name: "new list with non-zero index", path: "spec.volumes[3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := newDeployment()

			err := MustParse(tt.path).Set(obj, "x")

			assert.Error(t, err)
			assert.Equal(t, newDeployment(), obj)
		})
	}
}

func TestPath_Set_ZeroPath(t *testing.T) {
	err := Path{}.Set(map[string]interface{}{}, "x")

	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestPath_Remove(t *testing.T) {
	obj := newDeployment()

	removed := MustParse("metadata.labels.temp").Remove(obj)

	assert.True(t, removed)
	assert.Equal(t, map[string]interface{}{"app": "nginx"}, obj["metadata"].(map[string]interface{})["labels"])
}

func TestPath_Remove_ListElement(t *testing.T) {
	obj := newDeployment()

	removed := MustParse("/spec/ports/0").Remove(obj)

	assert.True(t, removed)
	assert.Equal(t, []interface{}{
		map[string]interface{}{"port": int64(443)},
	}, obj["spec"].(map[string]interface{})["ports"])
}

func TestPath_Remove_AbsentIsNoop(t *testing.T) {
	paths := []string{
		"metadata.annotations.owner",
		"spec.ports[7]",
		"spec.replicas.value",
		"status",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			obj := newDeployment()

			removed := MustParse(path).Remove(obj)

			assert.False(t, removed)
			assert.Equal(t, newDeployment(), obj)
		})
	}
}
