package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "projects/list", Key{"projects", "list"}.String())
	assert.Equal(t, "projects/detail/42", DetailKey("projects", 42).String())
}

func TestKeyHasPrefix(t *testing.T) {
	tests := []struct {
		name   string
		key    Key
		prefix Key
		want   bool
	}{
		{
			name:   "equal keys",
			key:    Key{"projects", "list"},
			prefix: Key{"projects", "list"},
			want:   true,
		},
		{
			name:   "proper prefix",
			key:    Key{"projects", "list", "page=2"},
			prefix: Key{"projects", "list"},
			want:   true,
		},
		{
			name:   "single segment prefix",
			key:    Key{"projects", "detail", "1"},
			prefix: Key{"projects"},
			want:   true,
		},
		{
			name:   "different subtree",
			key:    Key{"projects", "detail", "1"},
			prefix: Key{"projects", "list"},
			want:   false,
		},
		{
			name:   "prefix longer than key",
			key:    Key{"projects"},
			prefix: Key{"projects", "list"},
			want:   false,
		},
		{
			name:   "different kind",
			key:    Key{"invoices", "list"},
			prefix: Key{"projects"},
			want:   false,
		},
		{
			name:   "empty prefix matches everything",
			key:    Key{"projects"},
			prefix: Key{},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.HasPrefix(tt.prefix))
		})
	}
}

func TestListKey(t *testing.T) {
	t.Run("empty params collapse to the list prefix", func(t *testing.T) {
		assert.Equal(t, Key{"projects", "list"}, ListKey("projects", nil))
		assert.Equal(t, Key{"projects", "list"}, ListKey("projects", map[string]string{}))
	})

	t.Run("equal param sets canonicalize identically", func(t *testing.T) {
		a := ListKey("projects", map[string]string{"page": "2", "status": "Planned"})
		b := ListKey("projects", map[string]string{"status": "Planned", "page": "2"})
		assert.Equal(t, a, b)
		assert.Equal(t, Key{"projects", "list", "page=2&status=Planned"}, a)
	})

	t.Run("different params produce different keys", func(t *testing.T) {
		a := ListKey("projects", map[string]string{"page": "1"})
		b := ListKey("projects", map[string]string{"page": "2"})
		assert.NotEqual(t, a.mapKey(), b.mapKey())
	})

	t.Run("separator characters in values never collide", func(t *testing.T) {
		a := ListKey("projects", map[string]string{"a": "1&b=2"})
		b := ListKey("projects", map[string]string{"a": "1", "b": "2"})
		assert.NotEqual(t, a.mapKey(), b.mapKey())
	})

	t.Run("filtered list stays under the list prefix", func(t *testing.T) {
		k := ListKey("projects", map[string]string{"page": "2"})
		assert.True(t, k.HasPrefix(Key{"projects", "list"}))
	})
}

func TestMapKeyNoCollisions(t *testing.T) {
	// Сегменты с совпадающей конкатенацией не должны давать один ключ
	a := Key{"ab", "c"}
	b := Key{"a", "bc"}
	assert.NotEqual(t, a.mapKey(), b.mapKey())
}
