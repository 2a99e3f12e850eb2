package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyManagedTag(t *testing.T) {
	tests := []struct {
		name    string
		current []string
		tag     string
		want    []string
	}{
		{
			name:    "appends to empty set",
			current: nil,
			tag:     "BS밀리터리",
			want:    []string{"BS밀리터리"},
		},
		{
			name:    "replaces previous managed tag",
			current: []string{"빈티지", "BS뉴", "캐주얼"},
			tag:     "BS아카이브",
			want:    []string{"빈티지", "캐주얼", "BS아카이브"},
		},
		{
			name:    "strips every managed tag",
			current: []string{"BS뉴", "BS큐레이티드", "데님"},
			tag:     "BS워크웨어",
			want:    []string{"데님", "BS워크웨어"},
		},
		{
			name:    "preserves unmanaged tag order",
			current: []string{"c", "a", "b"},
			tag:     "BS재팬",
			want:    []string{"c", "a", "b", "BS재팬"},
		},
		{
			name:    "empty tag only strips",
			current: []string{"빈티지", "BS뉴"},
			tag:     "",
			want:    []string{"빈티지"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyManagedTag(tt.current, tt.tag)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyManagedTag_CapsAtMax(t *testing.T) {
	current := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		current = append(current, fmt.Sprintf("tag-%d", i))
	}

	got := ApplyManagedTag(current, "BS클리어런스")

	assert.Len(t, got, MaxSellerTags)
	assert.NotContains(t, got, "BS클리어런스", "cap drops the trailing managed tag when sellers fill all slots")
}

func TestApplyManagedTag_DoesNotMutateInput(t *testing.T) {
	current := []string{"빈티지", "BS뉴"}
	ApplyManagedTag(current, "BS아카이브")
	assert.Equal(t, []string{"빈티지", "BS뉴"}, current)
}

func TestTagsEqual(t *testing.T) {
	assert.True(t, TagsEqual(nil, nil))
	assert.True(t, TagsEqual([]string{"a", "b"}, []string{"a", "b"}))
	assert.False(t, TagsEqual([]string{"a", "b"}, []string{"b", "a"}), "order is platform-visible")
	assert.False(t, TagsEqual([]string{"a"}, []string{"a", "b"}))
}
