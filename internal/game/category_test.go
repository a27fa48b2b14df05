package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	c, ok := ParseCategory("flirt")
	assert.True(t, ok)
	assert.Equal(t, CategoryFlirt, c)

	c, ok = ParseCategory("  FUNNY ")
	assert.True(t, ok)
	assert.Equal(t, CategoryFunny, c)

	_, ok = ParseCategory("import os")
	assert.False(t, ok)
}

func TestParseCategories_FiltersAndDedupes(t *testing.T) {
	t.Parallel()

	set := ParseCategories([]string{"flirt", "bogus", "flirt", "extreme"})
	assert.Equal(t, CategorySet{CategoryFlirt, CategoryExtreme}, set)
}

func TestParseCategories_EmptyFallsBackToDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultCategories(), ParseCategories(nil))
	assert.Equal(t, DefaultCategories(), ParseCategories([]string{"nope"}))
}

func TestCategorySet_Intersect(t *testing.T) {
	t.Parallel()

	a := CategorySet{CategoryFlirt, CategorySexy, CategoryFunny}
	b := CategorySet{CategoryFunny, CategoryFlirt}

	assert.Equal(t, CategorySet{CategoryFlirt, CategoryFunny}, a.Intersect(b))
	assert.Empty(t, a.Intersect(CategorySet{CategoryAcquaintance}))
}

func TestCategorySet_Strings(t *testing.T) {
	t.Parallel()

	set := CategorySet{CategoryAcquaintance, CategoryFlirt}
	assert.Equal(t, []string{"acquaintance", "flirt"}, set.Strings())
}
