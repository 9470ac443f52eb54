package errs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodesSealedAgainstInputMutation(t *testing.T) {
	src := map[Code]string{"billing declined": "The charge was declined"}
	reg := NewCodes(src)

	src["billing declined"] = "changed"
	src["sneaky"] = "added after the fact"

	assert.Equal(t, "The charge was declined", reg.Describe("billing declined"))
	assert.False(t, reg.Has("sneaky"))
	assert.Equal(t, 1, reg.Len())
}

func TestCodesSealedAgainstSnapshotMutation(t *testing.T) {
	reg := NewCodes(map[Code]string{"a": "first"})

	snap := reg.All()
	snap["a"] = "mutated"
	snap["b"] = "injected"

	assert.Equal(t, "first", reg.Describe("a"))
	assert.False(t, reg.Has("b"))
}

func TestCodesDescribeUnknownFallsBack(t *testing.T) {
	reg := NewCodes(nil)
	assert.Equal(t, "mystery", reg.Describe("mystery"))
}

func TestMergeCodes(t *testing.T) {
	base := NewCodes(map[Code]string{"a": "base a", "b": "base b"})
	extra := NewCodes(map[Code]string{"b": "extra b", "c": "extra c"})

	merged := MergeCodes(base, extra)

	assert.Equal(t, "base a", merged.Describe("a"))
	assert.Equal(t, "extra b", merged.Describe("b"))
	assert.Equal(t, "extra c", merged.Describe("c"))

	// Inputs untouched.
	assert.Equal(t, "base b", base.Describe("b"))
	assert.False(t, base.Has("c"))
}

func TestShippedRegistries(t *testing.T) {
	assert.True(t, ErrorCodes.Has(CodeNotFound))
	assert.True(t, ErrorCodes.Has(CodeInvalidRequest))
	assert.True(t, ErrorCodes.Has(CodeConsentNotFound))
	assert.True(t, ErrorCategories.Has(CategoryValidation))
	assert.True(t, ErrorCategories.Has(CategoryConsent))
	assert.NotEmpty(t, ErrorCodes.Describe(CodeNotFound))
}

func TestCategoriesSealed(t *testing.T) {
	reg := NewCategories(map[Category]string{"billing": "Billing failures"})

	snap := reg.All()
	snap["billing"] = "mutated"

	assert.Equal(t, "Billing failures", reg.Describe("billing"))

	merged := MergeCategories(ErrorCategories, reg)
	assert.True(t, merged.Has("billing"))
	assert.True(t, merged.Has(CategoryStorage))
	assert.False(t, ErrorCategories.Has("billing"))
}
