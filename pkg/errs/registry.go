package errs

// Codes is a sealed registry mapping error codes to human descriptions.
// The backing map is private and copied on the way in and out, so a
// registry can never be mutated after construction.
type Codes struct {
	m map[Code]string
}

// NewCodes builds a sealed code registry from the given mapping.
// The input map is copied; later changes to it do not affect the registry.
func NewCodes(m map[Code]string) Codes {
	c := Codes{m: make(map[Code]string, len(m))}
	for k, v := range m {
		c.m[k] = v
	}
	return c
}

// Describe returns the human description for a code, or the code itself
// when the registry does not know it.
func (c Codes) Describe(code Code) string {
	if desc, ok := c.m[code]; ok {
		return desc
	}
	return string(code)
}

// Has reports whether the registry contains the code.
func (c Codes) Has(code Code) bool {
	_, ok := c.m[code]
	return ok
}

// Len returns the number of registered codes.
func (c Codes) Len() int {
	return len(c.m)
}

// All returns a snapshot of the registry. Mutating the snapshot does not
// affect the registry.
func (c Codes) All() map[Code]string {
	out := make(map[Code]string, len(c.m))
	for k, v := range c.m {
		out[k] = v
	}
	return out
}

// MergeCodes composes two registries into a new sealed registry.
// On collision the entry from b wins.
func MergeCodes(a, b Codes) Codes {
	out := Codes{m: make(map[Code]string, len(a.m)+len(b.m))}
	for k, v := range a.m {
		out.m[k] = v
	}
	for k, v := range b.m {
		out.m[k] = v
	}
	return out
}

// Categories is a sealed registry mapping categories to human descriptions.
// Same contract as Codes.
type Categories struct {
	m map[Category]string
}

// NewCategories builds a sealed category registry from the given mapping.
func NewCategories(m map[Category]string) Categories {
	c := Categories{m: make(map[Category]string, len(m))}
	for k, v := range m {
		c.m[k] = v
	}
	return c
}

// Describe returns the human description for a category, or the category
// itself when unknown.
func (c Categories) Describe(cat Category) string {
	if desc, ok := c.m[cat]; ok {
		return desc
	}
	return string(cat)
}

// Has reports whether the registry contains the category.
func (c Categories) Has(cat Category) bool {
	_, ok := c.m[cat]
	return ok
}

// Len returns the number of registered categories.
func (c Categories) Len() int {
	return len(c.m)
}

// All returns a snapshot of the registry.
func (c Categories) All() map[Category]string {
	out := make(map[Category]string, len(c.m))
	for k, v := range c.m {
		out[k] = v
	}
	return out
}

// MergeCategories composes two registries into a new sealed registry.
// On collision the entry from b wins.
func MergeCategories(a, b Categories) Categories {
	out := Categories{m: make(map[Category]string, len(a.m)+len(b.m))}
	for k, v := range a.m {
		out.m[k] = v
	}
	for k, v := range b.m {
		out.m[k] = v
	}
	return out
}
