package domain

// Profile holds the structured user profile. Attributes are user-defined
// (age, goals, preferences, health conditions) and arrive either from form
// input or from model extraction, so the shape stays an open map rather
// than a fixed struct. When structured extraction fails, the raw model
// output is stored under RawProfileKey instead of being dropped.
type Profile map[string]any

// RawProfileKey marks an unparsed model response preserved verbatim after a
// failed profile extraction.
const RawProfileKey = "raw_profile"

// Clone returns a shallow copy of the profile. Returns an empty profile for nil.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a copy of p with every field from updates applied over it.
// Fields absent from updates keep their existing values.
func (p Profile) Merge(updates Profile) Profile {
	out := p.Clone()
	for k, v := range updates {
		out[k] = v
	}
	return out
}
