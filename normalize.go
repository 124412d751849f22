package xot

import "golang.org/x/text/unicode/norm"

// Normalizer transforms text and attribute values as they are
// serialized. The default serialization applies no normalization.
type Normalizer interface {
	Normalize(string) string
}

// NormalizerFunc adapts a plain function to the Normalizer interface.
type NormalizerFunc func(string) string

func (f NormalizerFunc) Normalize(s string) string {
	return f(s)
}

type noopNormalizer struct{}

func (noopNormalizer) Normalize(s string) string {
	return s
}

// FormNormalizer returns a Normalizer applying the given Unicode
// normalization form, e.g. norm.NFC.
func FormNormalizer(form norm.Form) Normalizer {
	return NormalizerFunc(form.String)
}
