package urlparams

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// TagName is the struct tag Typed and FromStruct read field names from.
const TagName = "query"

// Typed exposes the params of a Synchronizer as a struct of type T.
type Typed[T any] struct {
	*Synchronizer
}

// NewTyped creates a typed synchronizer for loc.
func NewTyped[T any](loc Location) *Typed[T] {
	return &Typed[T]{Synchronizer: New(loc)}
}

// Value decodes the current params into a T.
func (t *Typed[T]) Value() (T, error) {
	var out T
	if err := Decode(t.Params(), &out); err != nil {
		return out, err
	}
	return out, nil
}

// UpdateFrom applies the fields of partial as an update. Fields dropped by
// omitempty leave the current value untouched; nil pointers and empty strings
// clear it.
func (t *Typed[T]) UpdateFrom(partial any) error {
	p, err := FromStruct(partial)
	if err != nil {
		return err
	}
	t.Update(p)
	return nil
}

// Decode decodes params into out, a pointer to a struct. Scalars are weakly
// converted so a single "tags=a" still fills a []string field.
func Decode(p Params, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("creating params decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(p)); err != nil {
		return fmt.Errorf("decoding params: %w", err)
	}
	return nil
}

// FromStruct converts a tagged struct into Params suitable for Update.
func FromStruct(v any) (Params, error) {
	out := make(map[string]any)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: TagName,
		Result:  &out,
	})
	if err != nil {
		return nil, fmt.Errorf("creating params encoder: %w", err)
	}
	if err := dec.Decode(v); err != nil {
		return nil, fmt.Errorf("encoding params: %w", err)
	}
	p := make(Params, len(out))
	for k, val := range out {
		p[k] = deref(val)
	}
	return p, nil
}
