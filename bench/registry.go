package bench

import (
	"github.com/pkg/errors"

	"github.com/theflywheel/hashtables"
)

// Names lists the registered implementations in report order
var Names = []string{"chaining", "open", "builtin", "swiss"}

// Registry maps implementation names to factories. The hand-built tables use
// hash; the reference adapters bring their own.
func Registry(hash hashtables.HashFunc) map[string]hashtables.Factory {
	opt := hashtables.WithHashFunc(hash)
	return map[string]hashtables.Factory{
		"chaining": hashtables.ChainingFactory(opt),
		"open":     hashtables.OpenFactory(opt),
		"builtin":  hashtables.BuiltinFactory,
		"swiss":    hashtables.SwissFactory,
	}
}

// Select returns the factories for names. An empty list selects everything.
func Select(reg map[string]hashtables.Factory, names []string) (map[string]hashtables.Factory, error) {
	if len(names) == 0 {
		return reg, nil
	}
	out := make(map[string]hashtables.Factory, len(names))
	for _, name := range names {
		f, ok := reg[name]
		if !ok {
			return nil, errors.Errorf("unknown implementation %q", name)
		}
		out[name] = f
	}
	return out, nil
}
