package query

import (
	"encoding/json"
	"reflect"
	"runtime"
)

// unserializableArgs is the argument marker used when the argument list
// cannot be serialized (cyclic values, channels, functions). All such
// argument lists for one producer share a key; callers with unstable
// arguments should supply an explicit key via WithKey.
const unserializableArgs = "<unserializable>"

// GenerateKey derives the cache key for a producer identity and its ordered
// argument list. The format is "{identity}-{json(args)}" where the argument
// list is serialized structurally: two deep-equal argument lists always yield
// the same key (encoding/json emits map keys in sorted order), and distinct
// lists yield distinct keys on a best-effort basis.
func GenerateKey(identity string, args ...any) string {
	return identity + "-" + encodeArgs(args)
}

func encodeArgs(args []any) string {
	if len(args) == 0 {
		return "[]"
	}
	b, err := json.Marshal(args)
	if err != nil {
		return unserializableArgs
	}
	return string(b)
}

// ProducerName returns the declared name of a function value, as reported by
// the runtime (e.g. "github.com/acme/app.FetchUser"). Anonymous functions get
// their compiler-assigned closure name, which is unique per declaration site
// but unstable across refactors; prefer WithLabel for producers whose
// identity must survive code movement. Non-function values yield "<unknown>".
func ProducerName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "<unknown>"
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "<unknown>"
	}
	return f.Name()
}
