package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedProducer() {}

func TestGenerateKeyDeterministic(t *testing.T) {
	k1 := GenerateKey("users", 1, "team-a")
	k2 := GenerateKey("users", 1, "team-a")
	require.Equal(t, k1, k2)

	// Deep-equal maps derive the same key regardless of construction order.
	m1 := map[string]int{"a": 1, "b": 2}
	m2 := map[string]int{"b": 2, "a": 1}
	require.Equal(t, GenerateKey("users", m1), GenerateKey("users", m2))
}

func TestGenerateKeyDistinctArgs(t *testing.T) {
	assert.NotEqual(t, GenerateKey("users", 1), GenerateKey("users", 2))
	assert.NotEqual(t, GenerateKey("users", 1), GenerateKey("users", 1, 2))
	assert.NotEqual(t, GenerateKey("users"), GenerateKey("orders"))
}

func TestGenerateKeyFormat(t *testing.T) {
	assert.Equal(t, "users-[]", GenerateKey("users"))
	assert.Equal(t, `users-[1,"x"]`, GenerateKey("users", 1, "x"))
}

func TestGenerateKeyUnserializable(t *testing.T) {
	// Channels cannot be serialized; the argument portion degrades to a
	// fixed marker instead of failing.
	key := GenerateKey("f", make(chan int))
	assert.Equal(t, "f-"+unserializableArgs, key)
}

func TestProducerName(t *testing.T) {
	name := ProducerName(namedProducer)
	assert.True(t, strings.HasSuffix(name, ".namedProducer"), "got %q", name)

	// Anonymous functions get distinct compiler-assigned names per site.
	f1 := func() {}
	f2 := func() {}
	assert.NotEqual(t, ProducerName(f1), ProducerName(f2))

	assert.Equal(t, "<unknown>", ProducerName(42))
	assert.Equal(t, "<unknown>", ProducerName((func())(nil)))
}
