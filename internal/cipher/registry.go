package cipher

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a cipher instance from a raw key string.
type Factory func(rawKey string) (Cipher, error)

// registry holds registered cipher factories
var (
	registryMu sync.RWMutex
	registry   = make(map[Kind]Factory)
)

func init() {
	// Register built-in cipher kinds
	Register(KindCaesar, func(rawKey string) (Cipher, error) {
		return NewCaesar(rawKey)
	})
	Register(KindPlayfair, func(rawKey string) (Cipher, error) {
		return NewPlayfair(rawKey)
	})
	Register(KindVigenere, func(rawKey string) (Cipher, error) {
		return NewVigenere(rawKey)
	})
}

// Register adds a cipher factory to the registry
func Register(kind Kind, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = factory
}

// New creates a validated cipher using the registry. Key validation happens
// here, synchronously; a bad key surfaces as *InvalidKeyError and no cipher
// is constructed.
func New(kind Kind, rawKey string) (Cipher, error) {
	registryMu.RLock()
	factory, ok := registry[kind]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unsupported cipher kind: %s", kind)
	}
	return factory(rawKey)
}

// List returns all registered cipher kinds in stable order.
func List() []Kind {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// IsRegistered checks if a cipher kind is registered
func IsRegistered(kind Kind) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[kind]
	return ok
}
