package activations

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var (
	registryMux sync.RWMutex
	registry    map[string]Activation
)

func init() {
	list := []Activation{
		Identity(),
		Logistic(),
		Tanh(),
		ReLU(),
		Softplus(),
		Softsign(),
	}

	registry = make(map[string]Activation)
	for _, a := range list {
		if err := Register(a); err != nil {
			panic(err)
		}
	}
}

// Register makes the Activation available to Get under its TypeString. Names must be unique
// and not empty.
func Register(a Activation) error {
	if a == nil {
		return errors.Errorf("Can't register Activation, it is nil")
	}

	name := a.TypeString()
	if name == "" {
		return errors.Errorf(`Can't register Activation, name cannot be ""`)
	}

	registryMux.Lock()
	defer registryMux.Unlock()

	if _, ok := registry[name]; ok {
		return errors.Errorf("Can't register Activation, name %q is already taken", name)
	}

	registry[name] = a
	return nil
}

// Get returns the Activation registered under the given name.
func Get(name string) (Activation, bool) {
	registryMux.RLock()
	defer registryMux.RUnlock()

	a, ok := registry[name]
	return a, ok
}

// Names returns the sorted names of all registered Activations.
func Names() []string {
	registryMux.RLock()
	defer registryMux.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
