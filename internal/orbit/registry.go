package orbit

import (
	"fmt"
	"sort"
	"sync"
)

// ClassifierFactory creates and caches classifiers by registry name.
type ClassifierFactory interface {
	// List returns the registered names in sorted order.
	List() []string
	// Get returns the classifier registered under name.
	Get(name string) (Classifier, error)
	// MustGet is like Get but panics if name is unknown.
	MustGet(name string) Classifier
	// GetAll returns every registered classifier keyed by name.
	GetAll() map[string]Classifier
	// Register adds or replaces the strategy registered under name.
	Register(name string, s Strategy)
}

// DefaultFactory is the standard ClassifierFactory. It is safe for
// concurrent use.
type DefaultFactory struct {
	mu          sync.RWMutex
	strategies  map[string]Strategy
	classifiers map[string]Classifier
}

// NewDefaultFactory returns a factory with the built-in strategies
// registered as "naive", "memo" and "parallel".
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		strategies:  make(map[string]Strategy),
		classifiers: make(map[string]Classifier),
	}
	f.Register("naive", Naive{})
	f.Register("memo", Memoized{})
	f.Register("parallel", Parallel{})
	return f
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns a process-wide DefaultFactory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}

// Register implements ClassifierFactory.
func (f *DefaultFactory) Register(name string, s Strategy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strategies[name] = s
	delete(f.classifiers, name)
}

// List implements ClassifierFactory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.strategies))
	for name := range f.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get implements ClassifierFactory.
func (f *DefaultFactory) Get(name string) (Classifier, error) {
	f.mu.RLock()
	c, ok := f.classifiers[name]
	f.mu.RUnlock()
	if ok {
		return c, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.classifiers[name]; ok {
		return c, nil
	}
	s, ok := f.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClassifier, name)
	}
	c = NewClassifier(s)
	f.classifiers[name] = c
	return c, nil
}

// MustGet implements ClassifierFactory.
func (f *DefaultFactory) MustGet(name string) Classifier {
	c, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return c
}

// GetAll implements ClassifierFactory.
func (f *DefaultFactory) GetAll() map[string]Classifier {
	all := make(map[string]Classifier)
	for _, name := range f.List() {
		if c, err := f.Get(name); err == nil {
			all[name] = c
		}
	}
	return all
}
