package deployment

import (
	"context"
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Consumer describes the calling context that wants to drive a deployment
// kind. Not every kind makes sense everywhere: tearing down an arbitrary
// deployment is fine as a standalone action, but a caller that pairs an
// insert with a later delete should never start from the deleter kind.
type Consumer int

const (
	// ConsumerSingleAction performs exactly one lifecycle action, such as a
	// post-build deploy step.
	ConsumerSingleAction Consumer = iota
	// ConsumerPaired inserts a deployment and later tears it down again,
	// such as a step wrapping a test run.
	ConsumerPaired
)

// Variant is one deployment kind, drivable through a uniform entry point.
type Variant interface {
	InsertFromWorkspace(ctx context.Context, workspace string, env Environment, sink *log.Entry) error
	Delete(ctx context.Context, env Environment, sink *log.Entry) error
}

// Factory builds a variant from its identity and dependencies. Kinds that
// take no configuration ignore configFilePath and importPaths.
type Factory func(credentialsFile, name string, module Module, configFilePath, importPaths string) Variant

const (
	KindTemplated = "templated"
	KindDeleter   = "deleter"
)

type kind struct {
	applicable func(Consumer) bool
	factory    Factory
}

var (
	kindsMu sync.Mutex
	kinds   = make(map[string]kind)
)

// RegisterKind adds a deployment kind to the registry under a tag, with a
// predicate deciding which consumer contexts it is applicable to.
// Registering a duplicate tag panics.
func RegisterKind(tag string, applicable func(Consumer) bool, factory Factory) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	if _, exists := kinds[tag]; exists {
		panic(fmt.Sprintf("deployment kind %q registered twice", tag))
	}
	kinds[tag] = kind{applicable: applicable, factory: factory}
}

// NewVariant instantiates the kind registered under tag, after checking that
// it is applicable to the consumer context.
func NewVariant(tag string, consumer Consumer, credentialsFile, name string, module Module, configFilePath, importPaths string) (Variant, error) {
	kindsMu.Lock()
	k, ok := kinds[tag]
	kindsMu.Unlock()

	if !ok {
		return nil, fmt.Errorf("unknown deployment kind %q; available kinds: %v", tag, Kinds(consumer))
	}
	if !k.applicable(consumer) {
		return nil, fmt.Errorf("deployment kind %q cannot be used here; available kinds: %v", tag, Kinds(consumer))
	}
	return k.factory(credentialsFile, name, module, configFilePath, importPaths), nil
}

// Kinds returns the tags applicable to the consumer context, sorted.
func Kinds(consumer Consumer) []string {
	kindsMu.Lock()
	defer kindsMu.Unlock()

	tags := make([]string, 0, len(kinds))
	for tag, k := range kinds {
		if k.applicable(consumer) {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

func init() {
	RegisterKind(KindTemplated,
		func(Consumer) bool { return true },
		func(credentialsFile, name string, module Module, configFilePath, importPaths string) Variant {
			return NewTemplated(credentialsFile, name, module, configFilePath, importPaths)
		})

	RegisterKind(KindDeleter,
		func(c Consumer) bool { return c == ConsumerSingleAction },
		func(credentialsFile, name string, module Module, _, _ string) Variant {
			return NewDeleter(credentialsFile, name, module)
		})
}
