// Package fake provides ready-made value generators for seeder columns.
//
// Every exported generator has the seeder.Generator signature, so it can be
// passed straight to seeder.Col. Parameterized generators (IntRange,
// OneOf, ...) return a seeder.Generator. Values come from a shared
// gofakeit source; Seed makes them repeatable.
package fake

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Lumos-Labs-HQ/seedling/seeder"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

var (
	mu    sync.Mutex
	faker = gofakeit.New(0)

	counter atomic.Int64
)

// Seed resets the shared source, making generated values repeatable.
// A zero seed picks a random one.
func Seed(seed int64) {
	mu.Lock()
	faker = gofakeit.New(uint64(seed))
	mu.Unlock()
	counter.Store(0)
}

// with runs fn on the shared faker. Holding the lock for the whole call keeps
// multi-draw values (names, addresses) repeatable under Seed.
func with[T any](fn func(f *gofakeit.Faker) T) T {
	mu.Lock()
	defer mu.Unlock()
	return fn(faker)
}

func intn(n int) int {
	return with(func(f *gofakeit.Faker) int { return f.IntN(n) })
}

func UUID() seeder.Value {
	return seeder.UUID(uuid.MustParse(with((*gofakeit.Faker).UUID)))
}

func FirstName() seeder.Value {
	return seeder.Text(with((*gofakeit.Faker).FirstName))
}

func LastName() seeder.Value {
	return seeder.Text(with((*gofakeit.Faker).LastName))
}

func Name() seeder.Value {
	return seeder.Text(with((*gofakeit.Faker).Name))
}

// Username is unique within the process.
func Username() seeder.Value {
	n := counter.Add(1)
	return seeder.Text(fmt.Sprintf("%s_%d", strings.ToLower(with((*gofakeit.Faker).Username)), n))
}

// Email is unique within the process.
func Email() seeder.Value {
	n := counter.Add(1)
	email := with(func(f *gofakeit.Faker) string {
		return fmt.Sprintf("%s.%d@%s", f.Username(), n, f.DomainName())
	})
	return seeder.Text(strings.ToLower(email))
}

func Title() seeder.Value {
	return seeder.Text(with((*gofakeit.Faker).BookTitle))
}

func Sentence() seeder.Value {
	return seeder.Text(with(func(f *gofakeit.Faker) string { return f.Sentence(8) }))
}

func Word() seeder.Value {
	return seeder.Text(with((*gofakeit.Faker).Word))
}

func URL() seeder.Value {
	return seeder.Text(with((*gofakeit.Faker).URL))
}

func Phone() seeder.Value {
	return seeder.Text(with((*gofakeit.Faker).Phone))
}

func Address() seeder.Value {
	return seeder.Text(with(func(f *gofakeit.Faker) string { return f.Address().Address }))
}

func Bool() seeder.Value {
	return seeder.Bool(with((*gofakeit.Faker).Bool))
}

func Int() seeder.Value {
	return seeder.Int(with(func(f *gofakeit.Faker) int { return f.IntRange(1, 1000000) }))
}

func Float() seeder.Value {
	return seeder.Float(with(func(f *gofakeit.Faker) float64 { return f.Float64Range(0, 10000) }))
}

// Timestamp is a time within the last year.
func Timestamp() seeder.Value {
	return seeder.Time(pastTime())
}

func Date() seeder.Value {
	return seeder.Text(pastTime().Format("2006-01-02"))
}

// JSON is a small flat object.
func JSON() seeder.Value {
	doc := with(func(f *gofakeit.Faker) map[string]any {
		return map[string]any{"word": f.Word(), "number": f.IntRange(1, 1000), "active": f.Bool()}
	})
	data, err := json.Marshal(doc)
	if err != nil {
		return seeder.Text("{}")
	}
	return seeder.Text(data)
}

func pastTime() time.Time {
	now := time.Now()
	return with(func(f *gofakeit.Faker) time.Time {
		return f.DateRange(now.AddDate(-1, 0, 0), now)
	}).Truncate(time.Second)
}

// Sequence yields start, start+1, ... on successive calls.
func Sequence(start int64) seeder.Generator {
	var n atomic.Int64
	n.Store(start - 1)
	return func() seeder.Value {
		return seeder.Int(n.Add(1))
	}
}

// IntRange yields integers in [min, max].
func IntRange(min, max int) seeder.Generator {
	if max < min {
		min, max = max, min
	}
	return func() seeder.Value {
		return seeder.Int(with(func(f *gofakeit.Faker) int { return f.IntRange(min, max) }))
	}
}

// OneOf yields one of the given values at random.
func OneOf(values ...string) seeder.Generator {
	if len(values) == 0 {
		return func() seeder.Value { return seeder.Null }
	}
	return func() seeder.Value {
		return seeder.Text(values[intn(len(values))])
	}
}

// Nullable yields NULL for roughly percent% of calls and gen otherwise.
func Nullable(gen seeder.Generator, percent int) seeder.Generator {
	return func() seeder.Value {
		if intn(100) < percent {
			return seeder.Null
		}
		return gen()
	}
}
