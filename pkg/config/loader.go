package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// validator is implemented by config structs that check their own invariants.
type validator interface {
	Validate() error
}

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cache           sync.Map // type name -> *entry
	defaultEnvReady sync.Once
)

// Load fills v from the environment, loading ./.env first if present.
// Each config type is parsed once per process; later calls get a copy of the
// first result, including its error. Types with a Validate() error method are
// validated after parsing.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	raw, _ := cache.LoadOrStore(typeName[T](), &entry{})
	e := raw.(*entry)
	e.once.Do(func() {
		var fresh T
		e.err = parse(&fresh)
		e.value = fresh
	})
	if e.err != nil {
		return e.err
	}
	*v = e.value.(T)
	return nil
}

// Parse fills v from the environment without caching. Like Load, it reads
// ./.env on first use.
func Parse[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	return parse(v)
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func parse[T any](v *T) error {
	defaultEnvReady.Do(func() {
		// a missing .env is fine; variables already set win
		_ = godotenv.Load()
	})
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if val, ok := any(v).(validator); ok {
		if err := val.Validate(); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}
	return nil
}

func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}
