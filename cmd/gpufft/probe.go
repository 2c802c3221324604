package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/noriah/gpufft"
	"github.com/noriah/gpufft/engine"
	"github.com/noriah/gpufft/engine/native"
)

type check struct {
	name string
	err  error
}

// printProbe runs the host checks for engine and reports whether all passed.
func printProbe(name string, opts engine.Options) bool {
	checks := hostChecks(native.LibraryPath(name, opts.LibraryPath))
	checks = append(checks, check{"load " + name, loadCheck(name, opts)})

	ok := true
	for _, c := range checks {
		mark, detail := "ok", ""
		if c.err != nil {
			mark, detail, ok = "FAIL", ": "+c.err.Error(), false
		}
		fmt.Printf("[%4s] %s%s\n", mark, c.name, detail)
	}

	return ok
}

func loadCheck(name string, opts engine.Options) error {
	if !engine.HasBackend(name) {
		return errors.Errorf("engine not found: %q", name)
	}

	if _, rect := engine.FindBackend(name).(engine.Engine); rect {
		_, err := gpufft.Open(name, opts)
		return err
	}

	_, err := gpufft.OpenSquare(name, opts)
	return err
}

var errNeedsCgo = errors.New("built without cgo or not on linux")

func cgoCheck() error {
	if !native.Available {
		return errNeedsCgo
	}
	return nil
}
