// Package all imports all engines implemented by the engine package.
package all

import (
	_ "github.com/noriah/gpufft/engine/native"
	_ "github.com/noriah/gpufft/engine/reference"
)
