package app

import (
	"github.com/simmering/ladle/internal/registry"
	"github.com/simmering/ladle/internal/techniques/categorize"
	"github.com/simmering/ladle/internal/techniques/clean"
	"github.com/simmering/ladle/internal/techniques/encode"
	"github.com/simmering/ladle/internal/techniques/fill"
	"github.com/simmering/ladle/internal/techniques/mix"
	"github.com/simmering/ladle/internal/techniques/reduce"
	"github.com/simmering/ladle/internal/techniques/sample"
	"github.com/simmering/ladle/internal/techniques/scale"
	"github.com/simmering/ladle/internal/techniques/summarize"
)

// coreModules is the definitive list of technique modules compiled into the
// ladle binary.
var coreModules = []registry.Module{
	&fill.Module{},
	&clean.Module{},
	&categorize.Module{},
	&scale.Module{},
	&encode.Module{},
	&mix.Module{},
	&reduce.Module{},
	&sample.Module{},
	&summarize.Module{},
}
