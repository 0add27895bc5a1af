package recommend

import "petmatch/internal/domain/pets"

type AgeBucket string

const (
	AgePuppy  AgeBucket = "cachorro"
	AgeYoung  AgeBucket = "joven"
	AgeAdult  AgeBucket = "adulto"
	AgeSenior AgeBucket = "senior"
)

// ageBuckets en orden cronológico; también desempata la edad preferida.
var ageBuckets = []AgeBucket{AgePuppy, AgeYoung, AgeAdult, AgeSenior}

// AgeBucketOf: <12 meses cachorro, <36 joven, <=96 adulto, >96 senior.
// Sin edad conocida se asume adulto.
func AgeBucketOf(p pets.Pet) AgeBucket {
	months, ok := p.AgeInMonths()
	if !ok {
		return AgeAdult
	}
	switch {
	case months < 12:
		return AgePuppy
	case months < 36:
		return AgeYoung
	case months <= 96:
		return AgeAdult
	default:
		return AgeSenior
	}
}
