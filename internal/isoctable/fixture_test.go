package isoctable

import (
	"fmt"
	"math"
	"strings"
)

// fixtureColumns mirrors a PARSEC run through the 2MASS system.
const fixtureColumns = "Z\tlog(age/yr)\tM_ini\tM_act\tlogTe\tJ\tH\tKs\tstage"

// buildFixture generates a synthetic CMD result table with nSeg embedded
// isochrones: nine global header lines, then per segment two header lines
// (metadata, column names) followed by rowsPerSeg data lines. Layout
// matches real CMD 2.x output, so the first data line of the first
// segment sits at index 11.
func buildFixture(nSeg, rowsPerSeg int) string {
	var b strings.Builder
	for i := 0; i < 9; i++ {
		fmt.Fprintf(&b, "# CMD output header line %d\n", i)
	}
	for k := 0; k < nSeg; k++ {
		logAge := 6.6 + 0.05*float64(k)
		age := math.Pow(10, logAge)
		fmt.Fprintf(&b, "#\tIsochrone  Z = 0.019  age = %.1f yr\n", age)
		fmt.Fprintf(&b, "#\t%s\n", fixtureColumns)
		for r := 0; r < rowsPerSeg; r++ {
			mass := 0.5 + 0.1*float64(r)
			fmt.Fprintf(&b, "\t0.019\t%.4f\t%.4f\t%.4f\t3.6500\t%.3f\t%.3f\t%.3f\tRGB\n",
				logAge, mass, mass*0.99, 10.0-mass, 9.5-mass, 9.3-mass)
		}
	}
	return b.String()
}
