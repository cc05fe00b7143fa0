package means

import (
	"gomeans/domain/core"
)

// TestKind selects one of the eleven supported test variants.
type TestKind string

const (
	TestFisher            TestKind = "fisher"
	TestCochran           TestKind = "cochran"
	TestWelch             TestKind = "welch"
	TestJames             TestKind = "james"
	TestBox               TestKind = "box"
	TestScottSmith        TestKind = "scott-smith"
	TestBrownForsythe     TestKind = "brown-forsythe"
	TestAlexanderGovern   TestKind = "alexander-govern"
	TestMehrotra          TestKind = "mehrotra"
	TestHartungAgacMakabi TestKind = "hartung-agac-makabi"
	TestOzdemirKurt       TestKind = "ozdemir-kurt"
)

var displayNames = map[TestKind]string{
	TestFisher:            "Fisher one-way anova",
	TestCochran:           "Cochran for Means",
	TestWelch:             "Welch one-way anova",
	TestJames:             "James test",
	TestBox:               "Box correction for Fisher",
	TestScottSmith:        "Scott and Smith",
	TestBrownForsythe:     "Brown-Forsythe for Means",
	TestAlexanderGovern:   "Alexander-Govern",
	TestMehrotra:          "Mehrotra modified Brown-Forsythe",
	TestHartungAgacMakabi: "Hartung-Agac-Makabi adjusted Welch",
	TestOzdemirKurt:       "Özdemir-Kurt B2",
}

// AllTests returns the closed set of test selectors in stable order.
func AllTests() []TestKind {
	return []TestKind{
		TestFisher,
		TestCochran,
		TestWelch,
		TestJames,
		TestBox,
		TestScottSmith,
		TestBrownForsythe,
		TestAlexanderGovern,
		TestMehrotra,
		TestHartungAgacMakabi,
		TestOzdemirKurt,
	}
}

// DisplayName returns the human-readable test name.
func (k TestKind) DisplayName() string {
	return displayNames[k]
}

// Valid reports whether k is one of the enumerated selectors.
func (k TestKind) Valid() bool {
	_, ok := displayNames[k]
	return ok
}

// ParseTestKind validates a test selector string.
func ParseTestKind(s string) (TestKind, error) {
	k := TestKind(s)
	if !k.Valid() {
		return "", core.NewUnknownTestError(s)
	}
	return k, nil
}
