package entity

type Year string

const (
	FirstYear  Year = "First Year"
	SecondYear Year = "Second Year"
	ThirdYear  Year = "Third Year"
	FourthYear Year = "Fourth Year"
)

// Years is the order the forms offer them in.
var Years = []Year{FirstYear, SecondYear, ThirdYear, FourthYear}

type Branch string

const (
	BranchCOMPS Branch = "COMPS"
	BranchCSBS  Branch = "CSBS"
	BranchAIDS  Branch = "AIDS"
	BranchIT    Branch = "IT"
	BranchCCE   Branch = "CCE"
	BranchEXTC  Branch = "EXTC"
	BranchVLSI  Branch = "VLSI"
	BranchMECH  Branch = "MECH"
)

var Branches = []Branch{
	BranchCOMPS,
	BranchCSBS,
	BranchAIDS,
	BranchIT,
	BranchCCE,
	BranchEXTC,
	BranchVLSI,
	BranchMECH,
}

func (y Year) Valid() bool {
	for _, v := range Years {
		if v == y {
			return true
		}
	}

	return false
}

func (b Branch) Valid() bool {
	for _, v := range Branches {
		if v == b {
			return true
		}
	}

	return false
}
