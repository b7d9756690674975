package output

// Disclaimer is printed on every summary document
const Disclaimer = "This is an estimate for planning purposes only and is not tax advice. Confirm your deduction with a tax professional or the official IRS instructions."

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs
var DefaultAssumptions = []string{
	"Only the premium portion of overtime pay (the amount above the regular rate) is deductible.",
	"Amounts reported without a breakdown are treated as total overtime pay including base pay.",
	"Each tier is rounded down to whole dollars before tiers are added.",
	"The phase-out reduces the maximum deduction linearly across the phase-out range.",
}
