package parser

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Unknown
)

// Quantity is a numeric argument pulled out of the token stream: a germ
// count, a temperature delta ("20" or "20k"), a step count, or the word
// "all" for sweep commands.
type Quantity struct {
	Raw  string
	N    int
	Unit string
}

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Quantity   *Quantity
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext carries the vocabularies the console can currently refer to.
// All lists hold display names; matching normalises both sides.
type ParseContext struct {
	// Entities is every selectable object aboard the station.
	Entities []string
	// SameRoom lists the entities sharing the focused room; matches there
	// score a little higher.
	SameRoom []string
	// Fixtures lists toggleable entities, boosted for the toggle command.
	Fixtures []string
	Rooms    []string
	Elements []string
	Diseases []string
	// LastEntity is the current selection, used to resolve pronouns.
	LastEntity string
}

type CommandDef struct {
	Canonical  string
	Aliases    []string
	MinArgs    int
	MaxArgs    int
	HandlerKey string
}
