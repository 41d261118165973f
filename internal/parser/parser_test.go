package parser

import "testing"

func TestNormalisationTable(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  PAUSE  ", want: "pause"},
		{in: "heat-up   SCRAP!!", want: "heat up scrap"},
		{in: "swap   Spilled_Water  STEAM", want: "swap spilled water steam"},
	}
	for _, tc := range tests {
		got := normaliseInput(tc.in)
		if got != tc.want {
			t.Fatalf("normaliseInput(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestAliasExamineMapsToSelect(t *testing.T) {
	p := New()
	ctx := ParseContext{Entities: []string{"dust mite", "intake conveyor"}}
	intent := p.Parse(ctx, "examine dust mite")
	if intent.Verb != "select" {
		t.Fatalf("expected select verb, got %q", intent.Verb)
	}
	if intent.Clarify != nil {
		t.Fatalf("did not expect clarify: %+v", intent.Clarify)
	}
	if len(intent.Args) != 1 || intent.Args[0] != "dust mite" {
		t.Fatalf("expected args [dust mite], got %+v", intent.Args)
	}
}

func TestTypoPasueMapsToPause(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "pasue")
	if intent.Verb != "pause" {
		t.Fatalf("expected pause verb, got %q", intent.Verb)
	}
	if intent.Confidence < 0.6 {
		t.Fatalf("expected decent confidence for typo correction, got %.2f", intent.Confidence)
	}
	if intent.Clarify != nil {
		t.Fatalf("unexpected clarify: %+v", intent.Clarify)
	}
}

func TestRoomBoostResolvesPartialName(t *testing.T) {
	p := New()
	ctx := ParseContext{
		Entities: []string{"copper scrap", "scrap ice block", "intake conveyor"},
		SameRoom: []string{"copper scrap", "scrap ice block"},
	}
	intent := p.Parse(ctx, "heat scrap ice 20k")
	if intent.Verb != "heat" {
		t.Fatalf("expected heat verb, got %q", intent.Verb)
	}
	if len(intent.Args) != 1 || intent.Args[0] != "scrap ice block" {
		t.Fatalf("expected args [scrap ice block], got %+v", intent.Args)
	}
	if intent.Quantity == nil || intent.Quantity.N != 20 || intent.Quantity.Unit != "kelvin" {
		t.Fatalf("expected 20 kelvin quantity, got %+v", intent.Quantity)
	}
	if got := IntentToCommandString(intent); got != "heat scrap ice block 20k" {
		t.Fatalf("round trip command string = %q", got)
	}
}

func TestTargetlessHeatOffersOptions(t *testing.T) {
	p := New()
	ctx := ParseContext{
		SameRoom: []string{"copper scrap", "scrap ice block"},
	}
	intent := p.Parse(ctx, "heat")
	if intent.Clarify == nil {
		t.Fatalf("expected clarify for target-less heat")
	}
	if len(intent.Clarify.Options) < 2 {
		t.Fatalf("expected at least 2 clarify options, got %d", len(intent.Clarify.Options))
	}
}

func TestFreeTextPauseInference(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "please stop the clock")
	if intent.Verb != "pause" {
		t.Fatalf("expected pause inference, got %q", intent.Verb)
	}
}

func TestSwapResolvesElementArg(t *testing.T) {
	p := New()
	ctx := ParseContext{
		Entities: []string{"spilled water", "water tank"},
		Elements: []string{"water", "steam", "ice"},
	}
	intent := p.Parse(ctx, "swap spilled water steam")
	if intent.Verb != "swap" {
		t.Fatalf("expected swap verb, got %q", intent.Verb)
	}
	if len(intent.Args) != 2 || intent.Args[0] != "spilled water" || intent.Args[1] != "steam" {
		t.Fatalf("expected [spilled water steam], got %+v", intent.Args)
	}
	if intent.Clarify != nil {
		t.Fatalf("unexpected clarify: %+v", intent.Clarify)
	}
}

func TestPronounResolutionHeatIt(t *testing.T) {
	p := New()
	ctx := ParseContext{
		Entities:   []string{"copper scrap"},
		LastEntity: "copper scrap",
	}
	intent := p.Parse(ctx, "heat it 15")
	if intent.Clarify != nil {
		t.Fatalf("unexpected clarify: %+v", intent.Clarify)
	}
	if intent.Verb != "heat" {
		t.Fatalf("expected heat verb, got %q", intent.Verb)
	}
	if len(intent.Args) != 1 || intent.Args[0] != "copper scrap" {
		t.Fatalf("expected pronoun to resolve to copper scrap, got %+v", intent.Args)
	}
	if intent.Quantity == nil || intent.Quantity.N != 15 {
		t.Fatalf("expected quantity 15, got %+v", intent.Quantity)
	}
}

func TestInfectParsesDiseaseAndCount(t *testing.T) {
	p := New()
	ctx := ParseContext{
		Entities: []string{"dust mite"},
		Diseases: []string{"spore bloom", "rust lung", "void phage"},
	}
	intent := p.Parse(ctx, "infect dust mite spore bloom 2000")
	if intent.Verb != "infect" {
		t.Fatalf("expected infect verb, got %q", intent.Verb)
	}
	if len(intent.Args) != 2 || intent.Args[0] != "dust mite" || intent.Args[1] != "spore bloom" {
		t.Fatalf("expected [dust mite spore bloom], got %+v", intent.Args)
	}
	if intent.Quantity == nil || intent.Quantity.N != 2000 {
		t.Fatalf("expected germ count 2000, got %+v", intent.Quantity)
	}
}

func TestUnitCommandMapsShorthand(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "unit c")
	if intent.Verb != "unit" {
		t.Fatalf("expected unit verb, got %q", intent.Verb)
	}
	if len(intent.Args) != 1 || intent.Args[0] != "celsius" {
		t.Fatalf("expected [celsius], got %+v", intent.Args)
	}
}

func TestAmbiguousEntityClarifies(t *testing.T) {
	p := New()
	ctx := ParseContext{Entities: []string{"algae mat", "algae crust"}}
	intent := p.Parse(ctx, "select algae")
	if intent.Clarify == nil {
		t.Fatalf("expected clarify for ambiguous entity")
	}
	if len(intent.Clarify.Options) != 2 {
		t.Fatalf("expected 2 clarify options, got %d", len(intent.Clarify.Options))
	}
	if intent.Clarify.Options[0].Args[0] != "algae crust" {
		t.Fatalf("expected alphabetical tie order, got %+v", intent.Clarify.Options[0].Args)
	}
}

func TestRoomCommandSkipsStopWords(t *testing.T) {
	p := New()
	ctx := ParseContext{Rooms: []string{"receiving floor", "holding tank"}}
	intent := p.Parse(ctx, "go to the holding tank")
	if intent.Verb != "room" {
		t.Fatalf("expected room verb, got %q", intent.Verb)
	}
	if len(intent.Args) != 1 || intent.Args[0] != "holding tank" {
		t.Fatalf("expected [holding tank], got %+v", intent.Args)
	}
}

func TestCureAllSweepSkipsTargetRequirement(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "cure all")
	if intent.Verb != "cure" {
		t.Fatalf("expected cure verb, got %q", intent.Verb)
	}
	if intent.Clarify != nil {
		t.Fatalf("unexpected clarify for sweep: %+v", intent.Clarify)
	}
	if intent.Quantity == nil || intent.Quantity.Unit != "all" {
		t.Fatalf("expected all quantity, got %+v", intent.Quantity)
	}
}

func TestStepCarriesTickCount(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "step 5")
	if intent.Verb != "step" {
		t.Fatalf("expected step verb, got %q", intent.Verb)
	}
	if intent.Quantity == nil || intent.Quantity.N != 5 {
		t.Fatalf("expected 5 ticks, got %+v", intent.Quantity)
	}
}

func TestFreeTextToggleInference(t *testing.T) {
	p := New()
	ctx := ParseContext{Entities: []string{"cryo pump", "stasis rack"}}
	intent := p.Parse(ctx, "turn off the cryo pump")
	if intent.Verb != "toggle" {
		t.Fatalf("expected toggle inference, got %q", intent.Verb)
	}
	if len(intent.Args) != 1 || intent.Args[0] != "cryo pump" {
		t.Fatalf("expected [cryo pump], got %+v", intent.Args)
	}
}
