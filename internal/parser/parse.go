package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Commands() []CommandDef {
	return p.registry.Commands()
}

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command.", Options: nil}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		inferred := inferFreeTextIntent(ctx, intent.Raw, intent.Normalised)
		if inferred != nil {
			return *inferred
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try help, select, look, pause, step, heat, cool, infect, cure, toggle, swap, unit, save, load.",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		options := []Intent{
			{
				Raw:        raw,
				Normalised: cmdMatch.Canonical,
				Kind:       commandKind(cmdMatch.Canonical),
				Verb:       cmdMatch.Canonical,
				Confidence: cmdMatch.Score,
			},
			{
				Raw:        raw,
				Normalised: alternates[0].Canonical,
				Kind:       commandKind(alternates[0].Canonical),
				Verb:       alternates[0].Canonical,
				Confidence: alternates[0].Score,
			},
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt:  "Did you mean:",
			Options: options,
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}
	argsTokens, q := splitQuantity(argsTokens)
	intent.Quantity = q

	def, _ := p.registry.command(intent.Verb)
	resolvedArgs, clarify, argScore := p.resolveArgs(ctx, def, argsTokens)
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = resolvedArgs
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))

	sweep := intent.Quantity != nil && intent.Quantity.Unit == "all"
	if intent.Kind == Command && len(intent.Args) < def.MinArgs && !sweep {
		if def.MinArgs > 0 && wantsTargetOptions(def.Canonical) {
			options := buildEntityOptions(ctx, def.Canonical, 5)
			if len(options) > 0 {
				intent.Clarify = &ClarifyQuestion{
					Prompt:  fmt.Sprintf("What should I %s?", def.Canonical),
					Options: options,
				}
				intent.Confidence = 0.46
				return intent
			}
		}
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s needs at least %d argument(s).", def.Canonical, def.MinArgs)}
		intent.Confidence = 0.42
		return intent
	}

	if def.MaxArgs > 0 && len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 && intent.Clarify == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase or pick a clearer command."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "look", "entities", "rooms":
		return Query
	default:
		return Command
	}
}

// wantsTargetOptions lists the verbs that, when typed without a target, offer
// the nearby entities as clarify options instead of a bare error.
func wantsTargetOptions(verb string) bool {
	switch verb {
	case "select", "heat", "cool", "cure", "toggle":
		return true
	default:
		return false
	}
}

func splitQuantity(tokens []string) ([]string, *Quantity) {
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(tokens))
	var q *Quantity
	for _, token := range tokens {
		if q == nil {
			if candidate := parseQuantityToken(token); candidate != nil {
				q = candidate
				continue
			}
		}
		out = append(out, token)
	}
	return out, q
}

type argKind int

const (
	argPlain argKind = iota
	argEntity
	argElement
	argDisease
	argRoom
	argUnit
)

// positionKind reports what vocabulary a command expects at a given resolved
// argument position.
func positionKind(verb string, pos int) argKind {
	switch verb {
	case "select", "heat", "cool", "cure", "toggle":
		if pos == 0 {
			return argEntity
		}
	case "infect":
		if pos == 0 {
			return argEntity
		}
		if pos == 1 {
			return argDisease
		}
	case "swap":
		if pos == 0 {
			return argEntity
		}
		if pos == 1 {
			return argElement
		}
	case "room":
		if pos == 0 {
			return argRoom
		}
	case "unit", "radiation":
		if pos == 0 {
			return argUnit
		}
	}
	return argPlain
}

func (p *Parser) resolveArgs(ctx ParseContext, def CommandDef, args []string) ([]string, *ClarifyQuestion, float64) {
	if len(args) == 0 {
		return nil, nil, 0.9
	}

	resolved := make([]string, 0, len(args))
	score := 0.9
	for i := 0; i < len(args); i++ {
		token := args[i]
		kind := positionKind(def.Canonical, len(resolved))

		if kind == argEntity && isPronoun(token) {
			if strings.TrimSpace(ctx.LastEntity) == "" {
				return nil, &ClarifyQuestion{Prompt: "What does that pronoun refer to?"}, 0.4
			}
			resolved = append(resolved, normaliseInput(ctx.LastEntity))
			score -= 0.08
			continue
		}

		// Filler words sit between command and name all the time ("go to the
		// holding tank"); skip them while a name is still expected.
		if kind != argPlain && kind != argUnit && isStopWord(token) {
			continue
		}

		switch kind {
		case argEntity, argElement, argDisease, argRoom:
			resolve := p.resolverFor(kind, ctx, def.Canonical)
			joined, advance := greedyJoin(args, i, resolve)
			matches, confidence, tie := resolve(joined)
			if tie && len(matches) >= 2 {
				options := make([]Intent, 0, 2)
				for idx := 0; idx < 2; idx++ {
					options = append(options, Intent{
						Kind:       commandKind(def.Canonical),
						Verb:       def.Canonical,
						Args:       []string{matches[idx]},
						Confidence: confidence - float64(idx)*0.01,
					})
				}
				return nil, &ClarifyQuestion{
					Prompt:  fmt.Sprintf("Did you mean %s?", def.Canonical),
					Options: options,
				}, 0.52
			}
			if len(matches) == 1 {
				resolved = append(resolved, matches[0])
				score = minScore(score, confidence)
				i += advance
				continue
			}
		case argUnit:
			if def.Canonical == "radiation" {
				resolved = append(resolved, token)
				continue
			}
			mapped := mapUnit(token)
			if mapped == "" {
				return nil, &ClarifyQuestion{Prompt: "Which unit: kelvin, celsius or fahrenheit?"}, 0.45
			}
			resolved = append(resolved, mapped)
			continue
		}

		resolved = append(resolved, token)
		score -= 0.02
	}
	return resolved, nil, clampScore(score)
}

func (p *Parser) resolverFor(kind argKind, ctx ParseContext, verb string) func(string) ([]string, float64, bool) {
	switch kind {
	case argElement:
		return func(s string) ([]string, float64, bool) {
			return bestMatches(normaliseInput(s), normaliseList(ctx.Elements), nil, nil)
		}
	case argDisease:
		return func(s string) ([]string, float64, bool) {
			return bestMatches(normaliseInput(s), normaliseList(ctx.Diseases), nil, nil)
		}
	case argRoom:
		return func(s string) ([]string, float64, bool) {
			return bestMatches(normaliseInput(s), normaliseList(ctx.Rooms), nil, nil)
		}
	default:
		return func(s string) ([]string, float64, bool) {
			return resolveEntity(s, ctx, verb)
		}
	}
}

// greedyJoin tries to consume up to three tokens as one name, longest first,
// so "scrap ice block" resolves in a single argument.
func greedyJoin(args []string, i int, resolve func(string) ([]string, float64, bool)) (string, int) {
	maxExtra := len(args) - 1 - i
	if maxExtra > 2 {
		maxExtra = 2
	}
	for extra := maxExtra; extra >= 1; extra-- {
		try := strings.Join(args[i:i+extra+1], " ")
		if _, s, _ := resolve(try); s > 0.9 {
			return try, extra
		}
	}
	return args[i], 0
}

func resolveEntity(token string, ctx ParseContext, verb string) ([]string, float64, bool) {
	n := normaliseInput(token)
	if n == "" {
		return nil, 0, false
	}
	sameRoom := normaliseList(ctx.SameRoom)
	all := mergeUnique(ctx.SameRoom, ctx.Entities)
	return bestMatches(n, all, sameRoom, fixturesForVerb(verb, normaliseList(ctx.Fixtures)))
}

func fixturesForVerb(verb string, fixtures []string) []string {
	if verb == "toggle" {
		return fixtures
	}
	return nil
}

func bestMatches(token string, all []string, roomBoost []string, fixtureBoost []string) ([]string, float64, bool) {
	if len(all) == 0 {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}
	roomSet := make(map[string]bool, len(roomBoost))
	for _, n := range roomBoost {
		roomSet[n] = true
	}
	fixtureSet := make(map[string]bool, len(fixtureBoost))
	for _, n := range fixtureBoost {
		fixtureSet[n] = true
	}

	results := make([]scored, 0, len(all))
	for _, cand := range all {
		score := 0.0
		switch {
		case token == cand:
			score = 1.0
		case strings.HasPrefix(cand, token) && len(token) >= 2:
			score = 0.9
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		if roomSet[cand] {
			score += 0.08
		}
		if fixtureSet[cand] {
			score += 0.08
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	tie := len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6
	if tie {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

func buildEntityOptions(ctx ParseContext, verb string, maxOptions int) []Intent {
	pool := ctx.SameRoom
	if verb == "toggle" && len(ctx.Fixtures) > 0 {
		pool = ctx.Fixtures
	}
	if len(pool) == 0 {
		pool = ctx.Entities
	}
	seen := map[string]bool{}
	options := make([]Intent, 0, maxOptions)
	for _, entity := range pool {
		n := normaliseInput(entity)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		options = append(options, Intent{
			Kind:       commandKind(verb),
			Verb:       verb,
			Args:       []string{n},
			Confidence: 0.88,
		})
		if len(options) >= maxOptions {
			break
		}
	}
	return options
}

func inferFreeTextIntent(ctx ParseContext, raw string, normalised string) *Intent {
	n := normalised
	makeIntent := func(kind IntentKind, verb string, args []string, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Args:       args,
			Confidence: clampScore(confidence),
		}
	}

	if containsAnyPhrase(n,
		"where am i", "look around", "look about", "what is here", "whats here", "whats in here",
	) {
		return makeIntent(Query, "look", nil, 0.88)
	}

	if containsAnyPhrase(n, "stop the clock", "stop time", "freeze time", "hold time") {
		return makeIntent(Command, "pause", nil, 0.84)
	}
	if containsWord(n, "unpause") || containsWord(n, "resume") || containsWord(n, "continue") {
		return makeIntent(Command, "resume", nil, 0.82)
	}

	if verb := inferTemperatureTweak(n); verb != "" {
		entity := stripFillerWords(n)
		if entity == "" {
			// No nameable target; the console applies it to the selection.
			return makeIntent(Command, verb, nil, 0.7)
		}
		m, confidence, tie := resolveEntity(entity, ctx, verb)
		if !tie && len(m) == 1 {
			return makeIntent(Command, verb, []string{m[0]}, confidence)
		}
		return makeIntent(Command, verb, []string{entity}, 0.6)
	}

	if containsAnyPhrase(n, "turn on", "turn off", "switch on", "switch off", "power up", "power down") {
		tokens := tokenise(n)
		if len(tokens) > 2 {
			rest := make([]string, 0, len(tokens)-2)
			for _, token := range tokens[2:] {
				if isStopWord(token) {
					continue
				}
				rest = append(rest, token)
			}
			entity := strings.Join(rest, " ")
			m, confidence, tie := resolveEntity(entity, ctx, "toggle")
			if tie && len(m) >= 2 {
				return &Intent{
					Raw:        raw,
					Normalised: normalised,
					Kind:       Command,
					Verb:       "toggle",
					Confidence: 0.52,
					Clarify: &ClarifyQuestion{
						Prompt: "Did you mean:",
						Options: []Intent{
							{Kind: Command, Verb: "toggle", Args: []string{m[0]}, Confidence: confidence},
							{Kind: Command, Verb: "toggle", Args: []string{m[1]}, Confidence: confidence - 0.01},
						},
					},
				}
			}
			if len(m) == 1 {
				return makeIntent(Command, "toggle", []string{m[0]}, confidence)
			}
		}
		return makeIntent(Command, "toggle", nil, 0.6)
	}

	for _, unit := range []string{"celsius", "fahrenheit", "kelvin"} {
		if containsWord(n, unit) {
			return makeIntent(Command, "unit", []string{unit}, 0.8)
		}
	}

	return nil
}

// inferTemperatureTweak maps comparative phrasing ("make it hotter") onto the
// heat and cool commands.
func inferTemperatureTweak(normalised string) string {
	switch {
	case containsWord(normalised, "hotter") || containsWord(normalised, "warmer") || containsAnyPhrase(normalised, "warm up", "heat up"):
		return "heat"
	case containsWord(normalised, "colder") || containsWord(normalised, "cooler") || containsAnyPhrase(normalised, "cool down", "chill down"):
		return "cool"
	default:
		return ""
	}
}

func stripFillerWords(normalised string) string {
	drop := map[string]bool{
		"make": true, "turn": true, "get": true, "please": true,
		"hotter": true, "warmer": true, "colder": true, "cooler": true,
		"warm": true, "heat": true, "cool": true, "chill": true, "down": true,
		"it": true, "this": true, "that": true,
	}
	kept := make([]string, 0, 4)
	for _, token := range tokenise(normalised) {
		if drop[token] || isStopWord(token) {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsPhrase(value, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(value, phrase string) bool {
	p := normaliseInput(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+p+" ")
}

func containsWord(value, word string) bool {
	w := normaliseInput(word)
	if w == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+w+" ")
}

func normaliseList(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		n := normaliseInput(item)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

func mergeUnique(a, b []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(a)+len(b))
	add := func(list []string) {
		for _, v := range list {
			n := normaliseInput(v)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	add(a)
	add(b)
	return out
}

func minScore(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args)+1)
	for _, arg := range intent.Args {
		n := normaliseInput(arg)
		if n != "" {
			args = append(args, n)
		}
	}
	if intent.Quantity != nil && intent.Quantity.Raw != "" {
		args = append(args, normaliseInput(intent.Quantity.Raw))
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}
