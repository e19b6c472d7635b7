package usecase

import (
	"regexp"

	"github.com/riderbuilder/backend/internal/domain"
)

// The pattern library is the single canonical rule set for rider parsing.
// All patterns are written in folded ASCII form and matched against
// NormalizeText output, so Swedish å/ä/ö appear as a/o (e.g. "vanner" for
// "vänner"). Tables are ordered slices: table order is the declared
// tie-break when accumulated weights are equal.

// tagPattern pairs a tag with its match pattern and scoring weight. Each
// occurrence of the pattern in the text contributes weight to the tag.
type tagPattern struct {
	tag     string
	pattern *regexp.Regexp
	weight  float64
}

// peoplePattern is one candidate pattern for the people count. Patterns are
// tried in order, most specific first; the first match that yields a count
// in (0,100) wins. plusOne marks "me and N others" phrasings where the
// speaker is not included in N.
type peoplePattern struct {
	pattern *regexp.Regexp
	plusOne bool
}

var peopleCountPatterns = []peoplePattern{
	{pattern: regexp.MustCompile(`(\d+)\s*(?:personer|person|pers|st|stycken)`)},
	{pattern: regexp.MustCompile(`for\s*(\d+)`)},
	{pattern: regexp.MustCompile(`(\d+)\s*(?:man|kvinnor|gaster|guests|people)`)},
	{pattern: regexp.MustCompile(`vi\s+ar\s+(\d+)`)},
	{pattern: regexp.MustCompile(`(?:mig|jag)\s+och\s+(?:mina\s+)?(\d+)`), plusOne: true},
	{pattern: regexp.MustCompile(`(\d+)\s+vanner`)},
}

// soloPattern marks implicit single-person phrasings ("bara jag", "solo").
var soloPattern = regexp.MustCompile(`\b(?:bara jag|endast jag|solo|ensam)\b`)

// budgetPattern is one tier's vocabulary. The parser counts occurrences per
// tier and picks the strictly highest count; the slice order (Low, High,
// Medium) is the declared tie-break order.
type budgetPattern struct {
	tier    domain.BudgetTier
	pattern *regexp.Regexp
}

var budgetPatterns = []budgetPattern{
	{tier: domain.BudgetLow, pattern: regexp.MustCompile(`budget|billig|ekonom|lag\s*kostnad|cheap|inte\s*dyr|spara|prisv.rd`)},
	{tier: domain.BudgetHigh, pattern: regexp.MustCompile(`lyx|premium|exklusiv|dyr|luxury|high.?end|pengar.*(?:ingen|spelar\s*ingen)\s*roll|bast(?:a)?`)},
	{tier: domain.BudgetMedium, pattern: regexp.MustCompile(`mellan|medium|normal|standard|lagom|varken.*eller`)},
}

var preferencePatterns = []tagPattern{
	{tag: "vegan", pattern: regexp.MustCompile(`vegan|vaxtbaserad|plant.?based|vegansk`), weight: 1.0},
	{tag: "vegetarian", pattern: regexp.MustCompile(`vegetarian|vegetarisk|veggo|lacto.?ovo`), weight: 1.0},
	{tag: "glutenfritt", pattern: regexp.MustCompile(`gluten.?fr|glutenfritt|celiak|spannmals.?fri`), weight: 1.0},
	{tag: "laktosfritt", pattern: regexp.MustCompile(`laktos.?fr|laktosfritt|dairy.?free|mjolk.?fri`), weight: 1.0},
	{tag: "alkoholfritt", pattern: regexp.MustCompile(`alkohol.?fr|alkoholfritt|non.?alcoholic|ingen\s*alkohol|nykter`), weight: 1.0},
	{tag: "eko", pattern: regexp.MustCompile(`ekologisk|eko|organic|krav.?markt`), weight: 0.8},
	{tag: "halsosam", pattern: regexp.MustCompile(`halsosam|healthy|nyttig|wellness|halso`), weight: 0.8},
	{tag: "energi", pattern: regexp.MustCompile(`energi|energy|boost|koffein|caffeine|vaken|pigg`), weight: 0.9},
	{tag: "protein", pattern: regexp.MustCompile(`protein|high.?protein|muskel|gains|traning`), weight: 0.9},
	{tag: "lyxig", pattern: regexp.MustCompile(`lyx|lyxig|premium|exklusiv|luxury|finare`), weight: 0.8},
	{tag: "minimalistisk", pattern: regexp.MustCompile(`minimal|enkelt|clean|simpel|avskalat|\blite\b`), weight: 0.7},
	{tag: "festlig", pattern: regexp.MustCompile(`fest|party|festlig|celebrate|fira|kalas`), weight: 0.9},
	{tag: "cozy", pattern: regexp.MustCompile(`cozy|mysig|warm|comfort|mys|varmt`), weight: 0.8},
	{tag: "focus", pattern: regexp.MustCompile(`fokus|focus|koncentration|concentration|skarp`), weight: 0.8},
	{tag: "raw", pattern: regexp.MustCompile(`raw|\bra\b|naturell|natural|obehandlad`), weight: 0.7},
	{tag: "bubbel", pattern: regexp.MustCompile(`bubbel|champagne|prosecco|sparkling|cava`), weight: 0.9},
	{tag: "sockerfritt", pattern: regexp.MustCompile(`socker.?fr|sockerfritt|sugar.?free|lag.?socker|no\s*sugar`), weight: 0.8},
	{tag: "hallbar", pattern: regexp.MustCompile(`hallbar|sustainable|miljovanlig|klimatsmart`), weight: 0.7},
	{tag: "lokal", pattern: regexp.MustCompile(`lokal|svenskt|svensk|narproducerad|nordisk`), weight: 0.7},
}

// Allergens are a presence test only: one mention is enough and repeat
// mentions do not strengthen the signal, so the weight column is unused.
var allergenPatterns = []tagPattern{
	{tag: "notter", pattern: regexp.MustCompile(`not(?:ter|allergi)|nut\s*allergy|peanut|mandel\s*allergi|jordnot|hasselnot`), weight: 1.0},
	{tag: "mjolk", pattern: regexp.MustCompile(`mjolk(?:allergi|protein)|dairy\s*allergy|laktos(?:intoleran)?`), weight: 1.0},
	{tag: "gluten", pattern: regexp.MustCompile(`gluten(?:allergi)?|celiaki|celiac|vete(?:allergi)?`), weight: 1.0},
	{tag: "agg", pattern: regexp.MustCompile(`agg(?:allergi)?|egg\s*allergy`), weight: 1.0},
	{tag: "soja", pattern: regexp.MustCompile(`soja(?:allergi)?|soy\s*allergy`), weight: 1.0},
	{tag: "sesamfron", pattern: regexp.MustCompile(`sesam(?:fron)?|sesame`), weight: 1.0},
	{tag: "skaldjur", pattern: regexp.MustCompile(`skaldjur|shellfish|rakallerg`), weight: 1.0},
	{tag: "fisk", pattern: regexp.MustCompile(`fisk(?:allergi)?|fish\s*allergy`), weight: 1.0},
	{tag: "jordnotter", pattern: regexp.MustCompile(`jordnot(?:ter)?(?:allergi)?|peanut`), weight: 1.0},
	{tag: "selleri", pattern: regexp.MustCompile(`selleri|celery`), weight: 1.0},
	{tag: "senap", pattern: regexp.MustCompile(`senap|mustard`), weight: 1.0},
	{tag: "lupin", pattern: regexp.MustCompile(`lupin`), weight: 1.0},
	{tag: "blotdjur", pattern: regexp.MustCompile(`blotdjur|mollusc`), weight: 1.0},
}

// allergyContextRegex detects generic allergy/avoidance vocabulary. The
// signal does not gate which allergens are emitted; it only feeds the
// allergen confidence score.
var allergyContextRegex = regexp.MustCompile(`allergi|tal\s*inte|undvik|kan\s*inte\s*ata|kanslig|intoleran`)

var categoryPatterns = []tagPattern{
	{tag: "energidryck", pattern: regexp.MustCompile(`energidryck|energy\s*drink|red\s*bull|monster|celsius|nocco\s*energi`), weight: 1.0},
	{tag: "kaffe", pattern: regexp.MustCompile(`kaffe|coffee|espresso|latte|cappuccino|bryggkaffe|cold\s*brew`), weight: 1.0},
	{tag: "alkoholfritt", pattern: regexp.MustCompile(`alkohol.?fr|non.?alcoholic|mocktail|0%|bubbel`), weight: 1.0},
	{tag: "snacks", pattern: regexp.MustCompile(`snacks|chips|nacho|popcorn|tilltugg|godis|jordnot`), weight: 0.9},
	{tag: "proteinbar", pattern: regexp.MustCompile(`protein.?bar|proteinbar|bars`), weight: 1.0},
	{tag: "frukt", pattern: regexp.MustCompile(`frukt|fruit|\bbar\b|berries|smoothie|jordgubb|banan|appel`), weight: 0.9},
	{tag: "vego", pattern: regexp.MustCompile(`vego|vegan|vegetarisk|vaxtbaserat`), weight: 1.0},
	{tag: "glutenfritt", pattern: regexp.MustCompile(`gluten.?fr|gluten.?free|celiaki`), weight: 1.0},
	{tag: "mejeri", pattern: regexp.MustCompile(`mejeri|yoghurt|\bost\b|cheese|dairy|mjolk|kvarg`), weight: 0.9},
	{tag: "godis", pattern: regexp.MustCompile(`godis|candy|sotsaker|sweets|choklad`), weight: 0.8},
	{tag: "sportdryck", pattern: regexp.MustCompile(`sportdryck|gatorade|elektrolyt|powerade|vitamin\s*well`), weight: 1.0},
	{tag: "te", pattern: regexp.MustCompile(`\bte\b|tea|chai|iste|ortte|matcha`), weight: 1.0},
	{tag: "vatten", pattern: regexp.MustCompile(`vatten|water|mineral|kolsyr|ramlosa|loka`), weight: 0.8},
	{tag: "choklad", pattern: regexp.MustCompile(`choklad|chocolate|cocoa|kakao|mork\s*choklad`), weight: 0.9},
}

var vibePatterns = []tagPattern{
	{tag: "warm", pattern: regexp.MustCompile(`warm|varm|mysig|cozy|ombonad`), weight: 1.0},
	{tag: "glam", pattern: regexp.MustCompile(`glam|glamoros|lyxig|elegant|snygg|chic`), weight: 1.0},
	{tag: "clean", pattern: regexp.MustCompile(`clean|\bren\b|minimalist|avskalad|simpel`), weight: 1.0},
	{tag: "focused", pattern: regexp.MustCompile(`fokus|focus|koncentration|skarp|alert`), weight: 1.0},
	{tag: "festlig", pattern: regexp.MustCompile(`fest|party|celebrate|fira|glad|happy`), weight: 1.0},
	{tag: "energisk", pattern: regexp.MustCompile(`energisk|energetic|active|aktiv|peppad`), weight: 1.0},
	{tag: "lugn", pattern: regexp.MustCompile(`lugn|calm|relax|chill|avslappnad|zen`), weight: 1.0},
	{tag: "trendig", pattern: regexp.MustCompile(`trendig|trendy|hipster|modern|\binne\b`), weight: 0.9},
	{tag: "klassisk", pattern: regexp.MustCompile(`klassisk|classic|traditional|traditionell|tidlos`), weight: 0.9},
	{tag: "kreativ", pattern: regexp.MustCompile(`kreativ|creative|artistisk|konstnarlig`), weight: 0.8},
	{tag: "sportig", pattern: regexp.MustCompile(`sportig|athletic|traning|workout|fitness`), weight: 0.9},
	{tag: "bohemisk", pattern: regexp.MustCompile(`bohemisk|boho|hippie|\bfri\b|frihet`), weight: 0.8},
	{tag: "professionell", pattern: regexp.MustCompile(`professionell|business|serios|formell`), weight: 0.8},
}

// budgetMentionRegex counts explicit budget vocabulary for the budget-tier
// confidence estimate.
var budgetMentionRegex = regexp.MustCompile(`budget|lyx|premium|billig|ekonom|pengar`)

// explicitPeopleRegex detects a digit-plus-unit people mention, which gives
// the people-count confidence its high fixed value.
var explicitPeopleRegex = regexp.MustCompile(`\d+\s*(?:personer|person|pers)`)

var anyDigitRegex = regexp.MustCompile(`\d+`)
