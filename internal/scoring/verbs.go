package scoring

// ActionVerbs is the fixed vocabulary of strong resume verbs, in reporting order.
var ActionVerbs = []string{
	"achieved", "analyzed", "built", "collaborated", "created",
	"designed", "developed", "enhanced", "engineered", "executed",
	"facilitated", "generated", "implemented", "improved", "integrated",
	"launched", "led", "managed", "optimized", "orchestrated",
	"produced", "reduced", "researched", "resolved", "spearheaded",
	"streamlined", "trained", "transformed", "utilized", "won",
	"automated", "deployed", "documented", "established", "formulated",
	"initiated", "maintained", "mentored", "negotiated", "performed",
	"planned", "presented", "programmed", "published", "reviewed",
	"solved", "supported", "tested", "validated",
}
