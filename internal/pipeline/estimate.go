package pipeline

const (
	// Rough average per model, prompt plus completion combined.
	tokensPerModel = 1000
	// Example gpt-4o-mini blended price per 1K tokens, USD.
	pricePerThousandTokens = 0.0009
)

// Estimate is a crude linear projection, not a real token count; any output
// derived from it must say so.
type Estimate struct {
	Models int
	Tokens int
	Cost   float64
}

// EstimateBudget projects token usage and cost for generating the given
// number of models. Pure, no I/O. The second return is false when there is
// nothing to estimate.
func EstimateBudget(models int) (Estimate, bool) {
	if models == 0 {
		return Estimate{}, false
	}
	tokens := models * tokensPerModel
	return Estimate{
		Models: models,
		Tokens: tokens,
		Cost:   float64(tokens) / 1000 * pricePerThousandTokens,
	}, true
}
