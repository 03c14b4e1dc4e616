package monitoring

// tokensPerPricingUnit is the token count that pricing figures refer to.
// models.dev publishes USD per 1M tokens.
const tokensPerPricingUnit = 1_000_000

// CalculateCost returns the USD cost of a call given per-1M-token prices.
func CalculateCost(promptTokens, completionTokens int, inputPrice, outputPrice float64) float64 {
	input := float64(promptTokens) * inputPrice / tokensPerPricingUnit
	output := float64(completionTokens) * outputPrice / tokensPerPricingUnit
	return input + output
}
