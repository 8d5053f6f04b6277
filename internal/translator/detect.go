package translator

import "regexp"

// FrenchThreshold is the indicator count a text must exceed to be French.
const FrenchThreshold = 10

var frenchIndicators = regexp.MustCompile(`(?i)\b(le|la|les|de|du|des|et|est|une|un|dans|pour|avec|sur|par|ce|cette|qui|que|mais|ou|où|donc|car|si|comme|tout|tous|toute|toutes|très|plus|moins|bien|encore|aussi|déjà|jamais|toujours|peut|peuvent|faire|avoir|être|aller|venir|voir|savoir|dire|prendre|donner|partir|sortir|entrer|monter|descendre)\b`)

// CountFrenchIndicators counts common French function words in text.
func CountFrenchIndicators(text string) int {
	return len(frenchIndicators.FindAllStringIndex(text, -1))
}

// Detect classifies text as French or English by keyword counting. Anything
// that is not French is treated as English.
func Detect(text string) Language {
	if CountFrenchIndicators(text) > FrenchThreshold {
		return French
	}
	return English
}
