package chatbot

import "strings"

var intentKeywords = map[Domain][]struct {
	intent   string
	keywords []string
}{
	Agriculture: {
		{"weather", []string{"weather", "forecast", "rain"}},
		{"disease", []string{"disease", "pest", "blight", "fungus"}},
		{"fertilizer", []string{"fertilizer", "nutrient", "npk"}},
		{"irrigation", []string{"irrigation", "water"}},
		{"market", []string{"market", "price", "sell"}},
	},
	Healthcare: {
		{"appointment", []string{"appointment", "doctor", "schedule"}},
		{"symptom", []string{"symptom", "fever", "cough", "pain", "headache"}},
		{"medication", []string{"medicine", "medication", "dose", "tablet"}},
		{"emergency", []string{"emergency", "ambulance", "chest pain"}},
	},
	Environment: {
		{"air_quality", []string{"air", "aqi", "pollution", "pm2.5", "smog"}},
		{"carbon", []string{"carbon", "emission", "footprint"}},
		{"waste", []string{"waste", "recycl", "plastic"}},
		{"disaster", []string{"flood", "earthquake", "wildfire", "cyclone", "disaster"}},
		{"weather", []string{"weather", "climate", "temperature"}},
	},
}

// DetectIntent labels a message with the first matching keyword group of its
// domain, or "general".
func DetectIntent(d Domain, text string) string {
	lower := strings.ToLower(text)
	for _, group := range intentKeywords[d] {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.intent
			}
		}
	}
	return "general"
}
