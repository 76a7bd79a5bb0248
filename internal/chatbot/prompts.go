package chatbot

import (
	"fmt"

	"github.com/ecohealth/sentinel/internal/llm"
)

// promptSet builds the primary and secondary provider prompts for a domain.
type promptSet struct {
	primary   func(message, realData string) llm.Request
	secondary func(message, realData string) llm.Request
}

func withRealData(message, realData string) string {
	if realData == "" {
		return message
	}
	return fmt.Sprintf("%s\n\nReal Data:\n%s", message, realData)
}

var agriculturePrompts = promptSet{
	primary: func(message, realData string) llm.Request {
		p := "You are an agriculture assistant helping farmers with crops, soil, irrigation, pests and market prices.\nUse the provided real data when relevant."
		if realData != "" {
			p += "\n\nReal Data:\n" + realData
		}
		return llm.Request{User: p + "\n\nUser: " + message}
	},
	secondary: func(message, realData string) llm.Request {
		return llm.Request{
			System: "You are an agriculture assistant. Use real weather and forecast data if provided.",
			User:   withRealData(message, realData),
		}
	},
}

var environmentPrompts = promptSet{
	primary: func(message, realData string) llm.Request {
		p := "You are an environmental assistant.\nUse the provided real data when relevant."
		if realData != "" {
			p += "\n\nReal Data:\n" + realData
		}
		return llm.Request{User: p + "\n\nUser: " + message}
	},
	secondary: func(message, realData string) llm.Request {
		return llm.Request{
			System: "You are an environmental assistant. Use real climate, pollution, and weather data if provided.",
			User:   withRealData(message, realData),
		}
	},
}

var healthcarePrompts = promptSet{
	primary: func(message, _ string) llm.Request {
		return llm.Request{User: "You are a responsible healthcare assistant. Provide clear, safe responses.\nUser: " + message}
	},
	secondary: func(message, _ string) llm.Request {
		return llm.Request{
			System: "You are a responsible healthcare assistant. Always prioritize safety and clarity.",
			User:   message,
		}
	},
}
