package chatbot

import (
	"context"
	"testing"
	"time"

	"github.com/ecohealth/sentinel/internal/llm"
	"github.com/ecohealth/sentinel/internal/sources"
	"github.com/stretchr/testify/require"
)

func TestAgricultureBot_PromptCarriesContext(t *testing.T) {
	llmFake := &fakeCompleter{reply: "Irrigate early morning."}
	catalog := fakeCatalog(
		&fakeFetcher{name: "w", line: "Weather in Delhi: haze, Temp: 31.2°C, Humidity: 48%"},
		&fakeFetcher{name: "f", err: errDown},
		&fakeFetcher{name: "t", line: "Tomorrow.io: Temp 29.5°C"},
	)
	bot := NewAgricultureBot(llmFake, catalog, time.Second)

	got := bot.Reply(context.Background(), Message{Text: "When should I water wheat?"})
	require.Equal(t, "Irrigate early morning.", got)
	require.Equal(t, Agriculture, bot.Domain())
	require.Contains(t, llmFake.primary.User, "Real Data:\nWeather in Delhi: haze, Temp: 31.2°C, Humidity: 48%\n\nTomorrow.io: Temp 29.5°C")
	require.Empty(t, llmFake.primary.System)
	require.Contains(t, llmFake.primary.User, "User: When should I water wheat?")
	require.Contains(t, llmFake.secondary.System, "agriculture assistant")
	require.Equal(t, "When should I water wheat?\n\nReal Data:\nWeather in Delhi: haze, Temp: 31.2°C, Humidity: 48%\n\nTomorrow.io: Temp 29.5°C", llmFake.secondary.User)
}

func TestEnvironmentBot_EmptyContextOmitted(t *testing.T) {
	llmFake := &fakeCompleter{reply: "Plant trees."}
	bot := NewEnvironmentBot(llmFake, &sources.Catalog{}, time.Second)

	require.Equal(t, "Plant trees.", bot.Reply(context.Background(), Message{Text: "How to cut emissions?"}))
	require.Equal(t, "You are an environmental assistant.\nUse the provided real data when relevant.\n\nUser: How to cut emissions?", llmFake.primary.User)
	require.Equal(t, "How to cut emissions?", llmFake.secondary.User)
	require.Equal(t, "You are an environmental assistant. Use real climate, pollution, and weather data if provided.", llmFake.secondary.System)
}

func TestAgricultureBot_AllSourcesFail(t *testing.T) {
	llmFake := &fakeCompleter{reply: "Check soil moisture first."}
	catalog := fakeCatalog(
		&fakeFetcher{name: "w", err: errDown},
		&fakeFetcher{name: "f", err: errDown},
		&fakeFetcher{name: "t", err: errDown},
	)
	bot := NewAgricultureBot(llmFake, catalog, time.Second)

	require.Equal(t, "Check soil moisture first.", bot.Reply(context.Background(), Message{Text: "Should I irrigate today?"}))
	require.Equal(t, 1, llmFake.calls)
	require.NotContains(t, llmFake.primary.User, "Real Data")
	require.Contains(t, llmFake.primary.User, "User: Should I irrigate today?")
	require.Equal(t, "Should I irrigate today?", llmFake.secondary.User)
}

func TestHealthcareBot_Prompts(t *testing.T) {
	llmFake := &fakeCompleter{reply: "Rest and hydrate."}
	bot := NewHealthcareBot(llmFake)

	require.Equal(t, "Rest and hydrate.", bot.Reply(context.Background(), Message{Text: "I have a mild fever"}))
	require.Equal(t, "You are a responsible healthcare assistant. Provide clear, safe responses.\nUser: I have a mild fever", llmFake.primary.User)
	require.Equal(t, "You are a responsible healthcare assistant. Always prioritize safety and clarity.", llmFake.secondary.System)
	require.Equal(t, "I have a mild fever", llmFake.secondary.User)
}

func TestBots_ApologizeWhenProvidersFail(t *testing.T) {
	failing := &fakeCompleter{err: llm.ErrNoReply}
	cases := map[Adapter]string{
		NewAgricultureBot(failing, &sources.Catalog{}, time.Second): "Sorry, I couldn't fetch agriculture advice at this time.",
		NewEnvironmentBot(failing, &sources.Catalog{}, time.Second): "Sorry, I couldn't fetch environmental advice at this time.",
		NewHealthcareBot(failing):                           "Sorry, I couldn't fetch healthcare advice at this time.",
	}
	for bot, apology := range cases {
		require.Equal(t, apology, bot.Reply(context.Background(), Message{Text: "hello"}), bot.Domain())
	}
}

func TestBot_WithRealClientsFallsBack(t *testing.T) {
	clients := &llm.Clients{
		Primary:   stubProvider{name: "gemini", reply: "  "},
		Secondary: stubProvider{name: "openai", reply: "Secondary says hi"},
	}
	bot := NewHealthcareBot(clients)
	require.Equal(t, "Secondary says hi", bot.Reply(context.Background(), Message{Text: "hi"}))
}

type stubProvider struct {
	name  string
	reply string
}

func (s stubProvider) Name() string { return s.name }
func (s stubProvider) Generate(ctx context.Context, req llm.Request) (string, error) {
	return s.reply, nil
}
