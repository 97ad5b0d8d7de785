package dialogue

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"tabletalk/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptRendersDirectoryAndDate(t *testing.T) {
	today := time.Date(2026, 9, 5, 14, 0, 0, 0, time.UTC)

	prompt := BuildPrompt(testCatalog(), nil, nil, "any Italian places?", today)

	assert.Contains(t, prompt, "- Bella Italia (Cuisine: Italian, Rating: 4.8★, Price: $$$)")
	assert.Contains(t, prompt, "Today's date is 2026-09-05.")
	assert.Contains(t, prompt, `CURRENT USER MESSAGE: "any Italian places?"`)
	assert.NotContains(t, prompt, "USER CONTEXT")
}

func TestBuildPromptIncludesPinnedVenueContext(t *testing.T) {
	pinned := &models.Restaurant{ID: "r3", Name: "Sushi Zen"}

	prompt := BuildPrompt(testCatalog(), pinned, nil, "book for two", time.Now())
	assert.Contains(t, prompt, `USER CONTEXT: The user is currently looking at "Sushi Zen".`)
}

func TestBuildPromptRendersHistoryRoles(t *testing.T) {
	history := []models.ConversationTurn{
		{Sender: models.SenderUser, Text: "Got anything spicy?"},
		{Sender: models.SenderAgent, Text: "Spice Route is excellent."},
	}

	prompt := BuildPrompt(testCatalog(), nil, history, "book it", time.Now())
	assert.Contains(t, prompt, "User: Got anything spicy?\nAgent: Spice Route is excellent.\n")
}

func TestBuildPromptCapsDirectorySize(t *testing.T) {
	catalog := make([]models.Restaurant, maxDirectoryEntries+10)
	for i := range catalog {
		catalog[i] = models.Restaurant{Name: fmt.Sprintf("Venue %03d", i), Cuisine: "Any"}
	}

	prompt := BuildPrompt(catalog, nil, nil, "hi", time.Now())
	assert.Equal(t, maxDirectoryEntries, strings.Count(prompt, "- Venue "))
	assert.NotContains(t, prompt, fmt.Sprintf("Venue %03d", maxDirectoryEntries))
}
