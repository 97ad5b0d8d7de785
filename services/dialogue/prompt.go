package dialogue

import (
	"fmt"
	"strings"
	"time"

	"tabletalk/models"
)

// maxDirectoryEntries caps the venue directory rendered into the prompt so a
// large catalog cannot blow up the oracle's context.
const maxDirectoryEntries = 50

// BuildPrompt assembles the NLU prompt from the catalog (or a pinned venue),
// the conversation so far, and the current user message. Pure function: no
// side effects, no I/O.
func BuildPrompt(catalog []models.Restaurant, pinned *models.Restaurant, history []models.ConversationTurn, message string, today time.Time) string {
	var directory strings.Builder
	for i, r := range catalog {
		if i >= maxDirectoryEntries {
			break
		}
		fmt.Fprintf(&directory, "- %s (Cuisine: %s, Rating: %.1f★, Price: %s)\n", r.Name, r.Cuisine, r.Rating, r.PriceRange)
	}

	var context strings.Builder
	context.WriteString("You are a restaurant concierge.\n")
	context.WriteString("Here is the list of restaurants available in your system:\n")
	context.WriteString(directory.String())
	if pinned != nil {
		fmt.Fprintf(&context, "\nUSER CONTEXT: The user is currently looking at %q. Assume this is the restaurant they want unless they say otherwise.\n", pinned.Name)
	}

	var transcript strings.Builder
	for _, turn := range history {
		role := "Agent"
		if turn.Sender == models.SenderUser {
			role = "User"
		}
		fmt.Fprintf(&transcript, "%s: %s\n", role, turn.Text)
	}

	return fmt.Sprintf(`%s
Today's date is %s.

HISTORY:
%s
CURRENT USER MESSAGE: %q

YOUR GOAL: Help the user discover restaurants or book a table.

RULES FOR DISCOVERY:
1. If the user asks for "Italian food" or "best rated places", use the list of restaurants provided above to make recommendations.
2. Always suggest at least 2-3 options if the query is general.

RULES FOR BOOKING (Strict):
To make a booking, you MUST explicitly collect ALL of the following details. Do not assume them.
1. **Restaurant Name**: (Which one?)
2. **Customer Name**: (Ask: "What is the name for the reservation?")
3. **Date & Time**: (When?)
4. **Number of Guests**: (How many people?)
5. **Seating Preference**: (Ask: "Would you prefer Indoor or Outdoor seating?")

LOGIC:
- If any of the 5 items above are missing, ASK for them.
- If the user asks "Do you have Italian?", say "Yes, we have Bella Italia..." and ask if they want to book there.
- Only set "intent" to "confirmed" when ALL 5 details are collected AND the user says "Yes/Confirm".

Return JSON ONLY:
{
  "reply": "Your response.",
  "bookingDetails": {
    "restaurantName": "extracted or null",
    "name": "extracted or null",
    "date": "extracted (YYYY-MM-DD) or null",
    "time": "extracted or null",
    "guests": "extracted or null",
    "seating": "extracted or null"
  },
  "intent": "discovery" | "venue_selection" | "booking_request" | "confirmation_request" | "confirmed"
}
`, context.String(), today.Format("2006-01-02"), transcript.String(), message)
}
