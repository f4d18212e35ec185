package summarize

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	comparisonPromptFmt = `A user named %s has rated %s with an average rating of %.1f.
The overall average rating for this wine is %.1f.
Summarize how this user's rating compares to the general trend.`

	readPromptFmt = `A user named %[1]s rated %[2]s with an average score of %.1[3]f out of 10.
The overall average rating for this wine from all users is %.1[4]f out of 10.

Here is the full distribution of ratings for %[2]s: %[5]s.
The user you're talking to rated it %.1[3]f.

Based on how they rated this wine in comparison to everyone else, write a funny "read" of this person.
Don't spill over into hate speech or harassment.

Don't refer to the quality of the wine in general. Only use the distribution of ratings you received.
Use funny queer slang and chronically online Gen Z references.
Keep it to one or two paragraphs. Don't use overly flowery language or make it too dense.`
)

// ComparisonPrompt asks how one user's mean rating of a wine compares to everyone's.
func ComparisonPrompt(user, wine string, userMean, overallMean float64) string {
	return fmt.Sprintf(comparisonPromptFmt, user, wine, userMean, overallMean)
}

// ReadPrompt asks for a playful "read" of the user based on the rating distribution.
func ReadPrompt(user, wine string, userMean, overallMean float64, values []int) string {
	return fmt.Sprintf(readPromptFmt, user, wine, userMean, overallMean, joinRatings(values))
}

func joinRatings(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ", ")
}
