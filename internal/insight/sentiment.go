package insight

import (
	"fmt"

	"CoinSentinel/internal/model"
	"CoinSentinel/internal/synth"
)

const samplePosts = 3

var (
	platforms  = []string{"Twitter", "Reddit"}
	sentiments = []string{"positive", "neutral", "negative"}
)

// SimulateSentiment draws a random sentiment breakdown for coinID:
// positive 20~59%, negative 10~39%, neutral the remainder.
func SimulateSentiment(coinID string, r synth.Rand) model.Sentiment {
	positive := 20 + synth.Intn(r, 40)
	negative := 10 + synth.Intn(r, 30)

	posts := make([]model.SocialPost, samplePosts)
	for i := range posts {
		platform := platforms[synth.Intn(r, len(platforms))]
		mood := sentiments[synth.Intn(r, len(sentiments))]
		posts[i] = model.SocialPost{
			Platform:  platform,
			User:      fmt.Sprintf("user%d", synth.Intn(r, 1000)),
			Content:   postContent(coinID, mood),
			Sentiment: mood,
			Time:      fmt.Sprintf("%dh ago", synth.Intn(r, 12)+1),
		}
	}

	return model.Sentiment{
		CoinID:   coinID,
		Score:    positive - negative,
		Positive: positive,
		Neutral:  100 - positive - negative,
		Negative: negative,
		Posts:    posts,
	}
}

func postContent(coinID, mood string) string {
	switch mood {
	case "positive":
		return fmt.Sprintf("%s is looking bullish! Great time to buy in before the next rally! #crypto #bullish", coinID)
	case "negative":
		return fmt.Sprintf("Not feeling confident about %s right now. The market looks uncertain. #crypto #bearish", coinID)
	default:
		return fmt.Sprintf("Watching %s closely. Waiting for more signals before making a move. #crypto #DYOR", coinID)
	}
}
