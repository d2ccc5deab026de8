package core

// Sentiment how a proposal outcome should be presented
type Sentiment int

const (
	SentimentNeutral Sentiment = iota
	SentimentGood
	SentimentBad
)

func (s Sentiment) String() string {
	switch s {
	case SentimentGood:
		return "good"
	case SentimentBad:
		return "bad"
	default:
		return "neutral"
	}
}

// SentimentOf pending proposals are neutral
func SentimentOf(executed, successful bool) Sentiment {
	switch {
	case !executed:
		return SentimentNeutral
	case successful:
		return SentimentGood
	default:
		return SentimentBad
	}
}
