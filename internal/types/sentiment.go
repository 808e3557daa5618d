package types

// SentimentLabel classifies an aggregate sentiment score.
type SentimentLabel string

const (
	SentimentLabelPositive SentimentLabel = "positive"
	SentimentLabelNeutral  SentimentLabel = "neutral"
	SentimentLabelNegative SentimentLabel = "negative"
)

// SentimentScore is the externally supplied per-symbol sentiment snapshot.
// Score is a compound value in [-1, 1]; 0 is neutral.
type SentimentScore struct {
	Score      float64        `json:"score" yaml:"score"`
	Label      SentimentLabel `json:"label" yaml:"label"`
	Confidence float64        `json:"confidence" yaml:"confidence"`
	NewsCount  int            `json:"news_count" yaml:"news_count"`
}
