package analytics

import (
	"errors"
	"strings"
	"testing"
)

func TestAnalyzeRejectsEmptyContent(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t "} {
		if _, err := Analyze(content); !errors.Is(err, ErrEmptyContent) {
			t.Fatalf("expected ErrEmptyContent for %q, got %v", content, err)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	content := "Feeling grateful and happy today, though a bit tired after the gym."

	first, err := Analyze(content)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := Analyze(content)
		if err != nil {
			t.Fatalf("Analyze returned error: %v", err)
		}
		if again != first {
			t.Fatalf("expected identical result, got %+v then %+v", first, again)
		}
	}
}

func TestAnalyzeScoreBounds(t *testing.T) {
	contents := []string{
		"happy happy wonderful amazing best day",
		"terrible awful worst miserable hopeless",
		"went to the store and bought milk",
		"good day but also a bad evening",
	}

	for _, content := range contents {
		result, err := Analyze(content)
		if err != nil {
			t.Fatalf("Analyze returned error: %v", err)
		}
		if result.Sentiment < -1.0 || result.Sentiment > 1.0 {
			t.Fatalf("score %v out of range for %q", result.Sentiment, content)
		}
	}
}

func TestAnalyzeScoreValues(t *testing.T) {
	result, err := Analyze("I am happy and grateful")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Sentiment != 1.0 {
		t.Fatalf("expected score 1.0, got %v", result.Sentiment)
	}

	result, err = Analyze("one good thing, one bad thing")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Sentiment != 0.0 {
		t.Fatalf("expected balanced score 0.0, got %v", result.Sentiment)
	}

	// 无词表命中时保持中性
	result, err = Analyze("walked to the station and read a book")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Sentiment != 0.0 || result.Emotion != EmotionNeutral {
		t.Fatalf("expected neutral result, got %+v", result)
	}
}

func TestAnalyzeEmotionPriorityOnTie(t *testing.T) {
	// sad 与 mad 各命中一次，按类别声明顺序 Sad 优先
	result, err := Analyze("feeling sad and mad about it")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Emotion != EmotionSad {
		t.Fatalf("expected Sad on tie, got %s", result.Emotion)
	}
}

func TestAnalyzeEmotionPhraseMatch(t *testing.T) {
	result, err := Analyze("finally feeling at ease again")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Emotion != EmotionCalm {
		t.Fatalf("expected Calm, got %s", result.Emotion)
	}
}

func TestAnalyzeEmotionVocabulary(t *testing.T) {
	known := map[Emotion]bool{
		EmotionHappy: true, EmotionSad: true, EmotionAngry: true,
		EmotionAnxious: true, EmotionCalm: true, EmotionExcited: true,
		EmotionTired: true, EmotionConfused: true, EmotionNeutral: true,
	}

	contents := []string{
		"puzzled and uncertain about everything",
		"thrilled and pumped for tomorrow",
		"completely drained and exhausted",
		"nothing notable happened",
	}
	for _, content := range contents {
		result, err := Analyze(content)
		if err != nil {
			t.Fatalf("Analyze returned error: %v", err)
		}
		if !known[result.Emotion] {
			t.Fatalf("emotion %q outside fixed vocabulary", result.Emotion)
		}
	}
}

func TestRiskFlagWholePhrase(t *testing.T) {
	flagged := []string{
		"I keep thinking about suicide",
		"sometimes I want to die",
		"I might hurt myself tonight",
		"struggling with self-harm again",
	}
	for _, content := range flagged {
		result, err := Analyze(content)
		if err != nil {
			t.Fatalf("Analyze returned error: %v", err)
		}
		if !result.RiskFlag {
			t.Fatalf("expected risk flag for %q", content)
		}
	}

	clean := []string{
		"I nearly overdosed on coffee jokes",      // overdose 只作为其他词的一部分
		"I want to diet and exercise more",        // want to die 未以完整词序列出现
		"watched a documentary about an assassin", // 子串不触发
	}
	for _, content := range clean {
		result, err := Analyze(content)
		if err != nil {
			t.Fatalf("Analyze returned error: %v", err)
		}
		if result.RiskFlag {
			t.Fatalf("unexpected risk flag for %q", content)
		}
	}
}

func TestRiskFlagDoesNotAffectScore(t *testing.T) {
	base, err := Analyze("today was a good day")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	withRisk, err := Analyze("today was a good day but I keep thinking about suicide")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if !withRisk.RiskFlag {
		t.Fatal("expected risk flag")
	}
	if withRisk.Sentiment != base.Sentiment {
		t.Fatalf("risk phrase changed score: %v vs %v", base.Sentiment, withRisk.Sentiment)
	}
}

func TestRiskFlagCaseInsensitive(t *testing.T) {
	result, err := Analyze("I WANT TO DIE")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if !result.RiskFlag {
		t.Fatal("expected risk flag regardless of case")
	}
}

func TestSentimentLabelBuckets(t *testing.T) {
	cases := []struct {
		score float64
		label string
	}{
		{0.8, "Very Positive"},
		{0.5, "Very Positive"},
		{0.2, "Positive"},
		{0.0, "Neutral"},
		{-0.2, "Negative"},
		{-0.7, "Very Negative"},
	}

	for _, tc := range cases {
		if got := SentimentLabel(tc.score); got != tc.label {
			t.Fatalf("SentimentLabel(%v) = %q, expected %q", tc.score, got, tc.label)
		}
	}
}

func TestTokenizeKeepsApostrophes(t *testing.T) {
	tokens := tokenize("Don't worry, be HAPPY!")
	joined := strings.Join(tokens, " ")
	if joined != "don't worry be happy" {
		t.Fatalf("unexpected tokens: %q", joined)
	}
}
