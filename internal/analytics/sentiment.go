package analytics

import (
	"errors"
	"math"
	"strings"
)

// ErrEmptyContent 在文本为空或仅含空白时返回
var ErrEmptyContent = errors.New("content is empty")

// Emotion 是封闭的情绪词表标签
type Emotion string

// 情绪类别，declaration 顺序即并列时的优先级（靠前者胜出）
const (
	EmotionHappy    Emotion = "Happy"
	EmotionSad      Emotion = "Sad"
	EmotionAngry    Emotion = "Angry"
	EmotionAnxious  Emotion = "Anxious"
	EmotionCalm     Emotion = "Calm"
	EmotionExcited  Emotion = "Excited"
	EmotionTired    Emotion = "Tired"
	EmotionConfused Emotion = "Confused"
	EmotionNeutral  Emotion = "Neutral"
)

// Score 是文本评分结果：情感分值、情绪标签与危机信号
type Score struct {
	Sentiment float64
	Emotion   Emotion
	RiskFlag  bool
}

type weightedKeyword struct {
	phrase string
	weight int
}

type emotionEntry struct {
	emotion  Emotion
	keywords []weightedKeyword
}

// 情绪词表按优先级排列；权重 2 表示指向性明确的强信号词
var emotionTable = []emotionEntry{
	{EmotionHappy, []weightedKeyword{
		{"happy", 1}, {"joy", 1}, {"excited", 1}, {"great", 1}, {"wonderful", 1},
		{"amazing", 1}, {"love", 1}, {"grateful", 2}, {"blessed", 1},
	}},
	{EmotionSad, []weightedKeyword{
		{"sad", 1}, {"depressed", 2}, {"down", 1}, {"unhappy", 1}, {"miserable", 1},
		{"hopeless", 2}, {"lonely", 1}, {"empty", 1},
	}},
	{EmotionAngry, []weightedKeyword{
		{"angry", 1}, {"mad", 1}, {"frustrated", 1}, {"annoyed", 1}, {"irritated", 1},
		{"furious", 2}, {"hate", 1},
	}},
	{EmotionAnxious, []weightedKeyword{
		{"worried", 1}, {"nervous", 1}, {"stressed", 1}, {"overwhelmed", 1},
		{"panic", 2}, {"fear", 1}, {"anxious", 1},
	}},
	{EmotionCalm, []weightedKeyword{
		{"calm", 1}, {"relaxed", 1}, {"peaceful", 1}, {"serene", 1},
		{"content", 1}, {"at ease", 1},
	}},
	{EmotionExcited, []weightedKeyword{
		{"excited", 1}, {"thrilled", 2}, {"eager", 1}, {"enthusiastic", 1}, {"pumped", 1},
	}},
	{EmotionTired, []weightedKeyword{
		{"tired", 1}, {"exhausted", 2}, {"drained", 1}, {"fatigued", 1}, {"sleepy", 1},
	}},
	{EmotionConfused, []weightedKeyword{
		{"confused", 1}, {"lost", 1}, {"uncertain", 1}, {"unsure", 1}, {"puzzled", 1},
	}},
}

// 情绪命中的最低权重，低于该值回落为 Neutral
const minEmotionWeight = 1

var positiveWords = []string{
	"happy", "joy", "great", "wonderful", "amazing", "excited", "good", "better",
	"best", "love", "grateful", "blessed", "awesome", "fantastic",
	"perfect", "beautiful", "excellent", "outstanding", "superb",
}

var negativeWords = []string{
	"sad", "depressed", "bad", "terrible", "awful", "hate", "worst", "angry",
	"anxious", "stressed", "hopeless", "miserable", "frustrated", "disappointed",
	"devastated", "heartbroken", "worthless", "guilty", "ashamed",
}

// 危机指示短语；匹配以词为边界，避免无关单词的子串误报
var riskPhrases = []string{
	"suicide", "self-harm", "kill myself", "want to die",
	"end my life", "hurt myself", "no reason to live",
	"better off dead", "self harm", "cut myself", "overdose",
	"hang myself", "jump off", "slit my wrists",
}

// Analyze 对日记文本做词表评分，返回情感分值（[-1,1]）、情绪标签与危机信号。
// 纯函数：相同输入恒得相同输出，重打分可复现。
func Analyze(content string) (Score, error) {
	if strings.TrimSpace(content) == "" {
		return Score{}, ErrEmptyContent
	}

	tokens := tokenize(content)

	posHits := 0
	for _, word := range positiveWords {
		if containsPhrase(tokens, word) {
			posHits++
		}
	}

	negHits := 0
	for _, word := range negativeWords {
		if containsPhrase(tokens, word) {
			negHits++
		}
	}

	score := 0.0
	if total := posHits + negHits; total > 0 {
		score = float64(posHits-negHits) / float64(total)
		score = clamp(score, -1.0, 1.0)
	}

	return Score{
		Sentiment: round3(score),
		Emotion:   detectEmotion(tokens),
		RiskFlag:  containsRisk(tokens),
	}, nil
}

// SentimentLabel 将分值映射为人读标签。
func SentimentLabel(score float64) string {
	switch {
	case score >= 0.5:
		return "Very Positive"
	case score >= 0.1:
		return "Positive"
	case score > -0.1:
		return "Neutral"
	case score > -0.5:
		return "Negative"
	default:
		return "Very Negative"
	}
}

func detectEmotion(tokens []string) Emotion {
	best := EmotionNeutral
	bestWeight := 0

	for _, entry := range emotionTable {
		weight := 0
		for _, kw := range entry.keywords {
			if containsPhrase(tokens, kw.phrase) {
				weight += kw.weight
			}
		}
		// 严格大于：并列时保留先声明的类别
		if weight > bestWeight {
			best = entry.emotion
			bestWeight = weight
		}
	}

	if bestWeight < minEmotionWeight {
		return EmotionNeutral
	}
	return best
}

func containsRisk(tokens []string) bool {
	for _, phrase := range riskPhrases {
		if containsPhrase(tokens, phrase) {
			return true
		}
	}
	return false
}

// tokenize 小写化并按非字母数字切词；撇号保留在词内（don't 等）
func tokenize(text string) []string {
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= '0' && r <= '9' {
			return false
		}
		return r != '\''
	})
}

// containsPhrase 判断短语是否以完整词序列出现；连字符短语与空格短语等价
func containsPhrase(tokens []string, phrase string) bool {
	parts := tokenize(phrase)
	if len(parts) == 0 {
		return false
	}

	for i := 0; i+len(parts) <= len(tokens); i++ {
		matched := true
		for j, part := range parts {
			if tokens[i+j] != part {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}

func round3(value float64) float64 {
	return math.Round(value*1000) / 1000
}
