package api

import (
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/strength"
)

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

type batchRequest struct {
	Passwords []string `json:"passwords" binding:"required"`
}

// SecondOpinion is the zxcvbn estimate returned next to the engine result.
type SecondOpinion struct {
	Score            int     `json:"score"`
	CrackTime        float64 `json:"crackTime"`
	CrackTimeDisplay string  `json:"crackTimeDisplay"`
}

// AnalyzeResponse is the body of POST /v1/analyze.
type AnalyzeResponse struct {
	strength.Result
	CrackTimeDisplay string        `json:"crackTimeDisplay"`
	Suggestions      []string      `json:"suggestions"`
	Zxcvbn           SecondOpinion `json:"zxcvbn"`
}

// BatchItem is one evaluated password of a batch. The password is masked.
type BatchItem struct {
	Index    int             `json:"index"`
	Password string          `json:"password"`
	Result   strength.Result `json:"result"`
}

// BatchResponse is the body of POST /v1/analyze/batch.
type BatchResponse struct {
	Total int         `json:"total"`
	Items []BatchItem `json:"items"`
}

// GenerateResponse is the body of POST /v1/generate.
type GenerateResponse struct {
	Passwords []string `json:"passwords"`
	Charset   int      `json:"charsetSize"`
	Entropy   float64  `json:"entropy"`
}

// Dashboard is a snapshot of the evaluations served by this process.
type Dashboard struct {
	Evaluations  uint64            `json:"evaluations"`
	AverageScore float64           `json:"averageScore"`
	Categories   map[string]uint64 `json:"categories"`
	Issues       map[string]uint64 `json:"issues"`
	CacheHits    uint64            `json:"cacheHits"`
	Uptime       string            `json:"uptime"`
}

const (
	maskPrefix    = 4
	maskMinLength = 2 * maskPrefix
)

// MaskPassword keeps the first four characters of a password. Passwords shorter than eight
// characters are masked entirely.
func MaskPassword(password string) string {
	runes := []rune(password)
	if len(runes) < maskMinLength {
		return "***"
	}
	return string(runes[:maskPrefix]) + "***"
}
