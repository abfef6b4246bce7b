package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dgraph-io/ristretto"
	"github.com/gin-gonic/gin"
	"github.com/nbutton23/zxcvbn-go"
	"github.com/rs/zerolog/log"

	"github.com/bhataakib02/cybersecurityCasestudy/internal/config"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/compliance"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/generator"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/strength"
)

// zxcvbn matching grows quickly with the input, it only sees this many runes.
const zxcvbnLimit = 128

type strengthApi struct {
	engine    *strength.Engine
	checker   *compliance.Checker
	generator *generator.Generator
	cache     *ristretto.Cache
	stats     *Stats
	metrics   *Metrics
	maxBatch  int
}

func cacheKey(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Zxcvbn estimates password with zxcvbn. Only the first runes of long inputs are matched.
func Zxcvbn(password string) SecondOpinion {
	if runes := []rune(password); len(runes) > zxcvbnLimit {
		password = string(runes[:zxcvbnLimit])
	}
	entropy := zxcvbn.PasswordStrength(password, nil)
	return SecondOpinion{
		Score:            entropy.Score,
		CrackTime:        entropy.CrackTime,
		CrackTimeDisplay: entropy.CrackTimeDisplay,
	}
}

func (a *strengthApi) record(r strength.Result) {
	a.stats.Record(r)
	a.metrics.evaluated(r)
}

func (a *strengthApi) analyze(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := cacheKey(req.Password)
	if a.cache != nil {
		if cached, ok := a.cache.Get(key); ok {
			resp := cached.(AnalyzeResponse)
			a.stats.CacheHit()
			a.record(resp.Result)
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	result := a.engine.Evaluate(req.Password)
	suggestions := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		suggestions = append(suggestions, issue.Suggestion())
	}

	resp := AnalyzeResponse{
		Result:           result,
		CrackTimeDisplay: strength.FormatCrackTime(result.CrackTimeSeconds),
		Suggestions:      suggestions,
		Zxcvbn:           Zxcvbn(req.Password),
	}
	a.record(result)

	if a.cache != nil {
		a.cache.Set(key, resp, 1)
	}

	c.JSON(http.StatusOK, resp)
}

func (a *strengthApi) analyzeBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Passwords) > a.maxBatch {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("batch has %d passwords, the maximum is %d", len(req.Passwords), a.maxBatch),
		})
		return
	}

	results := a.engine.EvaluateBatch(req.Passwords)
	resp := BatchResponse{Total: len(results), Items: make([]BatchItem, len(results))}
	for i, result := range results {
		a.record(result)
		resp.Items[i] = BatchItem{Index: i, Password: MaskPassword(req.Passwords[i]), Result: result}
	}

	log.Debug().Msgf("evaluated batch of %d passwords", resp.Total)
	c.JSON(http.StatusOK, resp)
}

func (a *strengthApi) checkCompliance(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a.checker.Check(req.Password))
}

func (a *strengthApi) generate(c *gin.Context) {
	settings := generator.DefaultSettings()
	if err := c.ShouldBindJSON(&settings); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.Validate(settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passwords, err := a.generator.Generate(settings)
	if err != nil {
		if errors.Is(err, generator.ErrEmptyCharset) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Passwords: passwords,
		Charset:   len(settings.Charset()),
		Entropy:   settings.Entropy(),
	})
}

func (a *strengthApi) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, a.stats.Snapshot())
}

// RegisterApi adds the strength routes to group. The returned function releases the
// analyze cache, call it once the routes stop serving.
func RegisterApi(group *gin.RouterGroup, settings Settings) (func(), error) {
	settings = settings.withDefaults()
	a := &strengthApi{
		engine:    settings.Engine,
		checker:   compliance.NewChecker(settings.Engine),
		generator: generator.New(),
		stats:     settings.Stats,
		metrics:   settings.Metrics,
		maxBatch:  settings.MaxBatch,
	}

	if settings.CacheSize > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: 10 * settings.CacheSize,
			MaxCost:     settings.CacheSize,
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating analyze cache: %w", err)
		}
		a.cache = cache
	}

	group.POST("/analyze", a.analyze)
	group.POST("/analyze/batch", a.analyzeBatch)
	group.POST("/compliance", a.checkCompliance)
	group.POST("/generate", a.generate)
	group.GET("/dashboard", a.dashboard)

	return a.close, nil
}

func (a *strengthApi) close() {
	if a.cache != nil {
		a.cache.Close()
	}
}
