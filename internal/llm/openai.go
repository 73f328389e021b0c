// OpenAI-backed Analyzer.
//
// The client calls the chat completions endpoint with a JSON response format
// and a low temperature for consistent output. Calls are guarded by a
// client-side token bucket (cost protection) and a circuit breaker so a
// misbehaving upstream fails fast instead of tying up pipeline workers.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/claimmate/go-claims-backend/internal/config"
)

const systemPrompt = "You are an expert insurance policy analyst. Provide detailed, accurate analysis of insurance policies in JSON format."

const promptTemplate = `You are an expert insurance policy analyst. Analyze the following insurance policy text and provide a comprehensive risk assessment.

Policy Text:
%s

Please provide your analysis in JSON format with the following structure:
{
  "riskScore": <number between 0-100, where 100 is highest risk>,
  "riskLevel": <"low", "medium", or "high">,
  "summary": "<2-3 sentence executive summary of the policy's overall risk profile and key characteristics>",
  "flaggedClauses": [
    {
      "title": "<concise title describing the clause concern>",
      "summary": "<plain English explanation of why this clause is concerning or favorable>",
      "originalText": "<exact text from the policy that contains this clause>",
      "riskLevel": "<high, medium, or low>",
      "category": "<type of clause, e.g., 'exclusion', 'limitation', 'coverage', 'deductible'>"
    }
  ],
  "recommendations": "<actionable advice for the policyholder based on the analysis>"
}

Focus on:
1. Pre-existing condition exclusions
2. Waiting periods
3. Coverage limitations
4. Deductible amounts
5. Claim filing requirements
6. Network restrictions
7. Coverage gaps
8. Favorable terms

Provide clear, consumer-friendly explanations that help policyholders understand their coverage.`

// OpenAIAnalyzer implements Analyzer against the OpenAI chat completions API.
type OpenAIAnalyzer struct {
	cfg     config.OpenAIConfig
	httpc   *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[Result]
}

// NewOpenAIAnalyzer constructs an analyzer from configuration. The breaker
// opens after a majority of recent calls fail and probes again after a minute.
func NewOpenAIAnalyzer(cfg config.OpenAIConfig) *OpenAIAnalyzer {
	rps := cfg.RPS
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &OpenAIAnalyzer{
		cfg:     cfg,
		httpc:   &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		breaker: gobreaker.NewCircuitBreaker[Result](gobreaker.Settings{
			Name: "openai-analysis",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.Requests >= 5 &&
					float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
			},
		}),
	}
}

// Analyze sends the policy text for assessment and returns a sanitized
// result. Any failure (breaker open, transport, bad status, parse error)
// yields the fixed neutral default instead of an error: the pipeline must
// never block on the collaborator.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, policyText string) (Result, error) {
	res, err := a.breaker.Execute(func() (Result, error) {
		if err := a.limiter.Wait(ctx); err != nil {
			return Result{}, err
		}
		return a.complete(ctx, policyText)
	})
	if err != nil {
		log.Warn().Err(err).Msg("policy analysis failed, substituting default assessment")
		return DefaultResult(), nil
	}
	return Sanitize(res), nil
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat respFormat    `json:"response_format"`
	Temperature    float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete performs one chat completion round-trip and parses the JSON body
// of the assistant message into a Result.
func (a *OpenAIAnalyzer) complete(ctx context.Context, policyText string) (Result, error) {
	reqBody := chatRequest{
		Model: a.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(promptTemplate, policyText)},
		},
		ResponseFormat: respFormat{Type: "json_object"},
		Temperature:    a.cfg.Temperature,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, err
	}

	url := strings.TrimRight(a.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)

	resp, err := a.httpc.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("chat completions status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return Result{}, fmt.Errorf("parse completions envelope: %w", err)
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return Result{}, fmt.Errorf("no content returned from model")
	}

	var out Result
	if err := json.Unmarshal([]byte(cr.Choices[0].Message.Content), &out); err != nil {
		return Result{}, fmt.Errorf("parse analysis json: %w", err)
	}
	return out, nil
}
