package inference

import (
	"cmp"
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.1-70b-versatile"
)

// OpenAIInferencer talks to any OpenAI-compatible chat completion endpoint.
type OpenAIInferencer struct {
	client *openai.Client
	model  string
}

// NewOpenAIInferencer builds a vendor client. Empty baseURL and model fall
// back to the Groq defaults.
func NewOpenAIInferencer(apiKey, baseURL, model string) *OpenAIInferencer {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cmp.Or(baseURL, DefaultBaseURL)),
	)
	return &OpenAIInferencer{
		client: &client,
		model:  cmp.Or(model, DefaultModel),
	}
}

func (o *OpenAIInferencer) Model() string { return o.model }

// Complete sends one chat completion and returns the text of the first choice.
func (o *OpenAIInferencer) Complete(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	} else {
		params = &(*params)
	}
	params.Model = cmp.Or(params.Model, o.model)
	params.Messages = []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Role: "system",
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: param.Opt[string]{Value: system},
				},
			}},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Role: "user",
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: param.Opt[string]{Value: user},
				},
			},
		},
	}

	params.MaxCompletionTokens = openai.Int(cmp.Or(params.MaxCompletionTokens.Value, 4096))
	params.Temperature = openai.Float(cmp.Or(params.Temperature.Value, 0.7))
	params.TopP = openai.Float(cmp.Or(params.TopP.Value, 0.9))

	resp, err := o.client.Chat.Completions.New(ctx, *params)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	if resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion content")
	}

	return resp.Choices[0].Message.Content, nil
}

var advisedWaitRX = regexp.MustCompile(`try again in ([0-9.]+)(ms|s)`)

// classify turns a vendor 429 into *RateLimitError, carrying the advised
// wait when the response exposes one.
func classify(err error) error {
	var apierr *openai.Error
	if !errors.As(err, &apierr) || apierr.StatusCode != http.StatusTooManyRequests {
		return err
	}
	return &RateLimitError{Wait: advisedWait(apierr), Err: err}
}

func advisedWait(apierr *openai.Error) time.Duration {
	if apierr.Response != nil {
		if h := apierr.Response.Header.Get("Retry-After"); h != "" {
			if secs, err := strconv.ParseFloat(h, 64); err == nil && secs > 0 {
				return time.Duration(secs * float64(time.Second))
			}
		}
	}
	return parseWaitMessage(apierr.Error())
}

// parseWaitMessage finds the "try again in Ns" fragment vendors embed in
// 429 bodies.
func parseWaitMessage(msg string) time.Duration {
	m := advisedWaitRX.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return 0
	}
	unit := time.Second
	if m[2] == "ms" {
		unit = time.Millisecond
	}
	return time.Duration(v * float64(unit))
}
