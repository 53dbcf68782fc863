package genai

import (
	"context"
	"errors"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	reply string
	err   error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return f.reply, f.err
}

func TestGenerateText(t *testing.T) {
	c := New(&fakeModel{reply: "hello"})
	got, err := c.GenerateText(context.Background(), "say hello")
	if err != nil || got != "hello" {
		t.Fatalf("GenerateText = %q, %v", got, err)
	}
}

func TestGenerateTextFailure(t *testing.T) {
	c := New(&fakeModel{err: errors.New("http 500")})
	if _, err := c.GenerateText(context.Background(), "x"); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestGenerateJSON(t *testing.T) {
	type shape struct {
		Title string   `json:"title"`
		Items []string `json:"items"`
	}
	tests := []struct {
		name  string
		reply string
	}{
		{"bare json", `{"title":"t","items":["a","b"]}`},
		{"fenced json", "```json\n{\"title\":\"t\",\"items\":[\"a\",\"b\"]}\n```"},
		{"plain fence", "```\n{\"title\":\"t\",\"items\":[\"a\",\"b\"]}\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out shape
			c := New(&fakeModel{reply: tt.reply})
			if err := c.GenerateJSON(context.Background(), "x", &out); err != nil {
				t.Fatalf("GenerateJSON: %v", err)
			}
			if out.Title != "t" || len(out.Items) != 2 {
				t.Errorf("parsed: %+v", out)
			}
		})
	}
}

func TestGenerateJSONBadShape(t *testing.T) {
	var out struct{ N int }
	c := New(&fakeModel{reply: "this is not json"})
	err := c.GenerateJSON(context.Background(), "x", &out)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}
