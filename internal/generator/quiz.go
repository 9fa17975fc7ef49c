package generator

import (
	"context"

	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/jsonval"
	"github.com/tensorplex-labs/eduforge/internal/prompts"
)

const quizMinQuestions = 5

var quizStrategy = Strategy[content.Quiz]{
	Template:      content.TemplateQuiz,
	Attempts:      3,
	Temperature:   0.7,
	IsolateErrors: true,
	Defaults:      DefaultRequest,
	Prompt:        prompts.Quiz,
	Key:           []string{"questions"},
	Validate:      validateQuiz,
	Normalize:     normalizeQuiz,
}

// Quiz generates a multiple choice quiz. Only the minimum question count is
// enforced; extra questions are kept.
func (g *Generator) Quiz(ctx context.Context, req Request) (*content.Quiz, error) {
	return run(ctx, g, quizStrategy, req)
}

func validateQuiz(root, node jsonval.Value) (content.Quiz, error) {
	items := node.Items()
	if len(items) < quizMinQuestions {
		return content.Quiz{}, invalid(content.TemplateQuiz, "want at least %d questions, got %d", quizMinQuestions, len(items))
	}

	questions := make([]content.QuizQuestion, 0, len(items))
	for _, it := range items {
		idx, _ := it.Get("correctIndex").Int()
		questions = append(questions, content.QuizQuestion{
			Prompt:       it.Text("prompt"),
			Options:      it.Get("options").Strings(),
			CorrectIndex: idx,
			Explanation:  it.Text("explanation"),
		})
	}
	return content.Quiz{Title: root.Text("title"), Questions: questions}, nil
}

func normalizeQuiz(q content.Quiz, req Request) content.Quiz {
	q.TemplateType = content.TemplateQuiz
	q.Title = titleOr(q.Title, req.Topic)
	return q
}
