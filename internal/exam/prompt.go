package exam

import (
	"fmt"
	"strings"
)

// BuildExamPrompt renders the instruction sent for exam generation.
func BuildExamPrompt(req ExamRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a math exam for primary school students with exactly %d questions on the topic %q.\n\n", req.QuestionCount, req.Topic)
	b.WriteString("Format strictly:\n")
	fmt.Fprintf(&b, "- Title: \"Math Exam - %s\"\n", req.Topic)
	b.WriteString("- Number questions sequentially starting at 1: 1., 2., 3., ...\n")
	b.WriteString("- Ages 6-12\n")
	b.WriteString("- Mixed difficulty\n")
	b.WriteString("- Simple, relatable word problems\n")
	b.WriteString("- Clear, unambiguous wording\n")
	b.WriteString("Do NOT include answers. Only questions.")
	return b.String()
}

// BuildAnswerKeyPrompt renders the instruction sent for answer key generation.
// The topic clause is left out entirely when no topic was given.
func BuildAnswerKeyPrompt(req AnswerKeyRequest) string {
	var b strings.Builder
	b.WriteString("Here are math exam questions for primary school students")
	if req.Topic != "" {
		fmt.Fprintf(&b, " on the topic %q", req.Topic)
	}
	b.WriteString(":\n\n")
	b.WriteString(req.ExamQuestions)
	b.WriteString("\n\nProvide a clear answer key with brief explanations for teachers.\n")
	b.WriteString("Format:\n")
	b.WriteString("1. [Answer] - [Brief explanation]\n")
	b.WriteString("2. [Answer] - [Brief explanation]\n")
	b.WriteString("...")
	return b.String()
}
